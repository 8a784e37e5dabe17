package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the runtime memory statistics.
type MemorySnapshot struct {
	HeapAlloc   uint64
	Sys         uint64
	NumGC       uint32
	HeapObjects uint64
	TotalAlloc  uint64
}

// MemoryCollector reads runtime memory statistics around a sweep.
type MemoryCollector struct{}

// NewMemoryCollector returns a MemoryCollector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
		TotalAlloc:  m.TotalAlloc,
	}
}

// AllocatedSince returns the bytes allocated between before and s.
// TotalAlloc is monotonic, so the result is never negative.
func (s MemorySnapshot) AllocatedSince(before MemorySnapshot) uint64 {
	if s.TotalAlloc < before.TotalAlloc {
		return 0
	}
	return s.TotalAlloc - before.TotalAlloc
}

// GCsSince returns the number of GC cycles completed between before and s.
func (s MemorySnapshot) GCsSince(before MemorySnapshot) uint32 {
	return s.NumGC - before.NumGC
}

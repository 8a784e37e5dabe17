package config

import "runtime"

// Worker resolution (highest priority first):
//   1. -workers flag
//   2. B13PHASE_WORKERS
//   3. EstimateOptimalWorkers

// ApplyAdaptiveWorkers fills a zero Workers value from the host CPU count.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers returns a sweep worker count for this machine.
// Evaluations are CPU bound, so one worker per core is enough; very large
// hosts are capped since each sample is short.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}

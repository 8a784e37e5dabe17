package sweep

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/agbru/b13phase/internal/level0"
	"github.com/agbru/b13phase/internal/logging"
	"github.com/agbru/b13phase/internal/metrics"
	"github.com/agbru/b13phase/internal/phase"
)

// countingReporter records every update it receives.
type countingReporter struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func (c *countingReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for u := range updates {
		c.mu.Lock()
		c.updates = append(c.updates, u)
		c.mu.Unlock()
	}
}

func TestSampleIndex(t *testing.T) {
	t.Parallel()
	total := phase.TotalSubdivisions(1)
	tests := []struct {
		i, samples int
		want       int64
	}{
		{0, 4, 0},
		{1, 4, 780},
		{3, 4, 2340},
		{1, 7, 445},
	}
	for _, tt := range tests {
		if got := SampleIndex(total, tt.i, tt.samples); got.Int64() != tt.want {
			t.Errorf("SampleIndex(%d, %d) = %s, want %d", tt.i, tt.samples, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	rep := &countingReporter{}
	m := metrics.NewMetrics()
	res, err := Run(context.Background(), Options{
		Digits:  3,
		Samples: 32,
		Workers: 4,
		Table:   level0.Builtin(),
		Metrics: m,
	}, rep, io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Samples) != 32 || res.Digits != 3 || res.RunID == "" {
		t.Fatalf("unexpected result header: digits=%d samples=%d run=%q", res.Digits, len(res.Samples), res.RunID)
	}

	total := phase.TotalSubdivisions(3)
	for i, s := range res.Samples {
		if s.Index.Cmp(SampleIndex(total, i, 32)) != 0 {
			t.Errorf("sample %d index = %s", i, s.Index)
		}
		back, err := phase.ToInt(s.Digits)
		if err != nil || back.Cmp(s.Index) != 0 {
			t.Errorf("sample %d digits %v do not encode %s", i, s.Digits, s.Index)
		}
		want, _ := phase.Evaluate(s.Digits, level0.Builtin())
		if want.X.Cmp(s.Vector.X) != 0 || want.Y.Cmp(s.Vector.Y) != 0 {
			t.Errorf("sample %d vector %s, want %s", i, s.Vector, want)
		}
	}
	if res.Stats.Min > res.Stats.Mean || res.Stats.Mean > res.Stats.Max {
		t.Errorf("inconsistent stats %+v", res.Stats)
	}
	if res.Samples[res.Stats.MinAt].Ratio != res.Stats.Min {
		t.Errorf("MinAt does not point at the minimum")
	}
	if len(res.Ratios()) != 32 {
		t.Errorf("Ratios() length = %d", len(res.Ratios()))
	}

	if len(rep.updates) != 32 || rep.updates[len(rep.updates)-1].Done != 32 {
		t.Errorf("progress updates = %d, last %+v", len(rep.updates), rep.updates[len(rep.updates)-1])
	}
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	for _, want := range []string{
		"b13phase_sweep_samples_total 32",
		`b13phase_operations_total{op="sweep",result="ok"} 1`,
		"b13phase_active_sweeps 0",
	} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRunCapsSamplesAtSubdivisions(t *testing.T) {
	t.Parallel()
	table := phase.Level0Func(func(int) (int64, int64) { return phase.Base, 0 })
	res, err := Run(context.Background(), Options{Digits: 1, Samples: 5000, Workers: 2, Table: table}, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Samples) != phase.Base {
		t.Fatalf("samples = %d, want %d", len(res.Samples), phase.Base)
	}
	for i, s := range res.Samples {
		if s.Index.Cmp(big.NewInt(int64(i))) != 0 {
			t.Fatalf("sample %d index = %s", i, s.Index)
		}
	}
	if res.Stats.Min != 1 || res.Stats.Max != 1 {
		t.Errorf("constant unit table stats = %+v, want all 1", res.Stats)
	}
}

func TestRunInvalidOptions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		opts Options
	}{
		{"zero digits", Options{Digits: 0, Samples: 1, Table: level0.Builtin()}},
		{"zero samples", Options{Digits: 2, Samples: 0, Table: level0.Builtin()}},
		{"nil table", Options{Digits: 2, Samples: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(context.Background(), tt.opts, nil, io.Discard)
			if !errors.Is(err, phase.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := metrics.NewMetrics()
	var logBuf bytes.Buffer
	_, err := Run(ctx, Options{
		Digits: 4, Samples: 1000, Workers: 2, Table: level0.Builtin(),
		Metrics: m, Logger: logging.NewStdLoggerAdapter(log.New(&logBuf, "", 0)),
	}, NullProgressReporter{}, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !strings.Contains(logBuf.String(), "[ERROR] sweep failed") {
		t.Errorf("missing failure log, got %q", logBuf.String())
	}
}

func TestRunLogsSummary(t *testing.T) {
	t.Parallel()
	var logBuf bytes.Buffer
	_, err := Run(context.Background(), Options{
		Digits: 2, Samples: 8, Table: level0.Builtin(),
		Logger: logging.NewStdLoggerAdapter(log.New(&logBuf, "", 0)),
	}, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[INFO] sweep finished", "digits=2", "samples=8", "run_id="} {
		if !strings.Contains(logBuf.String(), want) {
			t.Errorf("log %q missing %q", logBuf.String(), want)
		}
	}
}

func TestReporterAdapters(t *testing.T) {
	t.Parallel()
	called := false
	f := ProgressReporterFunc(func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, total int, _ io.Writer) {
		defer wg.Done()
		called = total == 3
		for range updates {
		}
	})
	updates := make(chan ProgressUpdate, 1)
	updates <- ProgressUpdate{Done: 1, Total: 3}
	close(updates)
	var wg sync.WaitGroup
	wg.Add(1)
	f.DisplayProgress(&wg, updates, 3, io.Discard)
	wg.Wait()
	if !called {
		t.Error("ProgressReporterFunc did not forward its arguments")
	}
}

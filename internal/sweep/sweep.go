// Package sweep evaluates evenly spaced phases concurrently and summarizes how
// far the prototype evaluator drifts from a unit vector.
package sweep

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/big"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/b13phase/internal/logging"
	"github.com/agbru/b13phase/internal/metrics"
	"github.com/agbru/b13phase/internal/phase"
)

var tracer = otel.Tracer("b13phase/sweep")

// progressBuffer bounds the progress channel; workers block on a slow
// reporter rather than allocating one slot per sample.
const progressBuffer = 256

// Options configures a sweep.
type Options struct {
	// Digits is the phase length n.
	Digits int
	// Samples is the number of evenly spaced phases. It is capped at Base^n.
	Samples int
	// Workers bounds concurrent evaluations; <= 0 uses runtime.NumCPU.
	Workers int
	// Table supplies the level-0 vectors.
	Table phase.Level0
	// Metrics, when set, receives sample and duration observations.
	Metrics *metrics.Metrics
	// Logger, when set, receives a summary line per run.
	Logger logging.Logger
}

// Sample is one evaluated phase.
type Sample struct {
	Index  *big.Int
	Digits phase.Digits
	Vector phase.Vector
	Ratio  float64
}

// Stats summarizes the magnitude ratios of a sweep.
type Stats struct {
	Min, Max, Mean float64
	// MinAt and MaxAt are positions in Result.Samples.
	MinAt, MaxAt int
}

// Result is the outcome of a sweep. Samples are ordered by index.
type Result struct {
	RunID     string
	Digits    int
	Samples   []Sample
	Stats     Stats
	Duration  time.Duration
	Allocated uint64
}

// Ratios returns the magnitude ratio of every sample in order.
func (r Result) Ratios() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Ratio
	}
	return out
}

// SampleIndex returns floor(i * Base^n / samples), the i-th evenly spaced
// phase index.
func SampleIndex(total *big.Int, i, samples int) *big.Int {
	idx := new(big.Int).Mul(total, big.NewInt(int64(i)))
	return idx.Quo(idx, big.NewInt(int64(samples)))
}

// Run evaluates opts.Samples phases with at most opts.Workers goroutines.
// Progress updates go to reporter, which writes to out. Cancellation of ctx
// stops the sweep and its error is returned.
func Run(ctx context.Context, opts Options, reporter ProgressReporter, out io.Writer) (Result, error) {
	if opts.Digits < 1 {
		return Result{}, fmt.Errorf("sweep: %w: digit count must be >= 1, got %d", phase.ErrInvalidArgument, opts.Digits)
	}
	if opts.Samples < 1 {
		return Result{}, fmt.Errorf("sweep: %w: sample count must be >= 1, got %d", phase.ErrInvalidArgument, opts.Samples)
	}
	if opts.Table == nil {
		return Result{}, fmt.Errorf("sweep: %w: nil level-0 table", phase.ErrInvalidArgument)
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	total := phase.TotalSubdivisions(opts.Digits)
	samples := opts.Samples
	if total.Cmp(big.NewInt(int64(samples))) < 0 {
		samples = int(total.Int64())
	}

	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "sweep.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("sweep.run_id", runID),
		attribute.Int("sweep.digits", opts.Digits),
		attribute.Int("sweep.samples", samples),
		attribute.Int("sweep.workers", workers),
	)

	if opts.Metrics != nil {
		defer opts.Metrics.SweepStarted()()
	}
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	start := time.Now()

	results := make([]Sample, samples)
	updates := make(chan ProgressUpdate, min(samples, progressBuffer))
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, samples, out)

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < samples; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idx := SampleIndex(total, i, samples)
			d, err := phase.FromInt(idx, opts.Digits)
			if err != nil {
				return err
			}
			v, err := phase.Evaluate(d, opts.Table)
			if err != nil {
				return err
			}
			results[i] = Sample{Index: idx, Digits: d, Vector: v, Ratio: v.MagnitudeRatio()}

			mu.Lock()
			done++
			update := ProgressUpdate{Done: done, Total: samples}
			mu.Unlock()
			updates <- update
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	close(updates)
	displayWg.Wait()

	if opts.Metrics != nil {
		opts.Metrics.AddSamples(done)
		opts.Metrics.ObserveOperation("sweep", err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if opts.Logger != nil {
			opts.Logger.Error("sweep failed", err, logging.String("run_id", runID), logging.Int("done", done))
		}
		return Result{}, err
	}

	res := Result{
		RunID:     runID,
		Digits:    opts.Digits,
		Samples:   results,
		Stats:     summarize(results),
		Duration:  time.Since(start),
		Allocated: mem.Snapshot().AllocatedSince(before),
	}
	span.SetAttributes(
		attribute.Float64("sweep.ratio_min", res.Stats.Min),
		attribute.Float64("sweep.ratio_max", res.Stats.Max),
	)
	span.SetStatus(codes.Ok, "")
	if opts.Logger != nil {
		opts.Logger.Info("sweep finished",
			logging.String("run_id", runID),
			logging.Int("digits", opts.Digits),
			logging.Int("samples", samples),
			logging.Float64("ratio_mean", res.Stats.Mean),
			logging.Duration("elapsed", res.Duration),
		)
	}
	return res, nil
}

func summarize(samples []Sample) Stats {
	st := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for i, s := range samples {
		if s.Ratio < st.Min {
			st.Min, st.MinAt = s.Ratio, i
		}
		if s.Ratio > st.Max {
			st.Max, st.MaxAt = s.Ratio, i
		}
		sum += s.Ratio
	}
	if len(samples) > 0 {
		st.Mean = sum / float64(len(samples))
	}
	return st
}

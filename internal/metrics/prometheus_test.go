package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveOperation("pack", nil)
	m.ObserveOperation("pack", nil)
	m.ObserveOperation("unpack", errors.New("reserved bits"))

	if got := testutil.ToFloat64(m.operations.WithLabelValues("pack", ResultOK)); got != 2 {
		t.Errorf("pack ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("unpack", ResultError)); got != 1 {
		t.Errorf("unpack error = %v, want 1", got)
	}
}

func TestCountersAndSweepLifecycle(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveCarry(0)
	m.ObserveCarry(1)
	m.AddSamples(16)

	done := m.SweepStarted()
	if got := testutil.ToFloat64(m.activeSweeps); got != 1 {
		t.Errorf("active sweeps = %v, want 1", got)
	}
	done()
	if got := testutil.ToFloat64(m.activeSweeps); got != 0 {
		t.Errorf("active sweeps after done = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.carries); got != 1 {
		t.Errorf("carries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.samples); got != 16 {
		t.Errorf("samples = %v, want 16", got)
	}
}

func TestWritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveOperation("add", nil)

	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body := rec.Body.String()

	for _, want := range []string{
		`b13phase_operations_total{op="add",result="ok"} 1`,
		"b13phase_sweep_duration_seconds",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServe(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	ctx, cancel := context.WithCancel(context.Background())

	// Reserve a free port, then release it for Serve.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	done, err := m.Serve(ctx, addr)
	if err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "b13phase_active_sweeps") {
		t.Errorf("unexpected body: %.200s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("server exit error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServeBindFailure(t *testing.T) {
	t.Parallel()
	if _, err := NewMetrics().Serve(context.Background(), "256.0.0.1:bad"); err == nil {
		t.Error("expected a bind error")
	}
}

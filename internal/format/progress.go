package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressWithETA tracks completed samples of a sweep and estimates the time
// left from the observed completion rate. It is safe for concurrent use.
type ProgressWithETA struct {
	mu        sync.Mutex
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewProgressWithETA starts tracking a run of total samples.
func NewProgressWithETA(total int) *ProgressWithETA {
	return &ProgressWithETA{total: total, startTime: time.Now(), now: time.Now}
}

// Advance records n more completed samples and returns the completed
// fraction together with the estimated time remaining.
func (p *ProgressWithETA) Advance(n int) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	if p.done > p.total {
		p.done = p.total
	}
	return p.fractionLocked(), p.etaLocked()
}

// Fraction returns the completed fraction in [0, 1].
func (p *ProgressWithETA) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// ETA returns the estimated time remaining, or 0 before any sample completed.
func (p *ProgressWithETA) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

func (p *ProgressWithETA) fractionLocked() float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

func (p *ProgressWithETA) etaLocked() time.Duration {
	if p.done == 0 || p.total <= 0 {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	perSample := elapsed / time.Duration(p.done)
	return perSample * time.Duration(p.total-p.done)
}

// ProgressBar renders a fixed-width bar for a fraction in [0, 1]; values
// outside the range are clamped.
func ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(fraction float64, eta time.Duration, width int) string {
	pct := fraction * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(fraction, width), pct, FormatETA(eta))
}

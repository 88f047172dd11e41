package acquire

import (
	"sync"
	"time"

	"github.com/itohio/rangemeter/pkg/config"
)

// Periods holds the current sampling period, clamped to [min, max] and
// adjusted in fixed steps. Adjustment requests that would leave the bounds
// saturate silently; they are never an error.
type Periods struct {
	mu     sync.Mutex
	period time.Duration

	min  time.Duration
	max  time.Duration
	step time.Duration
}

// NewPeriods creates a period controller from the sampling configuration.
// The initial period is clamped into [MinPeriod, MaxPeriod].
func NewPeriods(cfg config.SamplingConfig) *Periods {
	p := &Periods{
		period: cfg.Period,
		min:    cfg.MinPeriod,
		max:    cfg.MaxPeriod,
		step:   cfg.Step,
	}
	if p.period < p.min {
		p.period = p.min
	}
	if p.period > p.max {
		p.period = p.max
	}
	return p
}

// Current returns the current period.
func (p *Periods) Current() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.period
}

// Faster decreases the period by one step, saturating at the minimum.
// It returns the resulting period and whether it changed.
func (p *Periods) Faster() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.period - p.step
	if next < p.min {
		next = p.min
	}
	if next == p.period {
		return p.period, false
	}
	p.period = next
	return p.period, true
}

// Slower increases the period by one step, saturating at the maximum.
// It returns the resulting period and whether it changed.
func (p *Periods) Slower() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.period + p.step
	if next > p.max {
		next = p.max
	}
	if next == p.period {
		return p.period, false
	}
	p.period = next
	return p.period, true
}

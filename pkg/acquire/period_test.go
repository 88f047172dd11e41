package acquire

import (
	"testing"
	"time"

	"github.com/itohio/rangemeter/pkg/config"
	"github.com/stretchr/testify/assert"
)

func samplingConfig() config.SamplingConfig {
	return config.SamplingConfig{
		Period:    2000 * time.Millisecond,
		MinPeriod: 1000 * time.Millisecond,
		MaxPeriod: 2000 * time.Millisecond,
		Step:      100 * time.Millisecond,
	}
}

func TestNewPeriods_ClampsInitial(t *testing.T) {
	cfg := samplingConfig()
	cfg.Period = 10 * time.Second
	p := NewPeriods(cfg)
	assert.Equal(t, cfg.MaxPeriod, p.Current())

	cfg.Period = time.Millisecond
	p = NewPeriods(cfg)
	assert.Equal(t, cfg.MinPeriod, p.Current())
}

func TestPeriods_FasterStepsAndSaturates(t *testing.T) {
	p := NewPeriods(samplingConfig())

	period, changed := p.Faster()
	assert.True(t, changed)
	assert.Equal(t, 1900*time.Millisecond, period)

	// Nine more steps reach the floor exactly.
	for i := 0; i < 9; i++ {
		period, changed = p.Faster()
		assert.True(t, changed, "step %d", i)
	}
	assert.Equal(t, 1000*time.Millisecond, period)

	// Saturated: another faster is a no-op, not an error.
	period, changed = p.Faster()
	assert.False(t, changed)
	assert.Equal(t, 1000*time.Millisecond, period)
}

func TestPeriods_SlowerStepsAndSaturates(t *testing.T) {
	cfg := samplingConfig()
	cfg.Period = 1000 * time.Millisecond
	p := NewPeriods(cfg)

	period, changed := p.Slower()
	assert.True(t, changed)
	assert.Equal(t, 1100*time.Millisecond, period)

	for i := 0; i < 20; i++ {
		p.Slower()
	}
	period, changed = p.Slower()
	assert.False(t, changed)
	assert.Equal(t, cfg.MaxPeriod, period)
}

// The period never leaves [min, max] regardless of how many adjustment
// commands are issued in any order.
func TestPeriods_NeverLeavesBounds(t *testing.T) {
	cfg := samplingConfig()
	p := NewPeriods(cfg)

	seed := uint64(1)
	for i := 0; i < 1000; i++ {
		// Cheap deterministic pseudo-random choice.
		seed = seed*6364136223846793005 + 1442695040888963407
		if seed&1 == 0 {
			p.Faster()
		} else {
			p.Slower()
		}

		cur := p.Current()
		assert.GreaterOrEqual(t, cur, cfg.MinPeriod)
		assert.LessOrEqual(t, cur, cfg.MaxPeriod)
	}
}

// A partial step near a bound still clamps exactly onto the bound.
func TestPeriods_PartialStepClamps(t *testing.T) {
	cfg := samplingConfig()
	cfg.Period = 1050 * time.Millisecond
	p := NewPeriods(cfg)

	period, changed := p.Faster()
	assert.True(t, changed)
	assert.Equal(t, cfg.MinPeriod, period)
}

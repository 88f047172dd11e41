package source

import (
	"fmt"
	"sync"

	"github.com/itohio/rangemeter/pkg/config"
)

// Replay plays back a fixed, immutable sequence of values, one per Read,
// wrapping to the start past the last element. There is no explicit reset:
// playback is an infinite periodic sequence over the finite backing slice.
type Replay struct {
	values []float64

	mu     sync.Mutex
	cursor int
}

// NewReplay creates a replay source over the given sequence. The slice is
// copied so later mutation by the caller cannot affect playback.
func NewReplay(values []float64) (*Replay, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("replay sequence is empty")
	}
	seq := make([]float64, len(values))
	copy(seq, values)
	return &Replay{values: seq}, nil
}

// FromConfig creates a replay source for the configured waveform.
func FromConfig(cfg *config.ReplayConfig) (*Replay, error) {
	switch cfg.Waveform {
	case "ecg":
		return NewReplay(ECGWaveform())
	case "ramp":
		return NewReplay(RampWaveform(rampLength))
	case "sine":
		return NewReplay(SineWaveform(cfg.SineLength, cfg.SineAmplitude, cfg.SineBias))
	default:
		return nil, fmt.Errorf("unknown waveform %q", cfg.Waveform)
	}
}

// Read returns the value at the cursor and advances it, wrapping past the end.
func (r *Replay) Read() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.values[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.values)
	return v, nil
}

// Len returns the playback period, i.e. the length of the backing sequence.
func (r *Replay) Len() int {
	return len(r.values)
}

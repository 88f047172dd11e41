package acquire

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/itohio/rangemeter/pkg/config"
	"github.com/itohio/rangemeter/pkg/sink"
	"github.com/itohio/rangemeter/pkg/source"
)

// Sampler is the worker task. It parks on a capacity-1 wake latch and runs
// one bounded cycle per wake: inspect the mode flags, read one sample,
// transmit it, and update the visual sinks. It is the only component that
// touches the source and the sinks.
//
// Wakes arriving while one is already pending coalesce into a single cycle
// (at-least-one, not one-per-fire); cycle work must therefore fit within the
// minimum configured period or fires are silently merged.
type Sampler struct {
	src   source.Source
	mode  *Mode
	disp  sink.Display
	ind   sink.Indicator
	tx    io.Writer
	label string
	bands sink.Bands

	wake chan struct{}
	log  zerolog.Logger
}

// NewSampler creates a worker over the given source and sinks. tx receives
// one formatted line per enabled cycle.
func NewSampler(cfg *config.Config, src source.Source, mode *Mode, disp sink.Display, ind sink.Indicator, tx io.Writer, log zerolog.Logger) *Sampler {
	return &Sampler{
		src:   src,
		mode:  mode,
		disp:  disp,
		ind:   ind,
		tx:    tx,
		label: cfg.Transmit.Label,
		bands: sink.Bands{
			Near: cfg.Display.NearCm,
			Mid:  cfg.Display.MidCm,
			Far:  cfg.Display.FarCm,
		},
		wake: make(chan struct{}, 1),
		log:  log,
	}
}

// Wake requests one sampling cycle. It never blocks and is safe to call from
// any goroutine, including timer fire paths.
func (s *Sampler) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
		// A wake is already pending; coalesce.
	}
}

// Run parks until the next wake and executes cycles until the context is
// cancelled. There is no other suspension point.
func (s *Sampler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
			s.cycle()
		}
	}
}

// cycle performs the bounded per-wake work. Any failure degrades to "do
// nothing this cycle"; nothing propagates upward.
func (s *Sampler) cycle() {
	if !s.mode.Enabled() {
		// Output already reflects the off state from the disabling
		// transition.
		return
	}

	cm, err := s.src.Read()
	if err != nil {
		s.log.Debug().Err(err).Msg("no sample this cycle")
		return
	}

	unit := s.mode.Unit()
	value := int(math.Round(unit.Convert(cm)))

	// Transmit whenever enabled, independent of hold.
	if _, err := fmt.Fprintf(s.tx, "%s: %d %s\r\n", s.label, value, unit.Suffix()); err != nil {
		s.log.Warn().Err(err).Msg("transmit failed")
	}

	if s.mode.Hold() {
		// Visual sinks keep their previous rendering.
		return
	}

	// Banding always works on the centimeter value; only the rendered number
	// follows the unit.
	if err := s.ind.SetLevel(s.bands.Level(cm)); err != nil {
		s.log.Warn().Err(err).Msg("indicator update failed")
	}
	if err := s.disp.Show(value); err != nil {
		s.log.Warn().Err(err).Msg("display update failed")
	}
}

package acquire

import (
	"github.com/rs/zerolog"

	"github.com/itohio/rangemeter/pkg/sink"
)

// Controller applies mode and period transitions. It is the shared write
// side driven by button events, the command decoder and the panel; the
// worker only ever reads the flags it mutates.
type Controller struct {
	mode    *Mode
	periods *Periods
	timer   *Timer
	disp    sink.Display
	ind     sink.Indicator
	log     zerolog.Logger
}

// NewController wires the mode flags and period controller to the timer and
// the visual sinks.
func NewController(mode *Mode, periods *Periods, timer *Timer, disp sink.Display, ind sink.Indicator, log zerolog.Logger) *Controller {
	return &Controller{
		mode:    mode,
		periods: periods,
		timer:   timer,
		disp:    disp,
		ind:     ind,
		log:     log,
	}
}

// ToggleEnable flips measurement on or off. Disabling forces the visual
// sinks off immediately, in this transition, not on the next cycle.
func (c *Controller) ToggleEnable() {
	enabled := c.mode.ToggleEnabled()
	c.log.Info().Bool("enabled", enabled).Msg("enable toggled")

	if enabled {
		return
	}
	if err := c.ind.Off(); err != nil {
		c.log.Warn().Err(err).Msg("indicator off failed")
	}
	if err := c.disp.Off(); err != nil {
		c.log.Warn().Err(err).Msg("display off failed")
	}
}

// ToggleHold flips the hold flag.
func (c *Controller) ToggleHold() {
	hold := c.mode.ToggleHold()
	c.log.Info().Bool("hold", hold).Msg("hold toggled")
}

// ToggleUnit flips the rendering unit.
func (c *Controller) ToggleUnit() {
	unit := c.mode.ToggleUnit()
	c.log.Info().Str("unit", unit.Suffix()).Msg("unit toggled")
}

// Faster decreases the sampling period by one step and reprograms the timer
// before returning. Saturated at the minimum it is a no-op.
func (c *Controller) Faster() {
	period, changed := c.periods.Faster()
	if !changed {
		return
	}
	c.timer.UpdatePeriod(period)
	c.log.Info().Dur("period", period).Msg("period decreased")
}

// Slower increases the sampling period by one step and reprograms the timer
// before returning. Saturated at the maximum it is a no-op.
func (c *Controller) Slower() {
	period, changed := c.periods.Slower()
	if !changed {
		return
	}
	c.timer.UpdatePeriod(period)
	c.log.Info().Dur("period", period).Msg("period increased")
}

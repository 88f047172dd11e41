package sink

import "github.com/rs/zerolog"

// LogDisplay renders display updates as structured log events. It stands in
// for the LCD when the daemon runs headless.
type LogDisplay struct {
	Log zerolog.Logger
}

var _ Display = (*LogDisplay)(nil)

func (d *LogDisplay) Show(value int) error {
	d.Log.Info().Int("value", value).Msg("display")
	return nil
}

func (d *LogDisplay) Off() error {
	d.Log.Info().Msg("display off")
	return nil
}

// LogIndicator renders indicator levels as structured log events.
type LogIndicator struct {
	Log zerolog.Logger
}

var _ Indicator = (*LogIndicator)(nil)

func (i *LogIndicator) SetLevel(level int) error {
	i.Log.Info().Int("level", level).Msg("indicator")
	return nil
}

func (i *LogIndicator) Off() error {
	i.Log.Info().Msg("indicator off")
	return nil
}

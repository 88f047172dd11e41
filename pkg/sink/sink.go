// Package sink defines the presentation sinks fed by the acquisition worker:
// a numeric display and a coarse level indicator. Implementations range from
// in-memory fakes to a BCD-multiplexed pin display and log-backed sinks.
package sink

// Display shows the most recent integer measurement.
type Display interface {
	Show(value int) error
	Off() error
}

// Indicator presents a coarse proximity level from 0 (all off) to MaxLevel.
type Indicator interface {
	SetLevel(level int) error
	Off() error
}

// MaxLevel is the highest indicator level (three segments lit).
const MaxLevel = 3

// Bands maps a centimeter measurement to an indicator level.
// Below Near every segment is off; [Near, Mid) lights one, [Mid, Far) two,
// and Far or beyond lights all three.
type Bands struct {
	Near float64
	Mid  float64
	Far  float64
}

// Level returns the indicator level for a measurement in centimeters.
func (b Bands) Level(cm float64) int {
	switch {
	case cm < b.Near:
		return 0
	case cm < b.Mid:
		return 1
	case cm < b.Far:
		return 2
	default:
		return MaxLevel
	}
}

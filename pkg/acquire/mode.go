// Package acquire implements the timer-driven acquisition core: the mode
// flags, the period controller, the deferred-notification timer and the
// worker task that samples, renders and transmits.
package acquire

import "sync/atomic"

// Unit selects the measurement unit used for rendering and transmission.
// It never affects the raw measurement, only its conversion.
type Unit uint32

const (
	Centimeters Unit = iota
	Inches
)

const cmPerInch = 2.54

// Convert converts a centimeter measurement to this unit.
func (u Unit) Convert(cm float64) float64 {
	if u == Inches {
		return cm / cmPerInch
	}
	return cm
}

// Suffix returns the textual unit suffix used on the transmit line.
func (u Unit) Suffix() string {
	if u == Inches {
		return "in"
	}
	return "cm"
}

// Mode holds the process-wide acquisition flags. Each field is an
// independent single-word atomic: button events and command bytes may race
// an in-flight cycle, and the reader only needs torn-read-free values, not
// consistency across flags.
type Mode struct {
	enabled atomic.Bool
	hold    atomic.Bool
	unit    atomic.Uint32
}

// NewMode returns the default mode: enabled, not held, centimeters.
func NewMode() *Mode {
	m := &Mode{}
	m.enabled.Store(true)
	return m
}

// Enabled reports whether sampling and output are active.
func (m *Mode) Enabled() bool { return m.enabled.Load() }

// Hold reports whether visual sinks are frozen at their last value.
func (m *Mode) Hold() bool { return m.hold.Load() }

// Unit returns the current measurement unit.
func (m *Mode) Unit() Unit { return Unit(m.unit.Load()) }

// ToggleEnabled flips the enabled flag and returns the new value.
func (m *Mode) ToggleEnabled() bool {
	for {
		old := m.enabled.Load()
		if m.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// ToggleHold flips the hold flag and returns the new value.
func (m *Mode) ToggleHold() bool {
	for {
		old := m.hold.Load()
		if m.hold.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// ToggleUnit flips between centimeters and inches and returns the new unit.
func (m *Mode) ToggleUnit() Unit {
	for {
		old := m.unit.Load()
		next := uint32(Inches)
		if Unit(old) == Inches {
			next = uint32(Centimeters)
		}
		if m.unit.CompareAndSwap(old, next) {
			return Unit(next)
		}
	}
}

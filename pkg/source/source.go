// Package source provides the signal sources the acquisition worker reads
// from: a live serial-attached rangefinder and a stored-waveform replay.
package source

import "errors"

// ErrNoSample is returned by Read when no measurement is available for the
// current cycle. The caller treats it as an empty cycle, not a failure.
var ErrNoSample = errors.New("no sample available")

// Source produces one scalar measurement per call, in centimeters.
type Source interface {
	Read() (float64, error)
}

// Ensure Serial implements Source.
var _ Source = (*Serial)(nil)

// Ensure Replay implements Source.
var _ Source = (*Replay)(nil)

// Package command decodes the single-byte control protocol used to adjust
// the acquisition core at runtime.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Token bytes of the control protocol.
const (
	TokenEnable byte = 'O' // toggle measurement on/off
	TokenHold   byte = 'H' // toggle hold
	TokenUnit   byte = 'I' // toggle cm/inches
	TokenFaster byte = 'F' // decrease period by one step
	TokenSlower byte = 'S' // increase period by one step
)

// Controls is the write-side surface the decoder dispatches into.
type Controls interface {
	ToggleEnable()
	ToggleHold()
	ToggleUnit()
	Faster()
	Slower()
}

// Decoder consumes one control byte at a time from a serial-like channel,
// echoes accepted tokens back on the same channel, and dispatches them.
// Unrecognized bytes are dropped silently; the echo is a best-effort
// acknowledgement with no retry or buffering.
type Decoder struct {
	rw   io.ReadWriter
	ctrl Controls
	log  zerolog.Logger
}

// NewDecoder creates a decoder over the given channel.
func NewDecoder(rw io.ReadWriter, ctrl Controls, log zerolog.Logger) *Decoder {
	return &Decoder{
		rw:   rw,
		ctrl: ctrl,
		log:  log,
	}
}

// Dispatch handles a single token and reports whether it was recognized.
func (d *Decoder) Dispatch(b byte) bool {
	switch b {
	case TokenEnable:
		d.ctrl.ToggleEnable()
	case TokenHold:
		d.ctrl.ToggleHold()
	case TokenUnit:
		d.ctrl.ToggleUnit()
	case TokenFaster:
		d.ctrl.Faster()
	case TokenSlower:
		d.ctrl.Slower()
	default:
		return false
	}
	return true
}

// Run reads control bytes until the stream ends or the context is
// cancelled. The read blocks on the underlying channel, so closing the
// channel is what actually unblocks a pending read.
func (d *Decoder) Run(ctx context.Context) error {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := d.rw.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("command read: %w", err)
		}
		if n == 0 {
			continue
		}

		b := buf[0]
		if b == '\r' || b == '\n' {
			// Line-buffered terminals append these; they are not tokens.
			continue
		}

		if !d.Dispatch(b) {
			d.log.Debug().Str("token", string(b)).Msg("unrecognized command token")
			continue
		}

		if _, err := d.rw.Write([]byte{b}); err != nil {
			d.log.Debug().Err(err).Msg("command echo failed")
		}
	}
}

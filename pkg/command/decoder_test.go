package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeControls records dispatched commands.
type fakeControls struct {
	enable, hold, unit, faster, slower int
}

func (f *fakeControls) ToggleEnable() { f.enable++ }
func (f *fakeControls) ToggleHold()   { f.hold++ }
func (f *fakeControls) ToggleUnit()   { f.unit++ }
func (f *fakeControls) Faster()       { f.faster++ }
func (f *fakeControls) Slower()       { f.slower++ }

// channelRW reads from a fixed input and captures writes (the echo).
type channelRW struct {
	in   *bytes.Reader
	echo bytes.Buffer
}

func newChannelRW(input string) *channelRW {
	return &channelRW{in: bytes.NewReader([]byte(input))}
}

func (c *channelRW) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *channelRW) Write(p []byte) (int, error) { return c.echo.Write(p) }

func TestDispatch(t *testing.T) {
	tests := []struct {
		name  string
		token byte
		want  func(*fakeControls) int
		ok    bool
	}{
		{name: "enable", token: TokenEnable, want: func(f *fakeControls) int { return f.enable }, ok: true},
		{name: "hold", token: TokenHold, want: func(f *fakeControls) int { return f.hold }, ok: true},
		{name: "unit", token: TokenUnit, want: func(f *fakeControls) int { return f.unit }, ok: true},
		{name: "faster", token: TokenFaster, want: func(f *fakeControls) int { return f.faster }, ok: true},
		{name: "slower", token: TokenSlower, want: func(f *fakeControls) int { return f.slower }, ok: true},
		{name: "unknown", token: 'X', ok: false},
		{name: "lowercase is not a token", token: 'o', ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeControls{}
			d := NewDecoder(newChannelRW(""), ctrl, zerolog.Nop())

			ok := d.Dispatch(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, 1, tt.want(ctrl))
			} else {
				assert.Equal(t, &fakeControls{}, ctrl)
			}
		})
	}
}

func TestRun_DispatchesAndEchoes(t *testing.T) {
	ctrl := &fakeControls{}
	rw := newChannelRW("OHIFS")
	d := NewDecoder(rw, ctrl, zerolog.Nop())

	err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ctrl.enable)
	assert.Equal(t, 1, ctrl.hold)
	assert.Equal(t, 1, ctrl.unit)
	assert.Equal(t, 1, ctrl.faster)
	assert.Equal(t, 1, ctrl.slower)

	// Accepted tokens are echoed in order.
	assert.Equal(t, "OHIFS", rw.echo.String())
}

// Unrecognized bytes are dropped without state change, error or echo.
func TestRun_DropsUnknownTokens(t *testing.T) {
	ctrl := &fakeControls{}
	rw := newChannelRW("xXQF?z")
	d := NewDecoder(rw, ctrl, zerolog.Nop())

	err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &fakeControls{faster: 1}, ctrl)
	assert.Equal(t, "F", rw.echo.String())
}

// CR/LF bytes from line-buffered terminals are not tokens and not echoed.
func TestRun_SkipsLineTerminators(t *testing.T) {
	ctrl := &fakeControls{}
	rw := newChannelRW("O\r\nH\n")
	d := NewDecoder(rw, ctrl, zerolog.Nop())

	err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ctrl.enable)
	assert.Equal(t, 1, ctrl.hold)
	assert.Equal(t, "OH", rw.echo.String())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context stops the loop before the next read.
	d := NewDecoder(newChannelRW("OOOO"), &fakeControls{}, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("decoder did not stop on cancelled context")
	}
}

package source

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasurementLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantCm  float64
		wantErr bool
	}{
		{name: "valid", line: "1234567890123,436", wantCm: 43.6},
		{name: "zero distance", line: "1234567890123,0", wantCm: 0},
		{name: "missing field", line: "1234567890123", wantErr: true},
		{name: "too many fields", line: "1,2,3", wantErr: true},
		{name: "bad timestamp", line: "abc,436", wantErr: true},
		{name: "bad distance", line: "1234567890123,abc", wantErr: true},
		{name: "negative distance", line: "1234567890123,-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := parseMeasurementLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCm, r.Cm, 1e-9)
		})
	}
}

func TestParseMeasurementLine_Timestamp(t *testing.T) {
	r, err := parseMeasurementLine("1700000000000000,100")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 1700000000000000*1000), r.Timestamp)
}

func TestParseButtonLine(t *testing.T) {
	tests := []struct {
		line string
		want Button
		ok   bool
	}{
		{line: "B,1", want: ButtonEnable, ok: true},
		{line: "B,2", want: ButtonHold, ok: true},
		{line: "B,3", ok: false},
		{line: "B,x", ok: false},
		{line: "1234,56", ok: false},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		btn, ok := parseButtonLine(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, btn, "line %q", tt.line)
		}
	}
}

func TestSerial_Read_NoSample(t *testing.T) {
	s := NewSerial("testport", 0, 4, zerolog.Nop())

	_, err := s.Read()
	assert.ErrorIs(t, err, ErrNoSample)
}

// Read drains everything buffered since the previous call and returns only
// the most recent measurement.
func TestSerial_Read_DrainsToLatest(t *testing.T) {
	s := NewSerial("testport", 0, 4, zerolog.Nop())

	now := time.Now()
	s.readings <- Reading{Timestamp: now, Cm: 10}
	s.readings <- Reading{Timestamp: now, Cm: 20}
	s.readings <- Reading{Timestamp: now, Cm: 30}

	v, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, float64(30), v)

	// Buffer is drained; the next cycle has no sample.
	_, err = s.Read()
	assert.ErrorIs(t, err, ErrNoSample)
}

func TestSerial_Defaults(t *testing.T) {
	s := NewSerial("testport", 0, 0, zerolog.Nop())
	assert.Equal(t, DefaultBaudRate, s.baudRate)
	assert.Equal(t, DefaultBufferSize, s.bufSize)
	assert.False(t, s.IsConnected())
}

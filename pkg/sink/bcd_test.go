package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBCDDigits(t *testing.T) {
	tests := []struct {
		name    string
		value   uint32
		digits  int
		want    []uint8
		wantErr bool
	}{
		{name: "zero", value: 0, digits: 3, want: []uint8{0, 0, 0}},
		{name: "single digit", value: 7, digits: 3, want: []uint8{7, 0, 0}},
		{name: "full width", value: 138, digits: 3, want: []uint8{8, 3, 1}},
		{name: "max", value: 999, digits: 3, want: []uint8{9, 9, 9}},
		{name: "overflow", value: 1000, digits: 3, wantErr: true},
		{name: "no digits", value: 1, digits: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BCDDigits(tt.value, tt.digits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// fakePin records the level sequence it was driven through.
type fakePin struct {
	levels []bool
}

func (p *fakePin) High() { p.levels = append(p.levels, true) }
func (p *fakePin) Low()  { p.levels = append(p.levels, false) }

// last returns the most recent level, defaulting to low.
func (p *fakePin) last() bool {
	if len(p.levels) == 0 {
		return false
	}
	return p.levels[len(p.levels)-1]
}

func newTestDisplay() (*MuxDisplay, [4]*fakePin, []*fakePin) {
	dataPins := [4]*fakePin{{}, {}, {}, {}}
	selPins := []*fakePin{{}, {}, {}}

	var data [4]Pin
	for i, p := range dataPins {
		data[i] = p
	}
	sel := make([]Pin, len(selPins))
	for i, p := range selPins {
		sel[i] = p
	}

	return NewMuxDisplay(data, sel), dataPins, selPins
}

func TestMuxDisplay_Show(t *testing.T) {
	d, dataPins, selPins := newTestDisplay()

	require.NoError(t, d.Show(138))

	// Every select line was pulsed high then low once per latch.
	for _, p := range selPins {
		assert.Equal(t, []bool{true, false}, p.levels)
	}

	// The last digit latched is the least significant one (8 = 0b1000).
	assert.False(t, dataPins[0].last())
	assert.False(t, dataPins[1].last())
	assert.False(t, dataPins[2].last())
	assert.True(t, dataPins[3].last())
}

func TestMuxDisplay_Show_Overflow(t *testing.T) {
	d, _, selPins := newTestDisplay()

	assert.Error(t, d.Show(1000))
	assert.Error(t, d.Show(-1))

	// Nothing was latched.
	for _, p := range selPins {
		assert.Empty(t, p.levels)
	}
}

func TestMuxDisplay_Off(t *testing.T) {
	d, dataPins, selPins := newTestDisplay()

	require.NoError(t, d.Show(999))
	require.NoError(t, d.Off())

	for _, p := range dataPins {
		assert.False(t, p.last())
	}
	for _, p := range selPins {
		assert.Equal(t, false, p.last())
	}
}

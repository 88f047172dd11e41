package sink

import "fmt"

// Pin abstracts one output line of the display wiring. The process-side code
// never touches GPIO registers; hardware integrations supply the Pin
// implementation.
type Pin interface {
	High()
	Low()
}

// BCDDigits decomposes value into BCD digits, least significant first.
// It fails when the value does not fit in the requested number of digits.
func BCDDigits(value uint32, digits int) ([]uint8, error) {
	if digits <= 0 {
		return nil, fmt.Errorf("digits must be positive, got %d", digits)
	}

	out := make([]uint8, digits)
	for i := 0; i < digits; i++ {
		out[i] = uint8(value % 10)
		value /= 10
	}
	if value != 0 {
		return nil, fmt.Errorf("value does not fit in %d digits", digits)
	}

	return out, nil
}

// MuxDisplay drives a BCD-multiplexed numeric display: four shared data lines
// carry one digit at a time and a per-digit select line latches it.
type MuxDisplay struct {
	data [4]Pin
	sel  []Pin
}

var _ Display = (*MuxDisplay)(nil)

// NewMuxDisplay creates a display over four data pins and one select pin per
// digit.
func NewMuxDisplay(data [4]Pin, sel []Pin) *MuxDisplay {
	return &MuxDisplay{data: data, sel: sel}
}

// Show latches each BCD digit of value onto the display, most significant
// digit on the first select line.
func (d *MuxDisplay) Show(value int) error {
	if value < 0 {
		return fmt.Errorf("cannot display negative value %d", value)
	}

	digits, err := BCDDigits(uint32(value), len(d.sel))
	if err != nil {
		return err
	}

	for i, sel := range d.sel {
		// digits is least significant first; select lines are wired most
		// significant first.
		d.setData(digits[len(digits)-1-i])
		sel.High()
		sel.Low()
	}

	return nil
}

// Off blanks the display by latching zeros on every digit with the data
// lines low.
func (d *MuxDisplay) Off() error {
	d.setData(0)
	for _, sel := range d.sel {
		sel.High()
		sel.Low()
	}
	return nil
}

// setData puts one BCD nibble on the four data lines.
func (d *MuxDisplay) setData(nibble uint8) {
	for i, pin := range d.data {
		if (nibble>>i)&1 == 1 {
			pin.High()
		} else {
			pin.Low()
		}
	}
}

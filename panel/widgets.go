package main

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/rangemeter/pkg/sink"
)

var (
	ledOn  = color.NRGBA{R: 0x30, G: 0xc0, B: 0x30, A: 0xff}
	ledOff = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

// panelDisplay implements sink.Display on a large text label, standing in
// for the instrument's numeric LCD. Updates arrive from the worker
// goroutine, so every widget mutation goes through fyne.Do.
type panelDisplay struct {
	text *canvas.Text
}

var _ sink.Display = (*panelDisplay)(nil)

func newPanelDisplay() *panelDisplay {
	text := canvas.NewText("---", color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff})
	text.TextSize = 64
	text.Alignment = fyne.TextAlignCenter
	return &panelDisplay{text: text}
}

func (d *panelDisplay) Show(value int) error {
	fyne.Do(func() {
		d.text.Text = strconv.Itoa(value)
		d.text.Refresh()
	})
	return nil
}

func (d *panelDisplay) Off() error {
	fyne.Do(func() {
		d.text.Text = "---"
		d.text.Refresh()
	})
	return nil
}

func (d *panelDisplay) canvasObject() fyne.CanvasObject {
	return container.NewCenter(d.text)
}

// panelIndicator implements sink.Indicator as a row of LED circles.
type panelIndicator struct {
	leds [sink.MaxLevel]*canvas.Circle
}

var _ sink.Indicator = (*panelIndicator)(nil)

func newPanelIndicator() *panelIndicator {
	ind := &panelIndicator{}
	for i := range ind.leds {
		led := canvas.NewCircle(ledOff)
		led.Resize(fyne.NewSize(24, 24))
		ind.leds[i] = led
	}
	return ind
}

func (i *panelIndicator) SetLevel(level int) error {
	fyne.Do(func() {
		for n, led := range i.leds {
			if n < level {
				led.FillColor = ledOn
			} else {
				led.FillColor = ledOff
			}
			led.Refresh()
		}
	})
	return nil
}

func (i *panelIndicator) Off() error {
	return i.SetLevel(0)
}

func (i *panelIndicator) canvasObject() fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(i.leds))
	for n, led := range i.leds {
		objs[n] = container.NewGridWrap(fyne.NewSize(28, 28), led)
	}
	return container.NewCenter(container.NewHBox(objs...))
}

// updateModeButtons reflects the current flags in the button emphasis.
func updateModeButtons(state *appState) {
	if state.mode == nil {
		return
	}
	setButtonActive(state.measureBtn, state.mode.Enabled())
	setButtonActive(state.holdBtn, state.mode.Hold())
}

func setButtonActive(btn *widget.Button, active bool) {
	if active {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.MediumImportance
	}
	btn.Refresh()
}

// updatePeriodLabel shows the current sampling period.
func updatePeriodLabel(state *appState) {
	if state.periods == nil {
		return
	}
	state.periodLbl.SetText(state.periods.Current().String())
}

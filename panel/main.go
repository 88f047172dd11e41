package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/itohio/rangemeter/pkg/acquire"
	"github.com/itohio/rangemeter/pkg/config"
	"github.com/itohio/rangemeter/pkg/source"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		replayFlag = flag.Bool("replay", false, "Use the stored-waveform replay source instead of a serial port")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	application := app.NewWithID("com.itohio.rangemeter")

	window := application.NewWindow("Range Meter")
	window.Resize(fyne.NewSize(420, 300))
	window.CenterOnScreen()

	state := &appState{
		cfg:       cfg,
		window:    window,
		useReplay: *replayFlag,
		logger:    zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	display := newPanelDisplay()
	indicator := newPanelIndicator()
	state.display = display
	state.indicator = indicator

	toolbar := createToolbar(state)
	controls := createControls(state)

	content := container.NewBorder(
		toolbar,
		controls,
		nil,
		nil,
		container.NewVBox(display.canvasObject(), indicator.canvasObject()),
	)

	window.SetContent(content)
	window.ShowAndRun()

	state.disconnect()
}

// chain tracks the running acquisition pipeline for graceful teardown.
type chain struct {
	cancel context.CancelFunc
	done   chan struct{}
	serial *source.Serial
	timer  *acquire.Timer
}

// appState holds the application state.
type appState struct {
	cfg       *config.Config
	window    fyne.Window
	useReplay bool
	logger    zerolog.Logger

	display   *panelDisplay
	indicator *panelIndicator

	ctrl    *acquire.Controller
	mode    *acquire.Mode
	periods *acquire.Periods
	chain   *chain

	connectBtn *widget.Button
	measureBtn *widget.Button
	holdBtn    *widget.Button
	unitBtn    *widget.Button
	periodLbl  *widget.Label
}

// createToolbar creates the toolbar with the Connect button.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	return container.NewHBox(connectBtn)
}

// createControls creates the mode and period button row. The mode buttons
// mirror the MCU's physical switches and the serial command tokens.
func createControls(state *appState) fyne.CanvasObject {
	state.measureBtn = widget.NewButton("Measure", func() {
		if state.ctrl == nil {
			return
		}
		state.ctrl.ToggleEnable()
		updateModeButtons(state)
	})
	state.holdBtn = widget.NewButton("Hold", func() {
		if state.ctrl == nil {
			return
		}
		state.ctrl.ToggleHold()
		updateModeButtons(state)
	})
	state.unitBtn = widget.NewButton("cm/in", func() {
		if state.ctrl == nil {
			return
		}
		state.ctrl.ToggleUnit()
	})
	fasterBtn := widget.NewButton("Faster", func() {
		if state.ctrl == nil {
			return
		}
		state.ctrl.Faster()
		updatePeriodLabel(state)
	})
	slowerBtn := widget.NewButton("Slower", func() {
		if state.ctrl == nil {
			return
		}
		state.ctrl.Slower()
		updatePeriodLabel(state)
	})
	state.periodLbl = widget.NewLabel("")

	return container.NewHBox(
		state.measureBtn, state.holdBtn, state.unitBtn,
		fasterBtn, slowerBtn, state.periodLbl,
	)
}

// handleConnect starts or stops the acquisition pipeline.
func handleConnect(state *appState) {
	if state.chain != nil {
		state.disconnect()
		fmt.Println("Disconnected")
		return
	}

	mode := acquire.NewMode()
	periods := acquire.NewPeriods(state.cfg.Sampling)

	var src source.Source
	var serialSrc *source.Serial
	if state.useReplay {
		rp, err := source.FromConfig(&state.cfg.Replay)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		src = rp
		fmt.Println("Using replay source")
	} else {
		serialSrc = source.NewSerial(state.cfg.Serial.Port, state.cfg.Serial.BaudRate, source.DefaultBufferSize, state.logger)
		src = serialSrc
	}

	smp := acquire.NewSampler(state.cfg, src, mode, state.display, state.indicator, os.Stdout, state.logger)
	timer := acquire.NewTimer(periods.Current(), smp.Wake)
	state.ctrl = acquire.NewController(mode, periods, timer, state.display, state.indicator, state.logger)
	state.mode = mode
	state.periods = periods

	if serialSrc != nil {
		// The MCU's two buttons mirror the measure and hold toggles.
		serialSrc.OnButton(func(b source.Button) {
			switch b {
			case source.ButtonEnable:
				state.ctrl.ToggleEnable()
			case source.ButtonHold:
				state.ctrl.ToggleHold()
			}
			fyne.Do(func() { updateModeButtons(state) })
		})
		if err := serialSrc.Connect(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
			state.ctrl = nil
			state.mode = nil
			state.periods = nil
			return
		}
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		smp.Run(ctx)
	}()
	timer.Start()

	state.chain = &chain{
		cancel: cancel,
		done:   done,
		serial: serialSrc,
		timer:  timer,
	}

	updateModeButtons(state)
	updatePeriodLabel(state)
}

// disconnect tears the pipeline down: timer first so no further wakes
// arrive, then the worker, then the port.
func (s *appState) disconnect() {
	if s.chain == nil {
		return
	}

	s.chain.timer.Stop()
	s.chain.cancel()
	<-s.chain.done
	if s.chain.serial != nil {
		s.chain.serial.Close()
	}

	s.chain = nil
	s.ctrl = nil
	s.mode = nil
	s.periods = nil
	s.display.Off()
	s.indicator.Off()
}

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/itohio/rangemeter/pkg/acquire"
	"github.com/itohio/rangemeter/pkg/command"
	"github.com/itohio/rangemeter/pkg/config"
	"github.com/itohio/rangemeter/pkg/sink"
	"github.com/itohio/rangemeter/pkg/source"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		replayFlag   = flag.Bool("replay", false, "Use the stored-waveform replay source instead of a serial port")
		waveformFlag = flag.String("waveform", "", "Replay waveform override (ecg, ramp or sine)")
		debugFlag    = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debugFlag {
		logger = logger.Level(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *waveformFlag != "" {
		cfg.Replay.Waveform = *waveformFlag
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel, logger)

	if err := run(ctx, cfg, *replayFlag, logger); err != nil {
		logger.Fatal().Err(err).Msg("acquisition failed")
	}
	logger.Info().Msg("exiting")
}

func run(ctx context.Context, cfg *config.Config, replay bool, logger zerolog.Logger) error {
	mode := acquire.NewMode()
	periods := acquire.NewPeriods(cfg.Sampling)

	disp := &sink.LogDisplay{Log: logger}
	ind := &sink.LogIndicator{Log: logger}

	var src source.Source
	var serialSrc *source.Serial
	if replay {
		rp, err := source.FromConfig(&cfg.Replay)
		if err != nil {
			return err
		}
		src = rp
		logger.Info().Str("waveform", cfg.Replay.Waveform).Int("period", rp.Len()).Msg("using replay source")
	} else {
		serialSrc = source.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate, source.DefaultBufferSize, logger)
		src = serialSrc
	}

	smp := acquire.NewSampler(cfg, src, mode, disp, ind, os.Stdout, logger)
	timer := acquire.NewTimer(periods.Current(), smp.Wake)
	ctrl := acquire.NewController(mode, periods, timer, disp, ind, logger)

	if serialSrc != nil {
		serialSrc.OnButton(func(b source.Button) {
			switch b {
			case source.ButtonEnable:
				ctrl.ToggleEnable()
			case source.ButtonHold:
				ctrl.ToggleHold()
			}
		})
		if err := serialSrc.Connect(); err != nil {
			return err
		}
		defer serialSrc.Close()
		logger.Info().Str("port", cfg.Serial.Port).Msg("connected to serial port")
	}

	// Command channel: tokens on stdin, echo on stdout.
	dec := command.NewDecoder(stdio{}, ctrl, logger)
	go func() {
		if err := dec.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("command decoder stopped")
		}
	}()

	// The worker is parked on its wake latch before the timer starts firing.
	timer.Start()
	defer timer.Stop()
	logger.Info().Dur("period", periods.Current()).Msg("acquisition started")

	return smp.Run(ctx)
}

func handleSignals(cancel context.CancelFunc, logger zerolog.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("received termination signal")
	cancel()
}

// stdio adapts stdin/stdout into the decoder's serial-like channel.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

var _ io.ReadWriter = stdio{}

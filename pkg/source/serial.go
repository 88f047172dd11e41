package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the standard baud rate for the rangefinder MCU.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the readings channel buffer.
	DefaultBufferSize = 100
)

// Button identifies one of the two discrete button edge sources on the MCU.
type Button int

const (
	ButtonEnable Button = 1 // SW1, bound to the enable toggle
	ButtonHold   Button = 2 // SW2, bound to the hold toggle
)

// Reading is one raw measurement line from the MCU.
type Reading struct {
	Timestamp time.Time
	Cm        float64
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads measurement and button-event lines from the rangefinder MCU.
//
// Read returns the most recent measurement received since the previous call,
// or ErrNoSample when the MCU has not produced one yet. Button events are
// delivered through the OnButton callback from the reader goroutine,
// asynchronously with respect to Read.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	readings  chan Reading
	onButton  func(Button)
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	log       zerolog.Logger
}

// NewSerial creates a new live source for the given port and baud rate.
func NewSerial(port string, baudRate int, bufSize int, log zerolog.Logger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		readings: make(chan Reading, bufSize),
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// OnButton registers a callback for button-event lines. The callback runs on
// the reader goroutine and must not block; register before Connect.
func (s *Serial) OnButton(fn func(Button)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onButton = fn
}

// Connect opens the serial port and starts reading lines.
func (s *Serial) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: s.baudRate,
	}

	port, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = port
	s.connected = true

	go s.readLines()

	return nil
}

// Close closes the connection and stops the reader goroutine.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	s.cancel()

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.log.Warn().Err(err).Msg("error closing serial port")
		}
		s.conn = nil
	}

	s.connected = false

	return nil
}

// IsConnected returns whether the source is currently connected.
func (s *Serial) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Read returns the most recent buffered measurement, draining anything older.
// It never blocks; if the MCU produced nothing since the last call it returns
// ErrNoSample.
func (s *Serial) Read() (float64, error) {
	var latest Reading
	got := false
	for {
		select {
		case r := <-s.readings:
			latest = r
			got = true
		default:
			if !got {
				return 0, ErrNoSample
			}
			return latest.Cm, nil
		}
	}
}

// readLines reads lines from the serial port, parsing measurements into the
// readings channel and dispatching button events.
func (s *Serial) readLines() {
	scanner := bufio.NewScanner(s.conn)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil && err != io.EOF {
					s.log.Warn().Err(err).Msg("error reading from serial port")
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			if btn, ok := parseButtonLine(line); ok {
				s.mu.RLock()
				fn := s.onButton
				s.mu.RUnlock()
				if fn != nil {
					fn(btn)
				}
				continue
			}

			reading, err := parseMeasurementLine(line)
			if err != nil {
				s.log.Debug().Str("line", line).Err(err).Msg("failed to parse line")
				continue
			}

			select {
			case s.readings <- reading:
			case <-s.ctx.Done():
				return
			default:
				// Channel full; the oldest readings are stale anyway, Read
				// drains to the latest.
				s.log.Debug().Msg("readings channel full, dropping reading")
			}
		}
	}
}

// parseMeasurementLine parses a measurement line from the MCU.
// Format: unix_micros,millimeters
// Example: 1234567890123,436
func parseMeasurementLine(line string) (Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return Reading{}, fmt.Errorf("invalid line format: expected 2 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	timestamp := time.Unix(0, timestampMicros*1000)

	mm, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid distance: %w", err)
	}

	return Reading{
		Timestamp: timestamp,
		Cm:        float64(mm) / 10.0,
	}, nil
}

// parseButtonLine recognizes button-event lines of the form "B,<n>".
func parseButtonLine(line string) (Button, bool) {
	rest, ok := strings.CutPrefix(line, "B,")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	switch Button(n) {
	case ButtonEnable, ButtonHold:
		return Button(n), true
	default:
		return 0, false
	}
}

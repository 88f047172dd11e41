package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Sampling SamplingConfig `yaml:"sampling"`
	Display  DisplayConfig  `yaml:"display"`
	Transmit TransmitConfig `yaml:"transmit"`
	Replay   ReplayConfig   `yaml:"replay"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// SamplingConfig contains the acquisition timer parameters.
// Period is clamped to [MinPeriod, MaxPeriod] and adjusted in Step increments
// by the faster/slower commands.
type SamplingConfig struct {
	Period    time.Duration `yaml:"period"`
	MinPeriod time.Duration `yaml:"min_period"`
	MaxPeriod time.Duration `yaml:"max_period"`
	Step      time.Duration `yaml:"step"`
}

// DisplayConfig contains the indicator banding thresholds (in centimeters)
// and the number of digits of the numeric display.
type DisplayConfig struct {
	NearCm float64 `yaml:"near_cm"` // below this: all indicator segments off
	MidCm  float64 `yaml:"mid_cm"`  // [near, mid): one segment
	FarCm  float64 `yaml:"far_cm"`  // [mid, far): two segments, above: three
	Digits int     `yaml:"digits"`
}

// TransmitConfig contains the outbound line format parameters.
type TransmitConfig struct {
	Label string `yaml:"label"`
}

// ReplayConfig selects the stored waveform used by the replay source.
type ReplayConfig struct {
	Waveform      string  `yaml:"waveform"`       // "ecg", "ramp" or "sine"
	SineLength    int     `yaml:"sine_length"`    // samples per sine period
	SineAmplitude float64 `yaml:"sine_amplitude"` // peak deviation (cm)
	SineBias      float64 `yaml:"sine_bias"`      // midpoint (cm)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Sampling: SamplingConfig{
			Period:    1000 * time.Millisecond,
			MinPeriod: 100 * time.Millisecond,
			MaxPeriod: 2000 * time.Millisecond,
			Step:      100 * time.Millisecond,
		},
		Display: DisplayConfig{
			NearCm: 10,
			MidCm:  20,
			FarCm:  30,
			Digits: 3,
		},
		Transmit: TransmitConfig{
			Label: "Distancia",
		},
		Replay: ReplayConfig{
			Waveform:      "ecg",
			SineLength:    128,
			SineAmplitude: 120,
			SineBias:      130,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Sampling.Period == 0 {
		c.Sampling.Period = def.Sampling.Period
	}
	if c.Sampling.MinPeriod == 0 {
		c.Sampling.MinPeriod = def.Sampling.MinPeriod
	}
	if c.Sampling.MaxPeriod == 0 {
		c.Sampling.MaxPeriod = def.Sampling.MaxPeriod
	}
	if c.Sampling.Step == 0 {
		c.Sampling.Step = def.Sampling.Step
	}

	if c.Display.NearCm == 0 {
		c.Display.NearCm = def.Display.NearCm
	}
	if c.Display.MidCm == 0 {
		c.Display.MidCm = def.Display.MidCm
	}
	if c.Display.FarCm == 0 {
		c.Display.FarCm = def.Display.FarCm
	}
	if c.Display.Digits == 0 {
		c.Display.Digits = def.Display.Digits
	}

	if c.Transmit.Label == "" {
		c.Transmit.Label = def.Transmit.Label
	}

	if c.Replay.Waveform == "" {
		c.Replay.Waveform = def.Replay.Waveform
	}
	if c.Replay.SineLength == 0 {
		c.Replay.SineLength = def.Replay.SineLength
	}
	if c.Replay.SineAmplitude == 0 {
		c.Replay.SineAmplitude = def.Replay.SineAmplitude
	}
	if c.Replay.SineBias == 0 {
		c.Replay.SineBias = def.Replay.SineBias
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/itohio/dvm/pkg/calib"
	"gopkg.in/yaml.v3"
)

// Conversion source kinds.
const (
	SourceMock    = "mock"
	SourceSerial  = "serial"
	SourceMCP3008 = "mcp3008"
)

var (
	ErrWindow = errors.New("sampler window out of range")
	ErrTick   = errors.New("display tick period must be positive")
	ErrSource = errors.New("unknown conversion source")
	ErrPins   = errors.New("invalid gpio pin assignment")
)

// Config represents the application configuration.
type Config struct {
	Calibration calib.Calibration `yaml:"calibration"`
	Sampler     SamplerConfig     `yaml:"sampler"`
	Display     DisplayConfig     `yaml:"display"`
	Source      SourceConfig      `yaml:"source"`
	Serial      SerialConfig      `yaml:"serial"`
	Mock        MockConfig        `yaml:"mock"`
	GPIO        GPIOConfig        `yaml:"gpio"`
}

// SamplerConfig contains averaging parameters.
type SamplerConfig struct {
	Window int `yaml:"window"` // Raw samples per published reading
}

// DisplayConfig contains multiplexing parameters.
type DisplayConfig struct {
	TickPeriod time.Duration `yaml:"tick_period"` // Time each digit stays lit
}

// SourceConfig selects where conversions come from.
type SourceConfig struct {
	Kind         string        `yaml:"kind"`          // mock, serial or mcp3008
	SamplePeriod time.Duration `yaml:"sample_period"` // Free-running conversion period (mcp3008)
}

// SerialConfig contains serial ADC bridge configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// MockConfig contains simulated input configuration.
type MockConfig struct {
	InputMV    float64       `yaml:"input_mv"`    // Simulated input voltage before the divider (mV)
	NoiseMV    float64       `yaml:"noise_mv"`    // Peak noise amplitude (mV)
	SampleRate time.Duration `yaml:"sample_rate"` // Conversion period
}

// GPIOConfig contains Raspberry Pi BCM pin assignments.
type GPIOConfig struct {
	BCD    []int `yaml:"bcd"`    // Four BCD lines, least significant first
	Digits []int `yaml:"digits"` // Digit select lines: tenths, ones, tens

	ADCClock   int           `yaml:"adc_clock"`
	ADCSelect  int           `yaml:"adc_select"`
	ADCMosi    int           `yaml:"adc_mosi"`
	ADCMiso    int           `yaml:"adc_miso"`
	ADCChannel int           `yaml:"adc_channel"`
	ADCTClk    time.Duration `yaml:"adc_tclk"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Calibration: calib.Default(),
		Sampler: SamplerConfig{
			Window: 50,
		},
		Display: DisplayConfig{
			TickPeriod: time.Millisecond, // ~333 full display cycles per second
		},
		Source: SourceConfig{
			Kind:         SourceMock,
			SamplePeriod: time.Millisecond,
		},
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 115200,
		},
		Mock: MockConfig{
			InputMV:    12300,
			NoiseMV:    50,
			SampleRate: time.Millisecond,
		},
		GPIO: GPIOConfig{
			BCD:        []int{17, 27, 22, 23},
			Digits:     []int{5, 13, 16},
			ADCClock:   21,
			ADCSelect:  6,
			ADCMosi:    19,
			ADCMiso:    26,
			ADCChannel: 0,
			ADCTClk:    500 * time.Nanosecond,
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

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.Calibration.Validate(); err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	if c.Sampler.Window < 1 || c.Sampler.Window > 255 {
		return fmt.Errorf("%w: %d", ErrWindow, c.Sampler.Window)
	}
	if c.Display.TickPeriod <= 0 {
		return fmt.Errorf("%w: %v", ErrTick, c.Display.TickPeriod)
	}
	switch c.Source.Kind {
	case SourceMock, SourceSerial, SourceMCP3008:
	default:
		return fmt.Errorf("%w: %q", ErrSource, c.Source.Kind)
	}
	if len(c.GPIO.BCD) != 4 {
		return fmt.Errorf("%w: need 4 bcd lines, got %d", ErrPins, len(c.GPIO.BCD))
	}
	if len(c.GPIO.Digits) != 3 {
		return fmt.Errorf("%w: need 3 digit lines, got %d", ErrPins, len(c.GPIO.Digits))
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Calibration.RealMaxMV == 0 {
		c.Calibration.RealMaxMV = def.Calibration.RealMaxMV
	}
	if c.Calibration.MeasuredMaxMV == 0 {
		c.Calibration.MeasuredMaxMV = def.Calibration.MeasuredMaxMV
	}
	if c.Calibration.FullScale == 0 {
		c.Calibration.FullScale = def.Calibration.FullScale
	}
	if c.Calibration.Formula == "" {
		c.Calibration.Formula = def.Calibration.Formula
	}

	if c.Sampler.Window == 0 {
		c.Sampler.Window = def.Sampler.Window
	}
	if c.Display.TickPeriod == 0 {
		c.Display.TickPeriod = def.Display.TickPeriod
	}

	if c.Source.Kind == "" {
		c.Source.Kind = def.Source.Kind
	}
	if c.Source.SamplePeriod == 0 {
		c.Source.SamplePeriod = def.Source.SamplePeriod
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}

	if len(c.GPIO.BCD) == 0 {
		c.GPIO.BCD = def.GPIO.BCD
	}
	if len(c.GPIO.Digits) == 0 {
		c.GPIO.Digits = def.GPIO.Digits
	}
	if c.GPIO.ADCTClk == 0 {
		c.GPIO.ADCTClk = def.GPIO.ADCTClk
	}
}

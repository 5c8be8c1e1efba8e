package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Pins holds the GPIO line offsets for the control panel.
type Pins struct {
	// Start, Pause, Stop, Increment and Decrement are the button lines.
	Start     int `yaml:"start"`
	Pause     int `yaml:"pause"`
	Stop      int `yaml:"stop"`
	Increment int `yaml:"increment"`
	Decrement int `yaml:"decrement"`

	// Door is the door switch level line.
	Door int `yaml:"door"`
	// PowerEnable is the power-set key level line.
	PowerEnable int `yaml:"power_enable"`
	// AdjustLow and AdjustHigh form the 2-bit digit-group selector.
	AdjustLow  int `yaml:"adjust_low"`
	AdjustHigh int `yaml:"adjust_high"`
}

// Config holds the controller's runtime parameters.
type Config struct {
	// ReferenceHz is the control loop rate the 1 Hz tick is divided from.
	ReferenceHz int `yaml:"reference_hz"`
	// GPIOChip is the GPIO character device name.
	GPIOChip string `yaml:"gpio_chip"`
	// Pins maps the panel to GPIO line offsets.
	Pins Pins `yaml:"pins"`
	// Broker is the MQTT broker address; empty disables telemetry.
	Broker string `yaml:"broker"`
	// Heartbeat is the telemetry heartbeat interval.
	Heartbeat time.Duration `yaml:"heartbeat"`
	// UpdateFolder is the URL where release artifacts are hosted.
	UpdateFolder string `yaml:"update_folder"`
	// LogLevel is the minimum log level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "ovenctl-settings.yaml"

	// DefaultReferenceHz is used when no loop rate is configured. The
	// hardware ancestor divided 100 MHz; a software loop at 100 Hz yields
	// the same 1 Hz tick with the same divider arithmetic.
	DefaultReferenceHz = 100

	// DefaultGPIOChip is the default GPIO character device.
	DefaultGPIOChip = "gpiochip0"

	// DefaultHeartbeat is the default telemetry heartbeat interval.
	DefaultHeartbeat = 15 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// DefaultPins is the panel wiring on the reference board (BCM numbering).
//
//nolint:gochecknoglobals // Shared immutable default, same role as the constants above.
var DefaultPins = Pins{
	Start:       5,
	Pause:       6,
	Stop:        13,
	Increment:   19,
	Decrement:   26,
	Door:        16,
	PowerEnable: 20,
	AdjustLow:   21,
	AdjustHigh:  12,
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errReferenceTooSlow is returned when the loop rate cannot derive a 1 Hz tick.
	errReferenceTooSlow = errors.New("reference_hz must be at least 2")
	// errOddReference is returned when the loop rate is not divisible in half.
	errOddReference = errors.New("reference_hz must be even")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for omitted fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ReferenceHz == 0 {
		cfg.ReferenceHz = DefaultReferenceHz
	}

	if cfg.ReferenceHz < 2 {
		return fmt.Errorf("reference rate %d: %w", cfg.ReferenceHz, errReferenceTooSlow)
	}

	// The divider counts half periods; an odd rate would drift the tick.
	if cfg.ReferenceHz%2 != 0 {
		return fmt.Errorf("reference rate %d: %w", cfg.ReferenceHz, errOddReference)
	}

	if cfg.GPIOChip == "" {
		cfg.GPIOChip = DefaultGPIOChip
	}

	if cfg.Pins == (Pins{}) {
		cfg.Pins = DefaultPins
	}

	if cfg.Heartbeat == 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}

	if cfg.UpdateFolder == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.UpdateFolder); err != nil {
		return fmt.Errorf("invalid update folder URI: %w", err)
	}

	return nil
}

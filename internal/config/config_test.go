package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidateDefaults verifies omitted fields are filled with defaults.
func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	cfg := new(Config)
	require.NoError(t, Validate(cfg))

	require.Equal(t, DefaultReferenceHz, cfg.ReferenceHz)
	require.Equal(t, DefaultGPIOChip, cfg.GPIOChip)
	require.Equal(t, DefaultPins, cfg.Pins)
	require.Equal(t, DefaultHeartbeat, cfg.Heartbeat)
}

// TestValidateRejectsBadReferenceRate covers the divider guards.
func TestValidateRejectsBadReferenceRate(t *testing.T) {
	t.Parallel()

	cfg := &Config{ReferenceHz: 1}
	require.Error(t, Validate(cfg))

	// Odd rates cannot be divided into equal half periods.
	cfg = &Config{ReferenceHz: 25}
	require.Error(t, Validate(cfg))

	cfg = &Config{ReferenceHz: 50}
	require.NoError(t, Validate(cfg))
}

// TestValidateRejectsBadUpdateFolder verifies update folder URI validation.
func TestValidateRejectsBadUpdateFolder(t *testing.T) {
	t.Parallel()

	cfg := &Config{UpdateFolder: "not a url"}
	require.Error(t, Validate(cfg))

	cfg = &Config{UpdateFolder: "https://updates.local/ovenctl/"}
	require.NoError(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back
// correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		ReferenceHz:  200,
		GPIOChip:     "gpiochip1",
		Broker:       "tcp://192.168.1.200:1883",
		Heartbeat:    time.Minute,
		UpdateFolder: "https://updates.local/ovenctl/",
		LogLevel:     "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ReferenceHz, loaded.ReferenceHz)
	require.Equal(t, cfg.GPIOChip, loaded.GPIOChip)
	require.Equal(t, cfg.Broker, loaded.Broker)
	require.Equal(t, cfg.UpdateFolder, loaded.UpdateFolder)
	require.Equal(t, cfg.LogLevel, loaded.LogLevel)

	// Defaults filled during validation survive the roundtrip.
	require.Equal(t, DefaultPins, loaded.Pins)
}

// TestSaveNilConfig verifies the nil guard.
func TestSaveNilConfig(t *testing.T) {
	t.Parallel()

	require.Error(t, Save("", nil))
}

// TestLoadMissingFile verifies a wrapped read error.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// Package config loads, validates and persists the controller's YAML
// settings: loop rate, GPIO wiring, telemetry broker and update source.
package config

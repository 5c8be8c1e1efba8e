// Package telemetry publishes controller state changes and process
// lifecycle events over MQTT, with a fake publisher for tests.
package telemetry

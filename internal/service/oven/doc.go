// Package oven wires the timer controller together: the synchronous
// machine of tick divider, appliance controller and countdown timer, the
// GPIO input source, display composition and MQTT telemetry, all advanced
// by a fixed-rate scheduler tick.
package oven

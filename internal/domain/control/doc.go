// Package control implements the outer appliance state machine: door
// gating, target-time adjustment, the three-level power setting and the
// power indicator. It drives the countdown timer in package timer through
// start/pause/stop command pulses and reads back its done level.
package control

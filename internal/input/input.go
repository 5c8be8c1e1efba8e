// Package input delivers debounced button events and panel levels to the
// control loop, with hardware abstraction. The real implementation uses
// the Linux GPIO character device; a fake stands in for tests.
package input

import (
	"github.com/mkazantsev/ovenctl/internal/domain/control"
)

// Events are one-shot button presses accumulated since the previous poll.
// Debouncing and edge extraction happen upstream (in hardware for the real
// source), so each physical press surfaces exactly once.
type Events struct {
	Start     bool
	Pause     bool
	Stop      bool
	Increment bool
	Decrement bool
}

// Levels are continuous panel conditions sampled at poll time.
type Levels struct {
	// DoorOpen is true while the door switch reads open.
	DoorOpen bool
	// PowerEnable is true while the power-set key is held.
	PowerEnable bool
	// Adjust is the digit-group selector decoded from two selector lines.
	Adjust control.AdjustField
}

// Source provides one cycle's inputs per poll.
type Source interface {
	// Poll consumes pending button events and samples the panel levels.
	// Events are cleared by the call: polling faster than a press lasts
	// still yields a single firing.
	Poll() (Events, Levels, error)

	// Close releases input resources.
	Close() error
}

package telemetry

import (
	"encoding/json"
	"time"
)

// MQTT topics for controller telemetry.
const (
	// TopicEvents carries outer state-machine transitions.
	TopicEvents = "appliance/ovenctl/events"
	// TopicSystem carries process lifecycle events.
	TopicSystem = "appliance/ovenctl/system"
)

// Transition describes one outer state-machine change.
type Transition struct {
	Timestamp time.Time
	// From and To are the outer mode names.
	From string
	To   string
	// Minutes and Seconds are the remaining time at the transition.
	Minutes uint8
	Seconds uint8
	// Power is the visible power level.
	Power uint8
	// DoorOpen is the door switch level at the transition.
	DoorOpen bool
}

// SystemEvent is a process lifecycle event (startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	// Reason carries the signal name on shutdown.
	Reason string
	// Uptime is set on heartbeats.
	Uptime time.Duration
	// Cycles is the number of control cycles run, set on heartbeats.
	Cycles uint64
	// Retained marks the message for broker retention.
	Retained bool
}

// Publisher publishes controller telemetry. A publish failure must never
// stop the control loop.
type Publisher interface {
	// PublishTransition sends an outer state change to the broker.
	PublishTransition(t Transition) error

	// PublishSystem sends a lifecycle event to the broker.
	PublishSystem(e SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// transitionPayload is the wire shape for TopicEvents.
type transitionPayload struct {
	Oven transitionInner `json:"oven"`
}

type transitionInner struct {
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Remaining string `json:"remaining"`
	Power     uint8  `json:"power"`
	DoorOpen  bool   `json:"door_open"`
}

// FormatTransitionPayload creates the JSON payload for a transition.
func FormatTransitionPayload(t Transition) ([]byte, error) {
	payload := transitionPayload{
		Oven: transitionInner{
			Timestamp: t.Timestamp.UTC().Format(time.RFC3339),
			From:      t.From,
			To:        t.To,
			Remaining: remainingString(t.Minutes, t.Seconds),
			Power:     t.Power,
			DoorOpen:  t.DoorOpen,
		},
	}

	return json.Marshal(payload)
}

// systemPayload is the wire shape for TopicSystem.
type systemPayload struct {
	System systemInner `json:"system"`
}

type systemInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
	Cycles    uint64 `json:"cycles,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
func FormatSystemPayload(e SystemEvent) ([]byte, error) {
	payload := systemPayload{
		System: systemInner{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			Event:     e.Event,
			Reason:    e.Reason,
			Cycles:    e.Cycles,
		},
	}

	if e.Uptime > 0 {
		payload.System.Uptime = e.Uptime.String()
	}

	return json.Marshal(payload)
}

// remainingString renders remaining time as mm:ss.
func remainingString(minutes, seconds uint8) string {
	const digits = "0123456789"

	return string([]byte{
		digits[minutes/10], digits[minutes%10],
		':',
		digits[seconds/10], digits[seconds%10],
	})
}

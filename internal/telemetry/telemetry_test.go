package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFormatTransitionPayload verifies the wire shape of a transition.
func TestFormatTransitionPayload(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	payload, err := FormatTransitionPayload(Transition{
		Timestamp: ts,
		From:      "idle",
		To:        "counting_down",
		Minutes:   2,
		Seconds:   5,
		Power:     1,
		DoorOpen:  false,
	})
	require.NoError(t, err)

	var decoded map[string]map[string]any

	require.NoError(t, json.Unmarshal(payload, &decoded))

	oven := decoded["oven"]
	require.Equal(t, "2026-08-01T12:00:00Z", oven["timestamp"])
	require.Equal(t, "idle", oven["from"])
	require.Equal(t, "counting_down", oven["to"])
	require.Equal(t, "02:05", oven["remaining"])
	require.InDelta(t, 1, oven["power"], 0)
	require.Equal(t, false, oven["door_open"])
}

// TestFormatSystemPayload verifies lifecycle payloads, with and without
// heartbeat fields.
func TestFormatSystemPayload(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: ts,
		Event:     "SHUTDOWN",
		Reason:    "signal",
	})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"system":{"timestamp":"2026-08-01T12:00:00Z","event":"SHUTDOWN","reason":"signal"}}`,
		string(payload))

	payload, err = FormatSystemPayload(SystemEvent{
		Timestamp: ts,
		Event:     "HEARTBEAT",
		Uptime:    90 * time.Second,
		Cycles:    9000,
	})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"system":{"timestamp":"2026-08-01T12:00:00Z","event":"HEARTBEAT","uptime":"1m30s","cycles":9000}}`,
		string(payload))
}

// TestFakePublisherRecords verifies the test double records everything in
// order.
func TestFakePublisherRecords(t *testing.T) {
	t.Parallel()

	f := NewFakePublisher()

	require.NoError(t, f.PublishTransition(Transition{From: "idle", To: "counting_down"}))
	require.NoError(t, f.PublishSystem(SystemEvent{Event: "STARTUP"}))
	require.NoError(t, f.Close())

	require.Len(t, f.Transitions, 1)
	require.Equal(t, "counting_down", f.Transitions[0].To)
	require.Len(t, f.System, 1)
	require.True(t, f.Closed)
}

package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/ovenctl/internal/domain/control"
)

// TestFakeSourceConsumesEventsOnce verifies queued presses fire exactly
// once, matching the single-firing guarantee of the real source.
func TestFakeSourceConsumesEventsOnce(t *testing.T) {
	t.Parallel()

	f := NewFakeSource()
	f.Press(Events{Start: true})

	events, _, err := f.Poll()
	require.NoError(t, err)
	require.True(t, events.Start)

	events, _, err = f.Poll()
	require.NoError(t, err)
	require.Equal(t, Events{}, events)
}

// TestFakeSourceLevelsPersist verifies levels hold across polls until
// changed.
func TestFakeSourceLevelsPersist(t *testing.T) {
	t.Parallel()

	f := NewFakeSource()
	f.SetLevels(Levels{DoorOpen: true, Adjust: control.AdjustMinutesTens})

	_, levels, err := f.Poll()
	require.NoError(t, err)
	require.True(t, levels.DoorOpen)
	require.Equal(t, control.AdjustMinutesTens, levels.Adjust)

	_, levels, err = f.Poll()
	require.NoError(t, err)
	require.True(t, levels.DoorOpen)

	require.NoError(t, f.Close())
	require.True(t, f.Closed)
}

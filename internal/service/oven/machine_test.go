package oven

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/ovenctl/internal/display"
	"github.com/mkazantsev/ovenctl/internal/domain/control"
	"github.com/mkazantsev/ovenctl/internal/input"
)

// referenceHz keeps machine tests fast: one simulated second is four cycles.
const referenceHz = 4

// idle runs n cycles with no events.
func idle(m *Machine, n int, lv input.Levels) Status {
	var st Status
	for range n {
		st = m.Cycle(input.Events{}, lv)
	}

	return st
}

// second runs one simulated second's worth of quiet cycles.
func second(m *Machine, lv input.Levels) Status {
	return idle(m, referenceHz, lv)
}

// TestFiveSecondCook drives the whole machine through the reference
// scenario: set 0:05, start with the door closed, five ticks to zero,
// outer machine back to idle.
func TestFiveSecondCook(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(referenceHz)
	require.NoError(t, err)

	// Five presses on the seconds-units button.
	for range 5 {
		m.Cycle(input.Events{Increment: true}, input.Levels{})
	}

	st := m.Cycle(input.Events{Start: true}, input.Levels{})
	require.Equal(t, control.ModeCountingDown, st.Mode)

	// The start cycle plus the next cycle carry the command into the inner
	// machine before its first full second elapses.
	for range 5 {
		st = second(m, input.Levels{})
	}

	require.Equal(t, uint8(0), st.Minutes)
	require.Equal(t, uint8(0), st.Seconds)

	// A few quiet cycles let done propagate outward. Once the timer is
	// idle again it goes back to mirroring the still-set 0:05 target, so
	// done de-asserts right after the outer machine has seen it.
	st = idle(m, 3, input.Levels{})
	require.Equal(t, control.ModeIdle, st.Mode)
	require.Equal(t, uint8(5), st.Seconds)
	require.False(t, st.Done)
}

// TestDoorOpenPausesCountdown verifies the door level pauses the cook
// with no pause press and the remaining time freezes.
func TestDoorOpenPausesCountdown(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(referenceHz)
	require.NoError(t, err)

	// 0:30 via three seconds-tens presses.
	for range 3 {
		m.Cycle(input.Events{Increment: true}, input.Levels{Adjust: control.AdjustSecondsTens})
	}

	m.Cycle(input.Events{Start: true}, input.Levels{})

	st := second(m, input.Levels{})
	require.Equal(t, uint8(29), st.Seconds)

	open := input.Levels{DoorOpen: true}

	st = m.Cycle(input.Events{}, open)
	require.Equal(t, control.ModePaused, st.Mode)

	frozen := st.Seconds

	st = idle(m, referenceHz*3, open)
	require.Equal(t, frozen, st.Seconds)
	require.Equal(t, control.ModePaused, st.Mode)

	// Door closed, start resumes the countdown.
	m.Cycle(input.Events{Start: true}, input.Levels{})

	st = second(m, input.Levels{})
	require.Equal(t, frozen-1, st.Seconds)
	require.Equal(t, control.ModeCountingDown, st.Mode)
}

// TestZeroTargetStartFallsStraightBack verifies starting with nothing on
// the clock returns to idle within a couple of cycles.
func TestZeroTargetStartFallsStraightBack(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(referenceHz)
	require.NoError(t, err)

	st := m.Cycle(input.Events{Start: true}, input.Levels{})
	require.Equal(t, control.ModeCountingDown, st.Mode)

	st = idle(m, 3, input.Levels{})
	require.Equal(t, control.ModeIdle, st.Mode)
	require.True(t, st.Done)
}

// TestPowerSlotCarriesBracket verifies the composed frame routes the
// power glyph when the scan reaches the reserved slot.
func TestPowerSlotCarriesBracket(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(referenceHz)
	require.NoError(t, err)

	var sawBracket bool

	for range display.SlotCount {
		st := m.Cycle(input.Events{}, input.Levels{})
		if st.Frame.ActiveSlot == display.PowerSlot {
			require.Equal(t, display.CodeBracketLow, st.Frame.Codes[display.PowerSlot])

			sawBracket = true
		}
	}

	require.True(t, sawBracket)
}

// TestMachineReset verifies every block returns to its fixed default.
func TestMachineReset(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(referenceHz)
	require.NoError(t, err)

	m.Cycle(input.Events{Increment: true}, input.Levels{Adjust: control.AdjustMinutesTens})
	m.Cycle(input.Events{Start: true}, input.Levels{})

	m.Reset()

	st := m.Cycle(input.Events{}, input.Levels{})
	require.Equal(t, control.ModeIdle, st.Mode)
	require.Equal(t, uint8(0), st.Minutes)
	require.Equal(t, uint8(0), st.Seconds)
	require.True(t, st.Done)
}

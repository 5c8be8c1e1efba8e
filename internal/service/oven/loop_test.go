package oven

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/ovenctl/internal/display"
	"github.com/mkazantsev/ovenctl/internal/input"
	"github.com/mkazantsev/ovenctl/internal/telemetry"
)

// recordingSink counts frames pushed through the loop.
type recordingSink struct {
	frames []display.Frame
}

func (s *recordingSink) Show(f display.Frame) error {
	s.frames = append(s.frames, f)

	return nil
}

// runCycles feeds the loop exactly n ticks and waits for it to wind down.
// The extra tick guarantees the first n iterations have completed before
// the context is canceled.
func runCycles(t *testing.T, machine *Machine, source input.Source,
	publisher telemetry.Publisher, sink display.Sink, heartbeatCycles uint64, n int,
) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	tick := make(chan time.Time)
	done := make(chan error, 1)

	go func() {
		done <- loop(ctx, machine, source, publisher, sink, tick, heartbeatCycles)
	}()

	for range n + 1 {
		tick <- time.Time{}
	}

	cancel()
	require.NoError(t, <-done)
}

// TestLoopPublishesTransitions verifies a start press surfaces as a mode
// transition on the telemetry publisher.
func TestLoopPublishesTransitions(t *testing.T) {
	t.Parallel()

	machine, err := NewMachine(referenceHz)
	require.NoError(t, err)

	source := input.NewFakeSource()
	source.Press(input.Events{Increment: true})
	source.Press(input.Events{Increment: true})
	source.Press(input.Events{Start: true})

	publisher := telemetry.NewFakePublisher()
	sink := &recordingSink{}

	runCycles(t, machine, source, publisher, sink, 0, 6)

	require.NotEmpty(t, publisher.Transitions)
	require.Equal(t, "idle", publisher.Transitions[0].From)
	require.Equal(t, "counting_down", publisher.Transitions[0].To)
	require.NotEmpty(t, sink.frames)
}

// TestLoopHeartbeat verifies periodic heartbeats carry cycle counts.
func TestLoopHeartbeat(t *testing.T) {
	t.Parallel()

	machine, err := NewMachine(referenceHz)
	require.NoError(t, err)

	publisher := telemetry.NewFakePublisher()

	runCycles(t, machine, input.NewFakeSource(), publisher, &recordingSink{}, 4, 9)

	require.GreaterOrEqual(t, len(publisher.System), 2)
	require.Equal(t, "HEARTBEAT", publisher.System[0].Event)
	require.Equal(t, uint64(4), publisher.System[0].Cycles)
}

// TestLoopSurvivesPollErrors verifies an input failure skips the cycle
// instead of killing the loop.
func TestLoopSurvivesPollErrors(t *testing.T) {
	t.Parallel()

	machine, err := NewMachine(referenceHz)
	require.NoError(t, err)

	source := input.NewFakeSource()
	source.PollError = errors.New("wire fell out")

	sink := &recordingSink{}

	runCycles(t, machine, source, telemetry.NewFakePublisher(), sink, 0, 4)

	require.Empty(t, sink.frames)
}

// TestLoopRunsWithoutPublisher verifies telemetry stays optional.
func TestLoopRunsWithoutPublisher(t *testing.T) {
	t.Parallel()

	machine, err := NewMachine(referenceHz)
	require.NoError(t, err)

	sink := &recordingSink{}

	runCycles(t, machine, input.NewFakeSource(), nil, sink, 0, 3)

	require.NotEmpty(t, sink.frames)
}

package oven

import (
	"github.com/mkazantsev/ovenctl/internal/clock"
	"github.com/mkazantsev/ovenctl/internal/display"
	"github.com/mkazantsev/ovenctl/internal/domain/control"
	"github.com/mkazantsev/ovenctl/internal/domain/timer"
	"github.com/mkazantsev/ovenctl/internal/input"
)

// Machine binds the three synchronous blocks: the tick divider, the outer
// appliance controller and the inner countdown timer, plus the display
// composer. All of them advance together, once per Cycle call.
type Machine struct {
	tick     *clock.TickGenerator
	timer    *timer.Countdown
	ctrl     *control.Controller
	composer display.Composer
	refHz    int
}

// Status is the externally visible result of one cycle.
type Status struct {
	// Frame is the composed display output for this cycle.
	Frame display.Frame
	// Mode is the outer controller mode after the cycle.
	Mode control.Mode
	// Minutes and Seconds are the timer's remaining time.
	Minutes uint8
	Seconds uint8
	// Power is the visible power level.
	Power uint8
	// Done is the timer's done level.
	Done bool
}

// NewMachine creates a machine whose 1 Hz tick is divided from the given
// reference rate.
func NewMachine(referenceHz int) (*Machine, error) {
	gen, err := clock.NewTickGenerator(referenceHz)
	if err != nil {
		return nil, err
	}

	return &Machine{
		tick:  gen,
		timer: timer.New(),
		ctrl:  control.New(),
		refHz: referenceHz,
	}, nil
}

// Reset returns every block to its fixed default. Nothing is persisted.
func (m *Machine) Reset() {
	m.tick.Reset()
	m.timer.Reset()
	m.ctrl.Reset()
	m.composer.Reset()
}

// Cycle runs one synchronous update.
//
// Ordering preserves the register/next-state separation of the original
// design: the outer controller decides from the timer's done level as it
// stood after the previous cycle, then the timer advances, then the
// display is composed. No partial update is visible between blocks.
func (m *Machine) Cycle(ev input.Events, lv input.Levels) Status {
	tick := m.tick.Advance()
	done := m.timer.Done()

	cmd := m.ctrl.Update(control.Inputs{
		Start:       ev.Start,
		Pause:       ev.Pause,
		Stop:        ev.Stop,
		Increment:   ev.Increment,
		Decrement:   ev.Decrement,
		PowerEnable: lv.PowerEnable,
		DoorOpen:    lv.DoorOpen,
		Adjust:      lv.Adjust,
	}, done)

	targetMinutes, targetSeconds := m.ctrl.Target()
	m.timer.Update(cmd, tick, targetMinutes, targetSeconds)

	frame := m.composer.Compose(
		m.timer.Digits(),
		display.BracketCode(m.ctrl.PowerLevel()),
		m.ctrl.Indicator(),
	)

	minutes, seconds := m.timer.Remaining()

	return Status{
		Frame:   frame,
		Mode:    m.ctrl.Mode(),
		Minutes: minutes,
		Seconds: seconds,
		Power:   m.ctrl.PowerLevel(),
		Done:    m.timer.Done(),
	}
}

// ReferenceHz returns the reference rate the machine was built for.
func (m *Machine) ReferenceHz() int {
	return m.refHz
}

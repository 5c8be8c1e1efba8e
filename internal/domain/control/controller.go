package control

import (
	"github.com/mkazantsev/ovenctl/internal/domain/timer"
)

// Mode is the appliance controller's own state value, deliberately a
// distinct type from timer.Mode: the outer machine reacts to the door,
// the inner one does not.
type Mode uint8

const (
	// ModeIdle means the appliance is not heating; time can be set.
	ModeIdle Mode = iota
	// ModeCountingDown means the appliance is heating with the door closed.
	ModeCountingDown
	// ModePaused means heating is suspended, by button or by an open door.
	ModePaused
)

// String returns a human-readable mode name for logs and telemetry.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeCountingDown:
		return "counting_down"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// AdjustField selects which digit group the increment and decrement
// buttons act on.
type AdjustField uint8

const (
	// AdjustSecondsUnits is the default field: one second per press.
	AdjustSecondsUnits AdjustField = iota
	// AdjustSecondsTens steps ten seconds per press.
	AdjustSecondsTens
	// AdjustMinutesUnits steps one minute per press.
	AdjustMinutesUnits
	// AdjustMinutesTens steps ten minutes per press.
	AdjustMinutesTens
)

// Inputs is one control cycle's worth of consumed events and sampled levels.
// Start, Pause, Stop, Increment and Decrement are one-shot pulses, already
// debounced upstream; the rest are continuous conditions.
type Inputs struct {
	Start     bool
	Pause     bool
	Stop      bool
	Increment bool
	Decrement bool

	// PowerEnable routes increment/decrement to the power level instead of
	// the target time while asserted.
	PowerEnable bool
	// DoorOpen forces a pause while counting down. It is a level, not an
	// edge: the gate holds for as long as the door stays open.
	DoorOpen bool
	// Adjust selects the digit group for time adjustment.
	Adjust AdjustField
}

// Indicator codes for the tri-color power lamp, one-hot over three bits.
const (
	IndicatorLow    uint8 = 0b001
	IndicatorMedium uint8 = 0b010
	IndicatorHigh   uint8 = 0b100
)

const (
	maxMinutes uint8 = 99
	maxSeconds uint8 = 59

	// powerCeiling is the internal headroom; the visible level clamps at
	// visiblePowerCap.
	powerCeiling    uint8 = 3
	visiblePowerCap uint8 = 2
)

// Controller is the outer appliance state machine. It owns the target
// time, the power level and the adjustment routing, gates the countdown
// timer through start/pause/stop pulses, and composes the power indicator.
type Controller struct {
	mode Mode

	targetMinutes uint8
	targetSeconds uint8

	// power carries headroom to 3; callers see it clamped to 2.
	power uint8

	// indicator is recomputed only when mode changes. The lamp therefore
	// goes stale if the power level moves while the mode holds still.
	// Inherited behavior, kept on purpose. Do not "repair" it here.
	indicator uint8
}

// New returns a controller in its reset state: idle, 0:00, power low.
func New() *Controller {
	c := &Controller{}
	c.Reset()

	return c
}

// Reset restores the fixed defaults. Nothing survives a reset.
func (c *Controller) Reset() {
	*c = Controller{indicator: IndicatorLow}
}

// Update runs one control cycle and returns the command pulses to drive
// the countdown timer with.
//
// The next mode is computed from the current cycle's values, so the
// decision uses the timer's done level as it stood at the end of the
// previous cycle. Adjustment events are accepted in every mode.
func (c *Controller) Update(in Inputs, timerDone bool) timer.Command {
	var cmd timer.Command

	next := c.mode

	switch c.mode {
	case ModeIdle:
		if in.Start && !in.DoorOpen {
			next = ModeCountingDown
			cmd.Start = true
		}
	case ModeCountingDown:
		switch {
		case timerDone || in.Stop:
			next = ModeIdle
			cmd.Stop = true
		case in.Pause || in.DoorOpen:
			next = ModePaused
			cmd.Pause = true
		}
	case ModePaused:
		switch {
		case in.Stop:
			next = ModeIdle
			cmd.Stop = true
		case in.Start && !in.DoorOpen:
			next = ModeCountingDown
			// The inner machine resumes via its pause toggle; it has no
			// start transition out of paused.
			cmd.Pause = true
		}
	default:
		// Unrecognized mode resolves to idle, fail-safe.
		next = ModeIdle
		cmd.Stop = true
	}

	switch {
	case in.PowerEnable:
		c.adjustPower(in)
	case in.Increment:
		c.incrementTime(in.Adjust)
	case in.Decrement:
		c.decrementTime(in.Adjust)
	}

	// State-change-only recomputation, per the original design.
	if next != c.mode {
		c.indicator = bracketIndicator(c.power)
	}

	c.mode = next

	return cmd
}

// adjustPower moves the power level while the power-enable input is held.
func (c *Controller) adjustPower(in Inputs) {
	switch {
	case in.Increment && c.power < powerCeiling:
		c.power++
	case in.Decrement && c.power > 0:
		c.power--
	}
}

// bracketIndicator maps a raw power level to an indicator code. A transient
// internal level of 3 still reads as high.
func bracketIndicator(power uint8) uint8 {
	switch {
	case power == 0:
		return IndicatorLow
	case power == 1:
		return IndicatorMedium
	default:
		return IndicatorHigh
	}
}

// Mode returns the controller's current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Target returns the adjustable target time fed to the countdown timer.
func (c *Controller) Target() (minutes, seconds uint8) {
	return c.targetMinutes, c.targetSeconds
}

// PowerLevel returns the visible power level, clamped to 2.
func (c *Controller) PowerLevel() uint8 {
	if c.power > visiblePowerCap {
		return visiblePowerCap
	}

	return c.power
}

// Indicator returns the 3-bit power indicator code as last composed.
func (c *Controller) Indicator() uint8 {
	return c.indicator
}

package timer

// Mode is the countdown timer's own state value. The appliance controller
// keeps a separate mode of its own; the two are never merged because their
// transition triggers differ.
type Mode uint8

const (
	// ModeIdle means no countdown is running; remaining time mirrors the target.
	ModeIdle Mode = iota
	// ModeCountingDown means remaining time decrements once per tick.
	ModeCountingDown
	// ModePaused means remaining time is frozen until resumed or stopped.
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

// Command carries the one-shot pulses the appliance controller drives the
// timer with. At most one field is set per update cycle.
type Command struct {
	// Start moves an idle timer into the countdown.
	Start bool
	// Pause freezes a running countdown, or resumes a frozen one (toggle).
	Pause bool
	// Stop abandons the countdown and returns to idle.
	Stop bool
}

// Countdown owns the remaining minutes and seconds and the inner
// three-state machine. Zero value is the reset state: idle, 0:00.
type Countdown struct {
	mode    Mode
	minutes uint8
	seconds uint8
}

// New returns a countdown in its reset state.
func New() *Countdown {
	return &Countdown{}
}

// Reset forces idle with zero time regardless of pending commands.
func (c *Countdown) Reset() {
	*c = Countdown{}
}

// Update advances the timer by one control cycle.
//
// The next mode is computed from the current cycle's values and committed
// at the end, so a transition decided here is visible only on the next
// cycle. Time arithmetic runs on the current mode: idle mirrors the target
// on every cycle (a live mirror, even though nothing is running), counting
// down decrements only when tick is true, paused holds.
func (c *Countdown) Update(cmd Command, tick bool, targetMinutes, targetSeconds uint8) {
	next := c.mode

	switch c.mode {
	case ModeIdle:
		if cmd.Start {
			next = ModeCountingDown
		}
	case ModeCountingDown:
		switch {
		case cmd.Stop || (c.minutes == 0 && c.seconds == 0):
			next = ModeIdle
		case cmd.Pause:
			next = ModePaused
		}
	case ModePaused:
		switch {
		case cmd.Stop:
			next = ModeIdle
		case cmd.Pause:
			next = ModeCountingDown
		}
	default:
		// Unrecognized mode resolves to idle, fail-safe.
		next = ModeIdle
	}

	switch c.mode {
	case ModeIdle:
		c.minutes, c.seconds = targetMinutes, targetSeconds
	case ModeCountingDown:
		if tick {
			c.decrement()
		}
	case ModePaused:
		// Time is frozen.
	}

	c.mode = next
}

// decrement takes one second off the remaining time, borrowing a minute
// when the seconds hit zero. At 0:00 it does nothing; the state machine
// side transitions out to idle instead.
func (c *Countdown) decrement() {
	switch {
	case c.seconds > 0:
		c.seconds--
	case c.minutes > 0:
		c.seconds = 59
		c.minutes--
	}
}

// Mode returns the timer's current mode.
func (c *Countdown) Mode() Mode {
	return c.mode
}

// Remaining returns the remaining minutes and seconds.
func (c *Countdown) Remaining() (minutes, seconds uint8) {
	return c.minutes, c.seconds
}

// Done reports whether the timer sits idle with zero time loaded.
//
// This is a level, not a pulse: it is already asserted right after reset
// and while a zero target is mirrored, before any countdown ever starts.
func (c *Countdown) Done() bool {
	return c.mode == ModeIdle && c.minutes == 0 && c.seconds == 0
}

// Digit is one display digit produced by the timer, tagged with its
// decimal-point flag.
type Digit struct {
	// Value is the digit value, 0 through 9.
	Value uint8
	// DP is the decimal-point flag for this digit.
	DP bool
}

// Digits returns the timer's four display digits in slot order:
// seconds units, seconds tens, minutes units, minutes tens. The decimal
// point rides on the minutes-units digit to separate minutes from seconds.
// The remaining four slots of the physical display are fixed blank/marker
// positions composed downstream.
func (c *Countdown) Digits() [4]Digit {
	return [4]Digit{
		{Value: c.seconds % 10},
		{Value: c.seconds / 10},
		{Value: c.minutes % 10, DP: true},
		{Value: c.minutes / 10},
	}
}

package clock

import (
	"errors"
	"fmt"
)

// DefaultReferenceHz is the reference rate the controller loop runs at by
// default. The hardware this design descends from divided a 100 MHz crystal;
// a software scheduler gets the same 1 Hz result from a far slower reference.
const DefaultReferenceHz = 100

// ErrReferenceTooSlow is returned when the reference rate cannot produce
// a full low/high cycle.
var ErrReferenceTooSlow = errors.New("reference rate must be at least 2 Hz")

// TickGenerator divides a fixed-rate reference into a 1 Hz signal.
// It counts reference cycles and flips the derived level every half period,
// so rising edges land exactly one second apart.
type TickGenerator struct {
	// threshold is the counter value after which the level flips.
	// Sized to half the reference period minus one.
	threshold uint64
	// counter increments once per reference cycle.
	counter uint64
	// level is the current derived signal level.
	level bool
}

// NewTickGenerator creates a generator for the given reference rate in Hz.
func NewTickGenerator(referenceHz int) (*TickGenerator, error) {
	if referenceHz < 2 {
		return nil, fmt.Errorf("reference rate %d: %w", referenceHz, ErrReferenceTooSlow)
	}

	return &TickGenerator{
		threshold: uint64(referenceHz)/2 - 1, //nolint:gosec // Guarded above.
	}, nil
}

// Advance consumes one reference cycle.
// It returns true only on the rising edge of the derived signal; downstream
// work must trigger on that edge, never on the level.
func (g *TickGenerator) Advance() bool {
	g.counter++
	if g.counter > g.threshold {
		g.level = !g.level
		g.counter = 0

		return g.level
	}

	return false
}

// Level returns the current derived signal level.
func (g *TickGenerator) Level() bool {
	return g.level
}

// Reset returns the generator to its initial state: counter zero, level low.
func (g *TickGenerator) Reset() {
	g.counter = 0
	g.level = false
}

package display

import (
	"github.com/mkazantsev/ovenctl/internal/domain/timer"
)

// Code is a 7-segment digit encoding, segments packed as .gfedcba with the
// decimal point in the top bit.
type Code uint8

// Segment encodings for the shared 8-digit display.
const (
	CodeBlank Code = 0x00
	// CodeMarker is the dash shown in the fixed leftmost slot.
	CodeMarker Code = 0x40
	// dpBit is OR-ed into a code to light the digit's decimal point.
	dpBit Code = 0x80

	// Power bracket glyphs: L, o and H.
	CodeBracketLow    Code = 0x38
	CodeBracketMedium Code = 0x5C
	CodeBracketHigh   Code = 0x76
)

// digitCodes maps digit values 0..9 to their segment patterns.
var digitCodes = [10]Code{
	0x3F, 0x06, 0x5B, 0x4F, 0x66,
	0x6D, 0x7D, 0x07, 0x7F, 0x6F,
}

const (
	// SlotCount is the number of positions in the multiplexed display.
	SlotCount = 8
	// PowerSlot is the slot conventionally reserved for the power bracket.
	// When the scan reaches it, the power code replaces the timer's data.
	PowerSlot = 6
)

// Encode converts one timer digit to its segment code.
func Encode(d timer.Digit) Code {
	code := digitCodes[d.Value%10]
	if d.DP {
		code |= dpBit
	}

	return code
}

// BracketCode maps a visible power level to its bracket glyph:
// 0 reads low, 1 reads medium, anything higher reads high.
func BracketCode(level uint8) Code {
	switch level {
	case 0:
		return CodeBracketLow
	case 1:
		return CodeBracketMedium
	default:
		return CodeBracketHigh
	}
}

// Frame is one cycle's worth of display output: the full set of digit
// codes, the slot currently driven by the scan, and the 3-bit indicator
// value. Frames carry no identity; a fresh one is composed every cycle.
type Frame struct {
	Codes      [SlotCount]Code
	ActiveSlot int
	Indicator  uint8
}

// Composer assembles frames and arbitrates the shared power slot. It owns
// the scan position, advancing one slot per cycle.
type Composer struct {
	scan int
}

// Compose builds the frame for the current cycle. The four timer digits
// occupy slots 0..3, slots 4 and 5 stay blank, slot 7 carries the fixed
// marker. When the scan sits on the power slot the power bracket code is
// routed into that slot's data instead of the timer's digit.
func (c *Composer) Compose(digits [4]timer.Digit, power Code, indicator uint8) Frame {
	var f Frame

	for i, d := range digits {
		f.Codes[i] = Encode(d)
	}

	f.Codes[4] = CodeBlank
	f.Codes[5] = CodeBlank
	f.Codes[6] = CodeBlank
	f.Codes[7] = CodeMarker

	f.ActiveSlot = c.scan
	if f.ActiveSlot == PowerSlot {
		f.Codes[PowerSlot] = power
	}

	f.Indicator = indicator

	c.scan = (c.scan + 1) % SlotCount

	return f
}

// Reset rewinds the scan to slot zero.
func (c *Composer) Reset() {
	c.scan = 0
}

// Sink consumes composed frames. The physical implementation is the
// external display-multiplexing driver; tests use a fake.
type Sink interface {
	// Show presents one frame.
	Show(Frame) error
}

//go:build linux

package input

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/mkazantsev/ovenctl/internal/domain/control"
)

// debouncePeriod is applied in the kernel so a physical press surfaces as
// exactly one edge event.
const debouncePeriod = 20 * time.Millisecond

// Pins maps the panel to GPIO line offsets.
type Pins struct {
	Start     int
	Pause     int
	Stop      int
	Increment int
	Decrement int

	Door        int
	PowerEnable int
	// AdjustLow and AdjustHigh form the 2-bit digit-group selector.
	AdjustLow  int
	AdjustHigh int
}

// GPIOSource reads the panel from real hardware through the Linux GPIO
// character device. Button lines are edge-triggered with kernel debounce;
// door, power-enable and selector lines are sampled as levels.
type GPIOSource struct {
	chip    *gpiocdev.Chip
	buttons []*gpiocdev.Line
	levels  []*gpiocdev.Line

	mu      sync.Mutex
	pending Events
}

// NewGPIOSource opens the chip and requests all panel lines.
func NewGPIOSource(chipName string, pins Pins) (*GPIOSource, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	s := &GPIOSource{chip: chip}

	buttons := []struct {
		name string
		pin  int
		flag func(*Events)
	}{
		{"start", pins.Start, func(e *Events) { e.Start = true }},
		{"pause", pins.Pause, func(e *Events) { e.Pause = true }},
		{"stop", pins.Stop, func(e *Events) { e.Stop = true }},
		{"increment", pins.Increment, func(e *Events) { e.Increment = true }},
		{"decrement", pins.Decrement, func(e *Events) { e.Decrement = true }},
	}

	for _, b := range buttons {
		set := b.flag

		line, err := chip.RequestLine(b.pin,
			gpiocdev.AsInput,
			gpiocdev.WithPullDown,
			gpiocdev.WithRisingEdge,
			gpiocdev.WithDebounce(debouncePeriod),
			gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
				s.mu.Lock()
				set(&s.pending)
				s.mu.Unlock()
			}))
		if err != nil {
			_ = s.Close()

			return nil, fmt.Errorf("request %s pin %d: %w", b.name, b.pin, err)
		}

		s.buttons = append(s.buttons, line)
	}

	for _, p := range []struct {
		name string
		pin  int
	}{
		{"door", pins.Door},
		{"power-enable", pins.PowerEnable},
		{"adjust-low", pins.AdjustLow},
		{"adjust-high", pins.AdjustHigh},
	} {
		line, err := chip.RequestLine(p.pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			_ = s.Close()

			return nil, fmt.Errorf("request %s pin %d: %w", p.name, p.pin, err)
		}

		s.levels = append(s.levels, line)
	}

	return s, nil
}

// Poll consumes accumulated button events and samples the level lines.
func (s *GPIOSource) Poll() (Events, Levels, error) {
	s.mu.Lock()
	events := s.pending
	s.pending = Events{}
	s.mu.Unlock()

	values := make([]int, len(s.levels))

	for i, line := range s.levels {
		v, err := line.Value()
		if err != nil {
			return Events{}, Levels{}, fmt.Errorf("read level line: %w", err)
		}

		values[i] = v
	}

	levels := Levels{
		DoorOpen:    values[0] != 0,
		PowerEnable: values[1] != 0,
		Adjust:      decodeAdjust(values[2], values[3]),
	}

	return events, levels, nil
}

// decodeAdjust turns the two selector lines into a digit-group field.
func decodeAdjust(low, high int) control.AdjustField {
	switch {
	case high != 0 && low != 0:
		return control.AdjustMinutesTens
	case high != 0:
		return control.AdjustMinutesUnits
	case low != 0:
		return control.AdjustSecondsTens
	default:
		return control.AdjustSecondsUnits
	}
}

// Close releases all requested lines and the chip.
func (s *GPIOSource) Close() error {
	var errs []error

	for _, line := range s.buttons {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button line: %w", err))
		}
	}

	for _, line := range s.levels {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close level line: %w", err))
		}
	}

	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}

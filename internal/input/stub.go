//go:build !linux

package input

import "errors"

// Pins maps the panel to GPIO line offsets.
type Pins struct {
	Start     int
	Pause     int
	Stop      int
	Increment int
	Decrement int

	Door        int
	PowerEnable int
	AdjustLow   int
	AdjustHigh  int
}

// GPIOSource is not available on non-Linux platforms.
type GPIOSource struct{}

// NewGPIOSource returns an error on non-Linux platforms.
func NewGPIOSource(string, Pins) (*GPIOSource, error) {
	return nil, errors.New("input: gpio not supported on this platform (requires Linux)")
}

// Poll is not implemented on non-Linux platforms.
func (s *GPIOSource) Poll() (Events, Levels, error) {
	return Events{}, Levels{}, errors.New("input: gpio not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *GPIOSource) Close() error {
	return nil
}

package input

// FakeSource is a test double that serves queued events and settable
// levels. Queued events are consumed one poll at a time, mirroring the
// single-firing guarantee of the real source.
type FakeSource struct {
	queue  []Events
	levels Levels

	// Closed tracks whether Close was called.
	Closed bool

	// PollError, if set, is returned by Poll.
	PollError error
}

// NewFakeSource creates an idle fake with no pending events.
func NewFakeSource() *FakeSource {
	return &FakeSource{}
}

// Press queues one cycle's worth of button events.
func (f *FakeSource) Press(e Events) {
	f.queue = append(f.queue, e)
}

// SetLevels sets the panel levels returned by subsequent polls.
func (f *FakeSource) SetLevels(l Levels) {
	f.levels = l
}

// Poll returns the next queued events, or none when the queue is empty.
func (f *FakeSource) Poll() (Events, Levels, error) {
	if f.PollError != nil {
		return Events{}, Levels{}, f.PollError
	}

	var e Events
	if len(f.queue) > 0 {
		e = f.queue[0]
		f.queue = f.queue[1:]
	}

	return e, f.levels, nil
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true

	return nil
}

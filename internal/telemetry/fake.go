package telemetry

// FakePublisher records published telemetry for assertions in tests.
type FakePublisher struct {
	Transitions []Transition
	System      []SystemEvent

	// Closed tracks whether Close was called.
	Closed bool

	// PublishError, if set, is returned by both publish methods.
	PublishError error
}

// NewFakePublisher creates an empty recording publisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishTransition records the transition.
func (f *FakePublisher) PublishTransition(t Transition) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Transitions = append(f.Transitions, t)

	return nil
}

// PublishSystem records the lifecycle event.
func (f *FakePublisher) PublishSystem(e SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.System = append(f.System, e)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true

	return nil
}

package sim

// VTimeInSec is a point in simulated time, measured in seconds.
type VTimeInSec float64

// An Event is something that happens at a specific point in simulated time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
	IsSecondary() bool
}

// EventBase provides the common fields every event needs.
type EventBase struct {
	ID        string
	time      VTimeInSec
	handler   Handler
	secondary bool
}

// NewEventBase creates an EventBase scheduled for t and handled by handler.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	return &EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns when the event is scheduled to happen.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler responsible for the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary reports whether the event is processed after every primary
// event at the same timestamp has been handled.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// A Handler processes events scheduled against it.
//
// Akita requires a component to only ever schedule events for itself; a
// handler's Handle is therefore the only code path that mutates that
// handler's state.
type Handler interface {
	Handle(e Event) error
}

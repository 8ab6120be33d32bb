package sim

import "sync"

// TickEvent is the generic event that drives a TickingComponent forward.
type TickEvent struct {
	*EventBase
}

// MakeTickEvent creates a TickEvent scheduled for t and handled by handler.
func MakeTickEvent(handler Handler, t VTimeInSec) TickEvent {
	return TickEvent{EventBase: NewEventBase(t, handler)}
}

// A Ticker advances one cycle's worth of state and reports whether it did
// any useful work.
type Ticker interface {
	Tick() bool
}

// TickScheduler schedules TickEvents for a Ticker, making sure it never
// double-schedules the same cycle.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Freq    Freq
	Engine  Engine

	secondary    bool
	nextTickTime VTimeInSec
}

// NewTickScheduler creates a scheduler that schedules primary tick events.
func NewTickScheduler(handler Handler, engine Engine, freq Freq) *TickScheduler {
	return &TickScheduler{
		handler:      handler,
		Engine:       engine,
		Freq:         freq,
		nextTickTime: -1,
	}
}

// NewSecondaryTickScheduler creates a scheduler whose tick events are always
// processed after every primary event at the same timestamp.
func NewSecondaryTickScheduler(handler Handler, engine Engine, freq Freq) *TickScheduler {
	s := NewTickScheduler(handler, engine, freq)
	s.secondary = true

	return s
}

// CurrentTime returns the engine's current simulated time.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}

// TickNow schedules a tick for the current cycle, unless a tick is already
// scheduled for this cycle or a later one, or has already run in this
// cycle.
func (t *TickScheduler) TickNow() {
	t.lock.Lock()
	defer t.lock.Unlock()

	now := t.CurrentTime()
	if t.nextTickTime >= now {
		return
	}

	t.nextTickTime = t.Freq.ThisTick(now)
	t.schedule()
}

// TickLater schedules a tick for the cycle after the current one, if one is
// not already scheduled.
func (t *TickScheduler) TickLater() {
	t.lock.Lock()
	defer t.lock.Unlock()

	next := t.Freq.NextTick(t.CurrentTime())
	if t.nextTickTime >= next {
		return
	}

	t.nextTickTime = next
	t.schedule()
}

func (t *TickScheduler) schedule() {
	evt := MakeTickEvent(t.handler, t.nextTickTime)
	evt.secondary = t.secondary
	t.Engine.Schedule(evt)
}

// TickingComponent is a component whose entire state update is expressed as
// a single Tick method, called once per cycle of Freq. It is the backbone
// every synchronous, cycle-stepped unit in this module is built from.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// NotifyPortFree restarts ticking when a port regains capacity to send.
func (c *TickingComponent) NotifyPortFree(_ Port) {
	c.TickLater()
}

// NotifyRecv restarts ticking when a port receives a message.
func (c *TickingComponent) NotifyRecv(_ Port) {
	c.TickLater()
}

// Handle runs one tick and reschedules itself if the tick made progress.
func (c *TickingComponent) Handle(e Event) error {
	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a ticking component driven by ticker.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)

	return tc
}

// NewSecondaryTickingComponent creates a ticking component whose tick events
// always run after primary events at the same timestamp. Interconnects use
// this so that they forward messages only after producers have acted.
func NewSecondaryTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine, freq)

	return tc
}

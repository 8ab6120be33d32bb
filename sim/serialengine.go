package sim

import (
	"log"
	"sync"
)

// HookPosBeforeEvent and HookPosAfterEvent bracket the handling of a single
// event; see hook.go.

// SerialEngine runs every scheduled event, one after another, on a single
// goroutine. It is the engine used by every test in this repository: a
// deterministic, single-threaded run is what makes cycle-by-cycle invariants
// checkable.
type SerialEngine struct {
	*HookableBase

	timeLock sync.RWMutex
	time     VTimeInSec

	queue          EventQueue
	secondaryQueue EventQueue

	simulationEndHandlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase:   NewHookableBase(),
		queue:          NewEventQueue(),
		secondaryQueue: NewEventQueue(),
	}
}

// Schedule registers evt to run in the future.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.CurrentTime()
	if evt.Time() < now {
		log.Panic("scheduling an event earlier than current time")
	}

	if evt.IsSecondary() {
		e.secondaryQueue.Push(evt)
		return
	}

	e.queue.Push(evt)
}

// CurrentTime returns the time of the event currently being processed.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.timeLock.RLock()
	defer e.timeLock.RUnlock()

	return e.time
}

func (e *SerialEngine) setNow(t VTimeInSec) {
	e.timeLock.Lock()
	defer e.timeLock.Unlock()

	e.time = t
}

// Run processes every scheduled event until none remain.
func (e *SerialEngine) Run() error {
	for {
		if e.noMoreEvents() {
			return nil
		}

		evt := e.nextEvent()
		e.setNow(evt.Time())

		if e.NumHooks() > 0 {
			e.InvokeHook(HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt})
		}

		_ = evt.Handler().Handle(evt)

		if e.NumHooks() > 0 {
			e.InvokeHook(HookCtx{Domain: e, Pos: HookPosAfterEvent, Item: evt})
		}
	}
}

func (e *SerialEngine) noMoreEvents() bool {
	return e.queue.Len() == 0 && e.secondaryQueue.Len() == 0
}

func (e *SerialEngine) nextEvent() Event {
	if e.queue.Len() == 0 {
		return e.secondaryQueue.Pop()
	}

	if e.secondaryQueue.Len() == 0 {
		return e.queue.Pop()
	}

	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	if primary.Time() <= secondary.Time() {
		return e.queue.Pop()
	}

	return e.secondaryQueue.Pop()
}

// RegisterSimulationEndHandler adds a handler invoked once Run returns.
func (e *SerialEngine) RegisterSimulationEndHandler(h SimulationEndHandler) {
	e.simulationEndHandlers = append(e.simulationEndHandlers, h)
}

// Finished calls every registered SimulationEndHandler.
func (e *SerialEngine) Finished() {
	now := e.CurrentTime()
	for _, h := range e.simulationEndHandlers {
		h.Handle(now)
	}
}

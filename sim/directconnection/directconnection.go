// Package directconnection provides a zero-latency Connection that simply
// forwards every message from a port's outgoing buffer straight to its
// destination's incoming buffer in the same cycle it was sent.
package directconnection

import (
	"github.com/weontaekna/AOS-boom/sim"
)

// Comp connects any number of ports with no simulated transmission delay.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	nextPortID int
	ports      []sim.Port
}

// PlugIn attaches port to the connection.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	c.ports = append(c.ports, port)
	port.SetConnection(c)
}

// Unplug is not supported; connections are wired once at build time.
func (c *Comp) Unplug(_ sim.Port) {
	panic("directconnection: unplug not implemented")
}

// NotifyAvailable wakes the connection up so it can resume forwarding to a
// port that just freed capacity.
func (c *Comp) NotifyAvailable(_ sim.Port) {
	c.TickNow()
}

// NotifySend wakes the connection up so it can forward a freshly sent
// message.
func (c *Comp) NotifySend() {
	c.TickNow()
}

// Tick drains every plugged-in port's outgoing buffer.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

func (m *middleware) Tick() bool {
	madeProgress := false

	for i := 0; i < len(m.ports); i++ {
		portID := (i + m.nextPortID) % len(m.ports)
		port := m.ports[portID]
		madeProgress = m.forwardMany(port) || madeProgress
	}

	if len(m.ports) > 0 {
		m.nextPortID = (m.nextPortID + 1) % len(m.ports)
	}

	return madeProgress
}

func (m *middleware) forwardMany(port sim.Port) bool {
	madeProgress := false

	for {
		head := port.PeekOutgoing()
		if head == nil {
			break
		}

		if err := head.Meta().Dst.Deliver(head); err != nil {
			break
		}

		port.RetrieveOutgoing()
		madeProgress = true
	}

	return madeProgress
}

// Builder builds direct connections.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a Builder with a 1GHz default frequency.
func MakeBuilder() Builder {
	return Builder{freq: 1 * sim.GHz}
}

// WithEngine sets the simulation engine the connection schedules events on.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the polling frequency of the connection.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// Build constructs a named direct connection.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}
	c.TickingComponent = sim.NewSecondaryTickingComponent(name, b.engine, b.freq, c)

	mid := &middleware{Comp: c}
	c.AddMiddleware(mid)

	return c
}

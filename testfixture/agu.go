package testfixture

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/sim"
)

// AGU is a test-driven address-generation unit: a test queues the AguResp
// it wants delivered and AGU pushes them out in order, one per cycle,
// mirroring how a real AGU would drip-feed computed addresses to the LSU.
type AGU struct {
	*sim.TickingComponent

	out sim.Port

	queue []*iface.AguResp
}

// NewAGU creates an AGU with an empty response queue.
func NewAGU(name string, engine sim.Engine, freq sim.Freq) *AGU {
	a := &AGU{}

	a.TickingComponent = sim.NewTickingComponent(name, engine, freq, a)
	a.out = sim.NewPort(a, 8, 8, name+".Out")
	a.AddPort("Out", a.out)

	return a
}

// Port returns the port the LSU's AGU port should connect to.
func (a *AGU) Port() sim.Port { return a.out }

// Deliver queues resp for delivery, setting its destination to the LSU's
// AGU port.
func (a *AGU) Deliver(dst sim.Port, resp *iface.AguResp) {
	resp.Src = a.out
	resp.Dst = dst
	a.queue = append(a.queue, resp)
	a.TickNow()
}

// Tick pushes the next queued response, if the port has room.
func (a *AGU) Tick() bool {
	if len(a.queue) == 0 {
		return false
	}

	if !a.out.CanSend() {
		return false
	}

	next := a.queue[0]
	a.queue = a.queue[1:]
	a.out.Send(next)

	return true
}

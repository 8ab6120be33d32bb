package testfixture

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/sim"
)

// DTLB is an identity-mapping translator: PAddr == VAddr, always a hit and
// always cacheable, unless a test arms a fault via FaultPage or
// FaultAccess.
type DTLB struct {
	*sim.TickingComponent

	in sim.Port

	pageFaults  map[uint64]bool
	accessFault map[uint64]bool
}

// NewDTLB creates a DTLB with no armed faults.
func NewDTLB(name string, engine sim.Engine, freq sim.Freq) *DTLB {
	d := &DTLB{
		pageFaults:  make(map[uint64]bool),
		accessFault: make(map[uint64]bool),
	}

	d.TickingComponent = sim.NewTickingComponent(name, engine, freq, d)
	d.in = sim.NewPort(d, 8, 8, name+".In")
	d.AddPort("In", d.in)

	return d
}

// Port returns the port the LSU's DTLB port should connect to.
func (d *DTLB) Port() sim.Port { return d.in }

// FaultPage arms a page fault for every translation of vaddr.
func (d *DTLB) FaultPage(vaddr uint64) { d.pageFaults[vaddr] = true }

// FaultAccess arms an access fault for every translation of vaddr.
func (d *DTLB) FaultAccess(vaddr uint64) { d.accessFault[vaddr] = true }

// Tick answers every translation request waiting on the In port.
func (d *DTLB) Tick() bool {
	msg := d.in.PeekIncoming()
	if msg == nil {
		return false
	}

	req, ok := msg.(*iface.DtlbReq)
	if !ok {
		return false
	}

	d.in.RetrieveIncoming()

	b := (iface.DtlbRespBuilder{}).
		WithSrc(d.in).
		WithDst(req.Src).
		WithRspTo(req.ID).
		WithPAddr(req.VAddr).
		Cacheable()

	switch {
	case d.pageFaults[req.VAddr]:
		b = b.PageFault()
	case d.accessFault[req.VAddr]:
		b = b.AccessFault()
	}

	d.in.Send(b.Build())

	return true
}

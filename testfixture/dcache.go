// Package testfixture provides minimal stand-ins for the LSU's external
// collaborators (the data cache, the DTLB, the address-generation units,
// and the hella-channel client) so integration tests can drive lsu.Comp
// through a sim.SerialEngine without pulling in a full cache hierarchy or
// core pipeline.
package testfixture

import (
	"github.com/weontaekna/AOS-boom/mem"
	"github.com/weontaekna/AOS-boom/sim"
)

// DCache is a single-cycle backing store keyed by address. It never nacks
// unless told to via ForceNack, which tests use to exercise the LSU's
// miss-retry paths.
type DCache struct {
	*sim.TickingComponent

	in sim.Port

	store     map[uint64][]byte
	nackAddrs map[uint64]bool
}

// NewDCache creates a DCache backed by an in-memory map.
func NewDCache(name string, engine sim.Engine, freq sim.Freq) *DCache {
	d := &DCache{
		store:     make(map[uint64][]byte),
		nackAddrs: make(map[uint64]bool),
	}

	d.TickingComponent = sim.NewTickingComponent(name, engine, freq, d)
	d.in = sim.NewPort(d, 8, 8, name+".In")
	d.AddPort("In", d.in)

	return d
}

// Port returns the port the LSU's DCache port should connect to.
func (d *DCache) Port() sim.Port { return d.in }

// Write seeds an address with data, as if a prior store had already
// committed it.
func (d *DCache) Write(addr uint64, data []byte) {
	d.store[addr] = data
}

// ForceNack makes the next request to addr fail once, then clears.
func (d *DCache) ForceNack(addr uint64) {
	d.nackAddrs[addr] = true
}

// Tick answers every request waiting on the In port.
func (d *DCache) Tick() bool {
	msg := d.in.PeekIncoming()
	if msg == nil {
		return false
	}

	d.in.RetrieveIncoming()
	d.respond(msg)

	return true
}

func (d *DCache) respond(msg sim.Msg) {
	switch req := msg.(type) {
	case *mem.ReadReq:
		d.respondRead(req)
	case *mem.WriteReq:
		d.respondWrite(req)
	}
}

func (d *DCache) respondRead(req *mem.ReadReq) {
	if d.nackAddrs[req.Address] {
		delete(d.nackAddrs, req.Address)

		rsp := (mem.NackRspBuilder{}).
			WithSrc(d.in).
			WithDst(req.Src).
			WithRspTo(req.ID).
			Build()
		d.in.Send(rsp)

		return
	}

	data, ok := d.store[req.Address]
	if !ok {
		data = make([]byte, req.AccessByteSize)
	}

	rsp := (mem.DataReadyRspBuilder{}).
		WithSrc(d.in).
		WithDst(req.Src).
		WithRspTo(req.ID).
		WithData(data).
		Build()
	d.in.Send(rsp)
}

func (d *DCache) respondWrite(req *mem.WriteReq) {
	if d.nackAddrs[req.Address] {
		delete(d.nackAddrs, req.Address)

		rsp := (mem.NackRspBuilder{}).
			WithSrc(d.in).
			WithDst(req.Src).
			WithRspTo(req.ID).
			Build()
		d.in.Send(rsp)

		return
	}

	d.store[req.Address] = req.Data

	rsp := (mem.WriteDoneRspBuilder{}).
		WithSrc(d.in).
		WithDst(req.Src).
		WithRspTo(req.ID).
		Build()
	d.in.Send(rsp)
}

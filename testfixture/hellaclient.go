package testfixture

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/sim"
)

// HellaClient is a test-driven stand-in for the hella-channel client: it
// sends HellaReq on command and records every HellaResp it receives so a
// test can assert on the non-pipelined scalar bypass.
type HellaClient struct {
	*sim.TickingComponent

	out sim.Port

	pending []*iface.HellaReq
	Resps   []*iface.HellaResp
}

// NewHellaClient creates a HellaClient with no pending requests.
func NewHellaClient(name string, engine sim.Engine, freq sim.Freq) *HellaClient {
	h := &HellaClient{}

	h.TickingComponent = sim.NewTickingComponent(name, engine, freq, h)
	h.out = sim.NewPort(h, 4, 4, name+".Out")
	h.AddPort("Out", h.out)

	return h
}

// Port returns the port the LSU's hella-client port should connect to.
func (h *HellaClient) Port() sim.Port { return h.out }

// Request queues req for sending to dst.
func (h *HellaClient) Request(dst sim.Port, req *iface.HellaReq) {
	req.Src = h.out
	req.Dst = dst
	h.pending = append(h.pending, req)
	h.TickNow()
}

// Tick sends the next pending request and drains any incoming response.
func (h *HellaClient) Tick() bool {
	progress := false

	if msg := h.out.PeekIncoming(); msg != nil {
		h.out.RetrieveIncoming()
		h.Resps = append(h.Resps, msg.(*iface.HellaResp))
		progress = true
	}

	if len(h.pending) > 0 && h.out.CanSend() {
		next := h.pending[0]
		h.pending = h.pending[1:]
		h.out.Send(next)
		progress = true
	}

	return progress
}

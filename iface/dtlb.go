// Package iface defines the wire messages the LSU exchanges with its five
// external collaborators: the DTLB, the address-generation units, the
// ROB, the data cache (via mem.ReadReq/WriteReq), and a hella-channel
// client. Only the message shapes the LSU actually exchanges are modeled;
// translation, coherence, and register-file semantics themselves live in
// their own components, not here.
package iface

import "github.com/weontaekna/AOS-boom/sim"

// DtlbReq asks the DTLB to translate a virtual address.
type DtlbReq struct {
	sim.MsgMeta

	VAddr       uint64
	Size        uint64
	IsStore     bool
	Passthrough bool
	Info        interface{}
}

// Meta returns the message meta data.
func (r *DtlbReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// DtlbReqBuilder builds DtlbReq messages.
type DtlbReqBuilder struct {
	src, dst    sim.Port
	vaddr       uint64
	size        uint64
	isStore     bool
	passthrough bool
	info        interface{}
}

// WithSrc sets the source of the request to build.
func (b DtlbReqBuilder) WithSrc(src sim.Port) DtlbReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b DtlbReqBuilder) WithDst(dst sim.Port) DtlbReqBuilder {
	b.dst = dst
	return b
}

// WithVAddr sets the virtual address of the request to build.
func (b DtlbReqBuilder) WithVAddr(vaddr uint64) DtlbReqBuilder {
	b.vaddr = vaddr
	return b
}

// WithSize sets the access size of the request to build.
func (b DtlbReqBuilder) WithSize(size uint64) DtlbReqBuilder {
	b.size = size
	return b
}

// IsStore marks the request to build as a store-side translation.
func (b DtlbReqBuilder) IsStore() DtlbReqBuilder {
	b.isStore = true
	return b
}

// Passthrough marks the request to build as bypassing translation (used
// for the hella channel's passthrough physical requests).
func (b DtlbReqBuilder) Passthrough() DtlbReqBuilder {
	b.passthrough = true
	return b
}

// WithInfo attaches an opaque requester tag to the request to build.
func (b DtlbReqBuilder) WithInfo(info interface{}) DtlbReqBuilder {
	b.info = info
	return b
}

// Build creates a new DtlbReq.
func (b DtlbReqBuilder) Build() *DtlbReq {
	r := &DtlbReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.VAddr = b.vaddr
	r.Size = b.size
	r.IsStore = b.isStore
	r.Passthrough = b.passthrough
	r.Info = b.info

	return r
}

// DtlbResp answers a DtlbReq, same-cycle in the reference design.
type DtlbResp struct {
	sim.MsgMeta

	RespondTo  string
	PAddr      uint64
	Miss       bool
	PageFault  bool
	AccessFault bool
	Cacheable  bool
	Info       interface{}
}

// Meta returns the message meta data.
func (r *DtlbResp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request this response answers.
func (r *DtlbResp) GetRspTo() string {
	return r.RespondTo
}

// DtlbRespBuilder builds DtlbResp messages.
type DtlbRespBuilder struct {
	src, dst    sim.Port
	rspTo       string
	paddr       uint64
	miss        bool
	pageFault   bool
	accessFault bool
	cacheable   bool
	info        interface{}
}

// WithSrc sets the source of the response to build.
func (b DtlbRespBuilder) WithSrc(src sim.Port) DtlbRespBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b DtlbRespBuilder) WithDst(dst sim.Port) DtlbRespBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build answers.
func (b DtlbRespBuilder) WithRspTo(id string) DtlbRespBuilder {
	b.rspTo = id
	return b
}

// WithPAddr sets the translated physical address of the response to build.
func (b DtlbRespBuilder) WithPAddr(paddr uint64) DtlbRespBuilder {
	b.paddr = paddr
	return b
}

// Miss marks the response to build as a TLB miss.
func (b DtlbRespBuilder) Miss() DtlbRespBuilder {
	b.miss = true
	return b
}

// PageFault marks the response to build as a page fault.
func (b DtlbRespBuilder) PageFault() DtlbRespBuilder {
	b.pageFault = true
	return b
}

// AccessFault marks the response to build as an access fault.
func (b DtlbRespBuilder) AccessFault() DtlbRespBuilder {
	b.accessFault = true
	return b
}

// Cacheable marks the response to build's address as cacheable.
func (b DtlbRespBuilder) Cacheable() DtlbRespBuilder {
	b.cacheable = true
	return b
}

// WithInfo attaches the opaque requester tag of the response to build.
func (b DtlbRespBuilder) WithInfo(info interface{}) DtlbRespBuilder {
	b.info = info
	return b
}

// Build creates a new DtlbResp.
func (b DtlbRespBuilder) Build() *DtlbResp {
	r := &DtlbResp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RespondTo = b.rspTo
	r.PAddr = b.paddr
	r.Miss = b.miss
	r.PageFault = b.pageFault
	r.AccessFault = b.accessFault
	r.Cacheable = b.cacheable
	r.Info = b.info

	return r
}

package iface

import "github.com/weontaekna/AOS-boom/sim"

// AguResp is the effective address (or store data) an address-generation
// unit delivers for an in-flight LDQ/STQ/MCQ/BDQ entry.
type AguResp struct {
	sim.MsgMeta

	LdqIdx     int
	StqIdx     int
	McqIdx     int
	BdqIdx     int
	UsesLdq    bool
	UsesStq    bool
	UsesMcq    bool
	UsesBdq    bool
	Addr       uint64
	Data       []byte
	MisAligned bool
	Info       interface{}
}

// Meta returns the message meta data.
func (r *AguResp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// AguRespBuilder builds AguResp messages.
type AguRespBuilder struct {
	src, dst   sim.Port
	ldqIdx     int
	stqIdx     int
	mcqIdx     int
	bdqIdx     int
	usesLdq    bool
	usesStq    bool
	usesMcq    bool
	usesBdq    bool
	addr       uint64
	data       []byte
	misAligned bool
	info       interface{}
}

// WithSrc sets the source of the response to build.
func (b AguRespBuilder) WithSrc(src sim.Port) AguRespBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b AguRespBuilder) WithDst(dst sim.Port) AguRespBuilder {
	b.dst = dst
	return b
}

// WithLdqIdx attaches the LDQ index this response targets.
func (b AguRespBuilder) WithLdqIdx(idx int) AguRespBuilder {
	b.ldqIdx = idx
	b.usesLdq = true
	return b
}

// WithStqIdx attaches the STQ index this response targets.
func (b AguRespBuilder) WithStqIdx(idx int) AguRespBuilder {
	b.stqIdx = idx
	b.usesStq = true
	return b
}

// WithMcqIdx attaches the MCQ index this response targets.
func (b AguRespBuilder) WithMcqIdx(idx int) AguRespBuilder {
	b.mcqIdx = idx
	b.usesMcq = true
	return b
}

// WithBdqIdx attaches the BDQ index this response targets.
func (b AguRespBuilder) WithBdqIdx(idx int) AguRespBuilder {
	b.bdqIdx = idx
	b.usesBdq = true
	return b
}

// WithAddr sets the computed effective address of the response to build.
func (b AguRespBuilder) WithAddr(addr uint64) AguRespBuilder {
	b.addr = addr
	return b
}

// WithData sets the store data of the response to build.
func (b AguRespBuilder) WithData(data []byte) AguRespBuilder {
	b.data = data
	return b
}

// MisAligned marks the response to build as a memory-alignment fault
// (mxcpt).
func (b AguRespBuilder) MisAligned() AguRespBuilder {
	b.misAligned = true
	return b
}

// WithInfo attaches an opaque requester tag to the response to build.
func (b AguRespBuilder) WithInfo(info interface{}) AguRespBuilder {
	b.info = info
	return b
}

// Build creates a new AguResp.
func (b AguRespBuilder) Build() *AguResp {
	r := &AguResp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.LdqIdx = b.ldqIdx
	r.StqIdx = b.stqIdx
	r.McqIdx = b.mcqIdx
	r.BdqIdx = b.bdqIdx
	r.UsesLdq = b.usesLdq
	r.UsesStq = b.usesStq
	r.UsesMcq = b.usesMcq
	r.UsesBdq = b.usesBdq
	r.Addr = b.addr
	r.Data = b.data
	r.MisAligned = b.misAligned
	r.Info = b.info

	return r
}

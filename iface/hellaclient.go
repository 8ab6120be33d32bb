package iface

import "github.com/weontaekna/AOS-boom/sim"

// HellaReq is a non-pipelined scalar request from the hella client.
type HellaReq struct {
	sim.MsgMeta

	Addr   uint64
	Data   []byte
	Cmd    uint8
	Signed bool
	Size   uint64
	Tag    uint64
}

// Meta returns the message meta data.
func (r *HellaReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// HellaReqBuilder builds HellaReq messages.
type HellaReqBuilder struct {
	src, dst sim.Port
	addr     uint64
	data     []byte
	cmd      uint8
	signed   bool
	size     uint64
	tag      uint64
}

// WithSrc sets the source of the request to build.
func (b HellaReqBuilder) WithSrc(src sim.Port) HellaReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b HellaReqBuilder) WithDst(dst sim.Port) HellaReqBuilder {
	b.dst = dst
	return b
}

// WithAddr sets the address of the request to build.
func (b HellaReqBuilder) WithAddr(addr uint64) HellaReqBuilder {
	b.addr = addr
	return b
}

// WithData sets the store data of the request to build.
func (b HellaReqBuilder) WithData(data []byte) HellaReqBuilder {
	b.data = data
	return b
}

// WithCmd sets the memory command of the request to build.
func (b HellaReqBuilder) WithCmd(cmd uint8) HellaReqBuilder {
	b.cmd = cmd
	return b
}

// Signed marks the request to build as sign-extending its load result.
func (b HellaReqBuilder) Signed() HellaReqBuilder {
	b.signed = true
	return b
}

// WithSize sets the access size of the request to build.
func (b HellaReqBuilder) WithSize(size uint64) HellaReqBuilder {
	b.size = size
	return b
}

// WithTag sets the client-assigned tag of the request to build.
func (b HellaReqBuilder) WithTag(tag uint64) HellaReqBuilder {
	b.tag = tag
	return b
}

// Build creates a new HellaReq.
func (b HellaReqBuilder) Build() *HellaReq {
	r := &HellaReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Addr = b.addr
	r.Data = b.data
	r.Cmd = b.cmd
	r.Signed = b.signed
	r.Size = b.size
	r.Tag = b.tag

	return r
}

// HellaResp answers a HellaReq.
type HellaResp struct {
	sim.MsgMeta

	RespondTo string
	Data      []byte
	Tag       uint64
	Nack      bool
	Exception bool
}

// Meta returns the message meta data.
func (r *HellaResp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request this response answers.
func (r *HellaResp) GetRspTo() string {
	return r.RespondTo
}

// HellaRespBuilder builds HellaResp messages.
type HellaRespBuilder struct {
	src, dst  sim.Port
	rspTo     string
	data      []byte
	tag       uint64
	nack      bool
	exception bool
}

// WithSrc sets the source of the response to build.
func (b HellaRespBuilder) WithSrc(src sim.Port) HellaRespBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b HellaRespBuilder) WithDst(dst sim.Port) HellaRespBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build answers.
func (b HellaRespBuilder) WithRspTo(id string) HellaRespBuilder {
	b.rspTo = id
	return b
}

// WithData sets the returned data of the response to build.
func (b HellaRespBuilder) WithData(data []byte) HellaRespBuilder {
	b.data = data
	return b
}

// WithTag sets the tag of the response to build.
func (b HellaRespBuilder) WithTag(tag uint64) HellaRespBuilder {
	b.tag = tag
	return b
}

// Nack marks the response to build as a nack requiring replay.
func (b HellaRespBuilder) Nack() HellaRespBuilder {
	b.nack = true
	return b
}

// Exception marks the response to build as carrying an exception (s2_xcpt).
func (b HellaRespBuilder) Exception() HellaRespBuilder {
	b.exception = true
	return b
}

// Build creates a new HellaResp.
func (b HellaRespBuilder) Build() *HellaResp {
	r := &HellaResp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RespondTo = b.rspTo
	r.Data = b.data
	r.Tag = b.tag
	r.Nack = b.nack
	r.Exception = b.exception

	return r
}

// Package mem defines the wire protocol shared between the LSU and its
// memory-side collaborators (the data cache and the hash-based bounds
// table probe path). It mirrors the request/response shape every other
// memory-hierarchy component in this module speaks, so a test double can
// stand in for a real cache without the LSU knowing the difference.
package mem

import "github.com/weontaekna/AOS-boom/sim"

var accessReqByteOverhead = 12
var accessRspByteOverhead = 4

// AccessReq abstracts read and write requests sent to a memory-side
// component.
type AccessReq interface {
	sim.Msg
	GetAddress() uint64
	GetByteSize() uint64
}

// AccessRsp is a response from a memory-side component.
type AccessRsp interface {
	sim.Msg
	sim.Rsp
}

// ReadReq asks a memory-side component to fetch data, or, when Uncacheable
// probes a hash-based bounds table row. Info carries an opaque requester
// tag; responses do not echo it, so a requester matches a response to its
// request through the response's RespondTo ID.
type ReadReq struct {
	sim.MsgMeta

	Address        uint64
	AccessByteSize uint64
	Uncacheable    bool
	Info           interface{}
}

// Meta returns the message meta data.
func (r *ReadReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetAddress returns the address the request is accessing.
func (r *ReadReq) GetAddress() uint64 {
	return r.Address
}

// GetByteSize returns the number of bytes the request is accessing.
func (r *ReadReq) GetByteSize() uint64 {
	return r.AccessByteSize
}

// ReadReqBuilder builds ReadReq messages.
type ReadReqBuilder struct {
	src, dst    sim.Port
	address     uint64
	byteSize    uint64
	uncacheable bool
	info        interface{}
}

// WithSrc sets the source of the request to build.
func (b ReadReqBuilder) WithSrc(src sim.Port) ReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ReadReqBuilder) WithDst(dst sim.Port) ReadReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b ReadReqBuilder) WithAddress(address uint64) ReadReqBuilder {
	b.address = address
	return b
}

// WithByteSize sets the byte size of the request to build.
func (b ReadReqBuilder) WithByteSize(byteSize uint64) ReadReqBuilder {
	b.byteSize = byteSize
	return b
}

// Uncacheable marks the request to build as bypassing the cache hierarchy,
// used for hash-based bounds table probes.
func (b ReadReqBuilder) Uncacheable() ReadReqBuilder {
	b.uncacheable = true
	return b
}

// WithInfo attaches an opaque requester tag to the request to build.
func (b ReadReqBuilder) WithInfo(info interface{}) ReadReqBuilder {
	b.info = info
	return b
}

// Build creates a new ReadReq.
func (b ReadReqBuilder) Build() *ReadReq {
	r := &ReadReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessReqByteOverhead
	r.Address = b.address
	r.AccessByteSize = b.byteSize
	r.Uncacheable = b.uncacheable
	r.Info = b.info

	return r
}

// WriteReq asks a memory-side component to write data, or, when
// Uncacheable, to store a descriptor into a hash-based bounds table row.
type WriteReq struct {
	sim.MsgMeta

	Address     uint64
	Data        []byte
	DirtyMask   []bool
	Uncacheable bool
	Info        interface{}
}

// Meta returns the message meta data.
func (r *WriteReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetAddress returns the address the request is accessing.
func (r *WriteReq) GetAddress() uint64 {
	return r.Address
}

// GetByteSize returns the number of bytes the request is writing.
func (r *WriteReq) GetByteSize() uint64 {
	return uint64(len(r.Data))
}

// WriteReqBuilder builds WriteReq messages.
type WriteReqBuilder struct {
	src, dst    sim.Port
	address     uint64
	data        []byte
	dirtyMask   []bool
	uncacheable bool
	info        interface{}
}

// WithSrc sets the source of the request to build.
func (b WriteReqBuilder) WithSrc(src sim.Port) WriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b WriteReqBuilder) WithDst(dst sim.Port) WriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b WriteReqBuilder) WithAddress(address uint64) WriteReqBuilder {
	b.address = address
	return b
}

// WithData sets the data of the request to build.
func (b WriteReqBuilder) WithData(data []byte) WriteReqBuilder {
	b.data = data
	return b
}

// WithDirtyMask sets the byte dirty mask of the request to build.
func (b WriteReqBuilder) WithDirtyMask(mask []bool) WriteReqBuilder {
	b.dirtyMask = mask
	return b
}

// Uncacheable marks the request to build as a bounds table store, bypassing
// the cache hierarchy.
func (b WriteReqBuilder) Uncacheable() WriteReqBuilder {
	b.uncacheable = true
	return b
}

// WithInfo attaches an opaque requester tag to the request to build.
func (b WriteReqBuilder) WithInfo(info interface{}) WriteReqBuilder {
	b.info = info
	return b
}

// Build creates a new WriteReq.
func (b WriteReqBuilder) Build() *WriteReq {
	r := &WriteReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Address = b.address
	r.Data = b.data
	r.DirtyMask = b.dirtyMask
	r.Uncacheable = b.uncacheable
	r.Info = b.info
	r.TrafficBytes = len(r.Data) + accessReqByteOverhead

	return r
}

// DataReadyRsp carries data back to the requester of a ReadReq.
type DataReadyRsp struct {
	sim.MsgMeta

	RespondTo string
	Data      []byte
}

// Meta returns the message meta data.
func (r *DataReadyRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request this response answers.
func (r *DataReadyRsp) GetRspTo() string {
	return r.RespondTo
}

// DataReadyRspBuilder builds DataReadyRsp messages.
type DataReadyRspBuilder struct {
	src, dst sim.Port
	rspTo    string
	data     []byte
}

// WithSrc sets the source of the response to build.
func (b DataReadyRspBuilder) WithSrc(src sim.Port) DataReadyRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b DataReadyRspBuilder) WithDst(dst sim.Port) DataReadyRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build answers.
func (b DataReadyRspBuilder) WithRspTo(id string) DataReadyRspBuilder {
	b.rspTo = id
	return b
}

// WithData sets the data of the response to build.
func (b DataReadyRspBuilder) WithData(data []byte) DataReadyRspBuilder {
	b.data = data
	return b
}

// Build creates a new DataReadyRsp.
func (b DataReadyRspBuilder) Build() *DataReadyRsp {
	r := &DataReadyRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = len(b.data) + accessRspByteOverhead
	r.RespondTo = b.rspTo
	r.Data = b.data

	return r
}

// WriteDoneRsp acknowledges a WriteReq completed.
type WriteDoneRsp struct {
	sim.MsgMeta

	RespondTo string
}

// Meta returns the message meta data.
func (r *WriteDoneRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request this response answers.
func (r *WriteDoneRsp) GetRspTo() string {
	return r.RespondTo
}

// WriteDoneRspBuilder builds WriteDoneRsp messages.
type WriteDoneRspBuilder struct {
	src, dst sim.Port
	rspTo    string
}

// WithSrc sets the source of the response to build.
func (b WriteDoneRspBuilder) WithSrc(src sim.Port) WriteDoneRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b WriteDoneRspBuilder) WithDst(dst sim.Port) WriteDoneRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build answers.
func (b WriteDoneRspBuilder) WithRspTo(id string) WriteDoneRspBuilder {
	b.rspTo = id
	return b
}

// Build creates a new WriteDoneRsp.
func (b WriteDoneRspBuilder) Build() *WriteDoneRsp {
	r := &WriteDoneRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RespondTo = b.rspTo

	return r
}

// NackRsp tells the requester of a ReadReq/WriteReq that the memory-side
// component could not accept the request this cycle and it must be
// retried.
type NackRsp struct {
	sim.MsgMeta

	RespondTo string
}

// Meta returns the message meta data.
func (r *NackRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request this response answers.
func (r *NackRsp) GetRspTo() string {
	return r.RespondTo
}

// NackRspBuilder builds NackRsp messages.
type NackRspBuilder struct {
	src, dst sim.Port
	rspTo    string
}

// WithSrc sets the source of the response to build.
func (b NackRspBuilder) WithSrc(src sim.Port) NackRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b NackRspBuilder) WithDst(dst sim.Port) NackRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build answers.
func (b NackRspBuilder) WithRspTo(id string) NackRspBuilder {
	b.rspTo = id
	return b
}

// Build creates a new NackRsp.
func (b NackRspBuilder) Build() *NackRsp {
	r := &NackRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RespondTo = b.rspTo

	return r
}

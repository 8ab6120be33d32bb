package sim

// A Msg is a piece of information that is transferred between components.
type Msg interface {
	Meta() *MsgMeta
}

// MsgMeta contains the meta data that is attached to every message that
// travels between components.
type MsgMeta struct {
	ID           string
	Src, Dst     Port
	TrafficBytes int
}

// Rsp is a special message that is used to indicate the completion of a
// request.
type Rsp interface {
	Msg
	GetRspTo() string
}

// GeneralRsp is a bare response that carries no payload beyond the ID of the
// request it replies to. Components that need nothing more than an
// acknowledgement build one of these instead of inventing a bespoke type.
type GeneralRsp struct {
	MsgMeta

	OriginalReq Msg
}

// Meta returns the meta data of the message.
func (r *GeneralRsp) Meta() *MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the original request.
func (r *GeneralRsp) GetRspTo() string {
	return r.OriginalReq.Meta().ID
}

// GeneralRspBuilder can build general response messages.
type GeneralRspBuilder struct {
	src, dst     Port
	trafficBytes int
	originalReq  Msg
}

// WithSrc sets the source of the general response message.
func (b GeneralRspBuilder) WithSrc(src Port) GeneralRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the general response message.
func (b GeneralRspBuilder) WithDst(dst Port) GeneralRspBuilder {
	b.dst = dst
	return b
}

// WithOriginalReq sets the request that the response to build replies to.
func (b GeneralRspBuilder) WithOriginalReq(req Msg) GeneralRspBuilder {
	b.originalReq = req
	return b
}

// Build creates a new GeneralRsp.
func (b GeneralRspBuilder) Build() *GeneralRsp {
	r := &GeneralRsp{}
	r.ID = GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = b.trafficBytes
	r.OriginalReq = b.originalReq

	return r
}

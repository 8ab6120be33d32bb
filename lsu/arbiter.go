package lsu

import (
	"github.com/weontaekna/AOS-boom/fwdage"
	"github.com/weontaekna/AOS-boom/hella"
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/lcam"
	"github.com/weontaekna/AOS-boom/mem"
	"github.com/weontaekna/AOS-boom/uop"
)

// resources models the per-cycle shared resource pool named in §4.2: one
// TLB port, one DC port, one LCAM port, and one ROB clear-busy slot per
// memory lane.
type resources struct {
	tlb, dc, lcam, rob int
}

func (c *Comp) newResources() resources {
	return resources{tlb: c.cfg.MemWidth, dc: c.cfg.MemWidth, lcam: c.cfg.MemWidth, rob: c.cfg.MemWidth}
}

// arbitrateAndFire walks the fixed-priority category list of §4.2 and
// fires the highest-priority ready candidate(s) the shared resource pool
// allows. Categories are collapsed from the reference design's 14-entry
// list into the operations that actually compete for resources in this
// model: incoming/retry/wakeup share one age-priority search per queue,
// exactly as the design notes call for the same encoder across all three.
// fireHella runs first since hella_incoming/hella_wakeup sit at priority
// 7-8, above every load/store/bounds category that follows.
func (c *Comp) arbitrateAndFire() bool {
	res := c.newResources()
	progress := false

	if c.fireHella(&res) {
		progress = true
	}

	if c.fireLoad(&res) {
		progress = true
	}

	if c.fireStoreAddr(&res) {
		progress = true
	}

	if c.fireStoreCommit(&res) {
		progress = true
	}

	if c.fireBndLoad(&res) {
		progress = true
	}

	if c.fireBndStore(&res) {
		progress = true
	}

	return progress
}

func (c *Comp) fireLoad(res *resources) bool {
	if res.tlb <= 0 || res.dc <= 0 || res.lcam <= 0 {
		return false
	}

	idx, ok := c.Ldq.RetryIdx()
	if !ok {
		idx, ok = c.Ldq.WakeupIdx(c.robHeadIdx)
	}

	if !ok {
		return false
	}

	if c.blockLoadMask&(1<<uint(idx)) != 0 ||
		c.p1BlockLoadMask&(1<<uint(idx)) != 0 ||
		c.p2BlockLoadMask&(1<<uint(idx)) != 0 {
		return false
	}

	if c.lrscCount > 0 {
		return false
	}

	e := c.Ldq.Entry(idx)
	c.blockLoadMask |= 1 << uint(idx)
	res.lcam--

	if e.AddrIsVirtual {
		res.tlb--
		c.sendDtlbReq(idx, "ldq", e.Addr, false)

		return true
	}

	if c.runLoadLCAM(idx) {
		// Forwarded directly from the STQ; no DC request needed this
		// cycle, matching §4.6's "DC did not fire" forwarding path.
		return true
	}

	res.dc--
	c.sendDCacheRead(idx, "ldq", e.Addr, e.Uop.MemSize.Bytes(), false)

	return true
}

// runLoadLCAM runs the LCAM search for a firing load and, if a full
// store-to-load forward is available, performs it immediately and
// reports true so the caller skips issuing a DC request.
func (c *Comp) runLoadLCAM(idx int) bool {
	res := lcam.LoadSearch(c.Ldq, c.Stq, idx)
	e := c.Ldq.Entry(idx)

	// The youngest older store across every overlapping match, full or
	// partial, wins arbitration: a younger partial-overlap store must
	// block the load even if an older store fully covers it.
	candidates := make([]int, 0, len(res.ForwardMatchStqIdx)+len(res.AddrMatchStqIdx))
	candidates = append(candidates, res.ForwardMatchStqIdx...)
	candidates = append(candidates, res.AddrMatchStqIdx...)

	selIdx, ok := fwdage.Select(candidates, c.Stq.Head(), e.YoungestStqIdx, c.Stq.Len())
	if !ok {
		return false
	}

	if !fwdage.IsForwardMatch(selIdx, res.ForwardMatchStqIdx) {
		// The winning store only partially overlaps the load: forwarding
		// is impossible and the DC request is withheld. The load stays
		// blocked until the conflicting store retires from the STQ.
		e.Executed = false
		e.Blocked = true

		return true
	}

	store := c.Stq.Entry(selIdx)
	e.Executed = true
	e.Succeeded = true
	e.ForwardStdVal = true
	e.ForwardStqIdx = selIdx
	e.Data = generateForward(store.Data, store.Addr, e.Addr, e.Uop.MemSize, e.Uop.Signed)
	c.newlySucceededLdq = append(c.newlySucceededLdq, idx)

	return true
}

// fireStoreAddr sends a still-virtual store address out for translation.
// The memory-ordering search against the LDQ runs once the translation
// comes back, in handleDtlbResp, since that is the first point the
// store's physical address is known.
func (c *Comp) fireStoreAddr(res *resources) bool {
	if res.tlb <= 0 || res.lcam <= 0 || res.rob <= 0 {
		return false
	}

	idx, ok := c.Stq.RetryIdx()
	if !ok {
		return false
	}

	e := c.Stq.Entry(idx)
	res.tlb--
	res.lcam--
	res.rob--

	c.sendDtlbReq(idx, "stq", e.Addr, true)

	return true
}

func (c *Comp) fireStoreCommit(res *resources) bool {
	if res.dc <= 0 {
		return false
	}

	idx := c.Stq.ExecuteHead()
	if idx == c.Stq.Tail() {
		return false
	}

	e := c.Stq.Entry(idx)
	if !e.Valid || !e.Committed || e.AddrIsVirtual || !e.AddrValid {
		return false
	}

	res.dc--
	c.sendDCacheWrite(idx, "stq-commit", e.Addr, e.Data)

	return true
}

func (c *Comp) fireBndLoad(res *resources) bool {
	if res.dc <= 0 {
		return false
	}

	idx, ok := c.Mcq.LoadIdx()
	if !ok {
		return false
	}

	res.dc--

	addr := c.Mcq.ProbeAddr(idx, c.csr.Config().HBTBaseAddr)
	c.sendDCacheRead(idx, "mcq-probe", addr, 8, true)

	return true
}

func (c *Comp) fireBndStore(res *resources) bool {
	if res.dc <= 0 {
		return false
	}

	if idx, ok := c.Bdq.StoreIdx(); ok {
		res.dc--
		addr := c.Bdq.ProbeAddr(idx, c.csr.Config().HBTBaseAddr)
		c.sendDCacheWrite(idx, "bdq-store", addr, c.Bdq.Entry(idx).Data)

		return true
	}

	if idx, ok := c.Bdq.LoadIdx(); ok {
		res.dc--

		addr := c.Bdq.ProbeAddr(idx, c.csr.Config().HBTBaseAddr)
		c.sendDCacheRead(idx, "bdq-probe", addr, 8, true)

		return true
	}

	return false
}

// fireHella issues the pending hella-channel request's single DC access.
// It is arbitrated ahead of every LDQ/STQ/MCQ/BDQ category per §4.2's
// priority table, so a live hella request never starves behind the
// pipelined memory traffic sharing the same DC port.
func (c *Comp) fireHella(res *resources) bool {
	if res.dc <= 0 || c.pendingHella == nil {
		return false
	}

	state := c.hella.State()
	if state != hella.S1 && state != hella.Replay {
		return false
	}

	req := c.pendingHella
	res.dc--
	c.hella.Handle(hella.EventFired)

	if uop.MemCmd(req.Cmd) == uop.CmdWrite {
		c.sendDCacheWrite(0, "hella", req.Addr, req.Data)
	} else {
		c.sendDCacheRead(0, "hella", req.Addr, req.Size, false)
	}

	return true
}

func (c *Comp) sendDtlbReq(idx int, kind string, vaddr uint64, isStore bool) {
	b := (iface.DtlbReqBuilder{}).
		WithSrc(c.toDtlb).
		WithDst(c.dtlbRemote).
		WithVAddr((vaddr << 19) >> 19).
		WithInfo(requestTag{kind: kind, idx: idx})

	if isStore {
		b = b.IsStore()
	}

	req := b.Build()
	c.inflight[req.ID] = requestTag{kind: kind, idx: idx}
	c.toDtlb.Send(req)
}

func (c *Comp) sendDCacheRead(idx int, kind string, addr, byteSize uint64, uncacheable bool) {
	b := (mem.ReadReqBuilder{}).
		WithSrc(c.toDcache).
		WithDst(c.dcacheRemote).
		WithAddress(addr).
		WithByteSize(byteSize)

	if uncacheable {
		b = b.Uncacheable()
	}

	req := b.Build()

	c.recordMemReq(kind, idx, byteSize)

	c.inflight[req.ID] = requestTag{kind: kind, idx: idx}
	c.toDcache.Send(req)
}

func (c *Comp) sendDCacheWrite(idx int, kind string, addr uint64, data []byte) {
	req := (mem.WriteReqBuilder{}).
		WithSrc(c.toDcache).
		WithDst(c.dcacheRemote).
		WithAddress(addr).
		WithData(data).
		Build()

	c.recordMemReq(kind, idx, uint64(len(data)))

	c.inflight[req.ID] = requestTag{kind: kind, idx: idx}
	c.toDcache.Send(req)
}

// recordMemReq accumulates a DCache request's count and byte size on the
// issuing queue entry, so mem_req/mem_size only reach the CSR file once
// that entry actually retires (commit.go flushes it at dequeue) rather than
// at every speculative issue. The hella channel has no dequeue event of its
// own, so its traffic is counted immediately.
func (c *Comp) recordMemReq(kind string, idx int, byteSize uint64) {
	switch kind {
	case "ldq":
		e := c.Ldq.Entry(idx)
		e.MemReqCount++
		e.MemReqBytes += byteSize
	case "stq-commit":
		e := c.Stq.Entry(idx)
		e.MemReqCount++
		e.MemReqBytes += byteSize
	case "mcq-probe":
		e := c.Mcq.Entry(idx)
		e.MemReqCount++
		e.MemReqBytes += byteSize
	case "bdq-probe", "bdq-store":
		e := c.Bdq.Entry(idx)
		e.MemReqCount++
		e.MemReqBytes += byteSize
	case "hella":
		c.csr.CountMemReq()
		c.csr.AddMemSize(byteSize)
	}
}

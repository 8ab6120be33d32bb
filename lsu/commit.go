package lsu

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/ldq"
)

// commit processes one cycle's worth of retiring micro-ops per §4.9: marks
// the corresponding STQ/MCQ/BDQ slots committed in program order, advances
// the STQ's commit head, and dequeues any LDQ/STQ/MCQ/BDQ head entry that
// has finished and is now the oldest committed entry. Every queue entry's
// counters reach the CSR file here, at dequeue, so a micro-op squashed by a
// mispredict or exception before it retires never contributes to the
// counts. Hella-channel traffic has no queue entry and is counted when it
// is issued and answered instead.
func (c *Comp) commit(bundle iface.CommitBundle) bool {
	progress := false

	for i, valid := range bundle.Valids {
		if !valid {
			continue
		}

		u := bundle.Uops[i]
		progress = true

		if u.UsesLdq {
			c.flushLdqCounters(c.Ldq.Entry(c.Ldq.Head()))
			c.Ldq.Commit()
		}

		if u.UsesStq {
			c.Stq.Commit(u.StqIdx)
		}

		if isMemTouching(u) && !u.Exception {
			c.Mcq.Commit(c.mcqCommitPtr)
			c.mcqCommitPtr = (c.mcqCommitPtr + 1) % c.Mcq.Len()
		}

		if u.UsesBdq {
			c.Bdq.Commit(c.bdqCommitPtr)
			c.bdqCommitPtr = (c.bdqCommitPtr + 1) % c.Bdq.Len()
		}

		if u.IsFencei || u.IsSfence {
			c.Stq.AdvanceExecuteHead()
		}
	}

	c.Stq.AdvanceCommitHead()

	for {
		e := c.Stq.Entry(c.Stq.Head())
		count, bytes, misses := e.MemReqCount, e.MemReqBytes, e.CacheMisses

		if !c.Stq.DequeueHead() {
			break
		}

		progress = true
		c.csr.AddMemReq(count)
		c.csr.AddMemSize(bytes)
		c.csr.AddCacheMiss(misses)

		for i := 0; i < c.Ldq.Len(); i++ {
			c.Ldq.Entry(i).Blocked = false
		}
	}

	for {
		e := c.Mcq.Entry(c.Mcq.Head())
		count, bytes, hits, misses, signed := e.MemReqCount, e.MemReqBytes, e.CacheHits, e.CacheMisses, e.Signed

		if !c.Mcq.DequeueHead() {
			break
		}

		progress = true
		c.csr.AddMemReq(count)
		c.csr.AddMemSize(bytes)
		c.csr.AddCacheHit(hits)
		c.csr.AddCacheMiss(misses)
		c.csr.CountBndSrch()

		if signed {
			c.csr.CountSignedInst()
		} else {
			c.csr.CountUnsignedInst()
		}
	}

	for {
		e := c.Bdq.Entry(c.Bdq.Head())
		count, bytes, hits, misses, clear := e.MemReqCount, e.MemReqBytes, e.CacheHits, e.CacheMisses, e.Uop.IsBndClr

		if !c.Bdq.DequeueHead() {
			break
		}

		progress = true
		c.csr.AddMemReq(count)
		c.csr.AddMemSize(bytes)
		c.csr.AddCacheHit(hits)
		c.csr.AddCacheMiss(misses)

		if clear {
			c.csr.CountBndClr()
		} else {
			c.csr.CountBndStr()
		}
	}

	return progress
}

// flushLdqCounters moves a retiring LDQ entry's accumulated DCache counts
// into the CSR file. Called before Ldq.Commit() wipes the entry.
func (c *Comp) flushLdqCounters(e *ldq.Entry) {
	c.csr.AddMemReq(e.MemReqCount)
	c.csr.AddMemSize(e.MemReqBytes)
	c.csr.AddCacheHit(e.CacheHits)
	c.csr.AddCacheMiss(e.CacheMisses)
}

// handleMispredict squashes every LDQ/STQ/MCQ/BDQ entry younger than the
// mispredicted branch, rewinding each queue's tail to the snapshot the ROB
// took when the branch was dispatched, per §4.10.
func (c *Comp) handleMispredict(info iface.BrInfo) {
	c.Ldq.Kill(info.LdqTail, info.MispredictMask)
	c.Stq.Kill(info.StqTail, info.MispredictMask)
	c.Mcq.Kill(info.McqTail, info.MispredictMask)
	c.Bdq.Kill(info.BdqTail, info.MispredictMask)

	for id := range c.inflight {
		delete(c.inflight, id)
	}

	c.blockLoadMask = 0
	c.p1BlockLoadMask = 0
	c.p2BlockLoadMask = 0
}

// handleException resets every queue to its post-exception state: the LDQ
// is fully flushed, the STQ is rewound to its last committed store, and the
// MCQ/BDQ are fully flushed, per §4.11.
func (c *Comp) handleException() {
	c.Ldq.Reset()
	c.Stq.Reset()
	c.Mcq.Reset()
	c.Bdq.Reset()

	c.mcqCommitPtr = 0
	c.bdqCommitPtr = 0

	for id := range c.inflight {
		delete(c.inflight, id)
	}

	c.blockLoadMask = 0
	c.p1BlockLoadMask = 0
	c.p2BlockLoadMask = 0
	c.lastSignals.Lxcpt = iface.Lxcpt{}
}

// Package ldq implements the Load Queue: a fixed-capacity circular buffer
// tracking in-flight loads from dispatch through commit, including the
// store-dependency snapshot each load needs for memory-ordering checks.
package ldq

import (
	"github.com/weontaekna/AOS-boom/ageenc"
	"github.com/weontaekna/AOS-boom/uop"
)

// Entry is one Load Queue slot.
type Entry struct {
	Valid bool
	Uop   uop.MicroOp

	AddrValid         bool
	Addr              uint64
	AddrIsVirtual     bool
	AddrIsUncacheable bool

	Executed      bool
	ExecuteIgnore bool
	Succeeded     bool
	OrderFail     bool
	Observed      bool
	Blocked       bool

	StDepMask      uint64
	YoungestStqIdx int

	ForwardStdVal bool
	ForwardStqIdx int

	// Data is the load's result once Succeeded is true: either the bytes
	// the data cache returned, or the bytes a store-to-load forward
	// generated.
	Data []byte

	// MemReqCount, MemReqBytes, CacheHits, and CacheMisses accumulate over
	// every DCache attempt this entry makes (including retries after a
	// nack). They are flushed into the CSR file at commit, not as each
	// attempt happens, so a load squashed before it retires never
	// contributes to the counters.
	MemReqCount uint64
	MemReqBytes uint64
	CacheHits   uint64
	CacheMisses uint64
}

// Queue is the circular Load Queue.
type Queue struct {
	entries []Entry
	head    int
	tail    int
}

// New creates a Queue with the given number of entries.
func New(numEntries int) *Queue {
	return &Queue{entries: make([]Entry, numEntries)}
}

// Len returns the queue's capacity.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Head returns the current head index.
func (q *Queue) Head() int {
	return q.head
}

// Tail returns the current tail index.
func (q *Queue) Tail() int {
	return q.tail
}

// Entry returns a pointer to slot idx so callers can read or mutate it in
// place.
func (q *Queue) Entry(idx int) *Entry {
	return &q.entries[idx]
}

// Full reports whether dispatching one more load would collide with head,
// mirroring the reference design's wrap_inc(enq_idx) == head check.
func (q *Queue) Full() bool {
	return q.wrapInc(q.tail) == q.head
}

func (q *Queue) wrapInc(idx int) int {
	return (idx + 1) % len(q.entries)
}

// Dispatch allocates a new slot at the tail, seeded with stDepMask (a
// snapshot of live_store_mask at dispatch time) and youngestStqIdx. It
// returns the allocated index. The caller must check Full() first.
func (q *Queue) Dispatch(u uop.MicroOp, stDepMask uint64, youngestStqIdx int) int {
	idx := q.tail

	q.entries[idx] = Entry{
		Valid:          true,
		Uop:            u,
		StDepMask:      stDepMask,
		YoungestStqIdx: youngestStqIdx,
	}

	q.tail = q.wrapInc(q.tail)

	return idx
}

// WakeupIdx finds the oldest load ready to fire a speculative wakeup: it
// has a physical address, has not executed or succeeded, is not blocked,
// and is either cacheable or is at the head of the ROB (robHeadIdx) with
// no outstanding store dependency. Uncacheable loads must execute in
// program order, so each candidate's own RobIdx is checked against
// robHeadIdx rather than gating the whole search on a single flag.
func (q *Queue) WakeupIdx(robHeadIdx int) (int, bool) {
	return ageenc.Oldest(q.head, len(q.entries), func(i int) bool {
		e := &q.entries[i]
		if !e.Valid || !e.AddrValid || e.Executed || e.Succeeded || e.Blocked || e.AddrIsVirtual {
			return false
		}

		if !e.AddrIsUncacheable {
			return true
		}

		return e.Uop.RobIdx == robHeadIdx && e.StDepMask == 0
	})
}

// RetryIdx finds the oldest load whose address is virtual (awaiting a TLB
// retry) and not blocked.
func (q *Queue) RetryIdx() (int, bool) {
	return ageenc.Oldest(q.head, len(q.entries), func(i int) bool {
		e := &q.entries[i]
		return e.Valid && e.AddrValid && e.AddrIsVirtual && !e.Blocked
	})
}

// Commit dequeues the head entry, asserting that it is ready to retire.
// It panics if the invariant is violated, the same way the reference
// design treats this as a fatal design error.
func (q *Queue) Commit() {
	e := &q.entries[q.head]
	if !e.Valid {
		panic("ldq: commit of invalid head entry")
	}

	if !(e.Executed || e.ForwardStdVal) {
		panic("ldq: commit of entry that never executed or forwarded")
	}

	if !e.Succeeded {
		panic("ldq: commit of entry that never succeeded")
	}

	*e = Entry{}
	q.head = q.wrapInc(q.head)
}

// Kill invalidates every slot whose BrMask intersects mispredictMask, and
// rewinds the tail to killIdx, mirroring a branch-mispredict squash.
func (q *Queue) Kill(killIdx int, mispredictMask uint64) {
	q.tail = killIdx

	for i := range q.entries {
		e := &q.entries[i]
		if e.Valid && uop.IsKilledByBranch(e.Uop.BrMask, mispredictMask) {
			*e = Entry{}
		}
	}
}

// Reset invalidates every entry and resets head/tail to zero, as happens
// on an exception.
func (q *Queue) Reset() {
	for i := range q.entries {
		q.entries[i] = Entry{}
	}

	q.head = 0
	q.tail = 0
}

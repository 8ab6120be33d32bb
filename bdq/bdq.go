// Package bdq implements the Bounds-Descriptor Queue: the state machine
// that stores, clears, and searches bounds descriptors in the Hash-based
// Bounds Table for allocation-like operations.
package bdq

import (
	"github.com/weontaekna/AOS-boom/ageenc"
	"github.com/weontaekna/AOS-boom/hbt"
	"github.com/weontaekna/AOS-boom/uop"
)

// State is one BDQ entry's state.
type State int

// BDQ states: b_init -> b_occChk -> b_bndStr -> b_done, with b_fail
// absorbing.
const (
	StateInit State = iota
	StateOccChk
	StateBndStr
	StateFail
	StateDone
)

// Entry is one BDQ slot.
type Entry struct {
	Valid bool
	Uop   uop.MicroOp

	AddrValid bool
	Addr      uint64

	DataValid bool
	Data      []byte

	Executed  bool
	Committed bool

	Way   uint32
	Count uint32

	State State

	// MemReqCount, MemReqBytes, CacheHits, and CacheMisses accumulate over
	// every occupancy probe and bounds store this entry fires. Flushed
	// into the CSR file at commit, not as each attempt happens.
	MemReqCount uint64
	MemReqBytes uint64
	CacheHits   uint64
	CacheMisses uint64
}

// Queue is the Bounds-Descriptor Queue.
type Queue struct {
	entries []Entry
	head    int
	tail    int
	numWay  uint32
	occ     hbt.CheckPredicate
}

// New creates a Queue with the given capacity, probing at most numWay ways
// per entry and testing slot-free-ness with occ.
func New(numEntries int, numWay uint32, occ hbt.CheckPredicate) *Queue {
	if occ == nil {
		occ = hbt.AlwaysMatch
	}

	return &Queue{
		entries: make([]Entry, numEntries),
		numWay:  numWay,
		occ:     occ,
	}
}

// Len returns the queue's capacity.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Head returns the current head index.
func (q *Queue) Head() int {
	return q.head
}

// Entry returns a pointer to slot idx.
func (q *Queue) Entry(idx int) *Entry {
	return &q.entries[idx]
}

func (q *Queue) wrapInc(idx int) int {
	return (idx + 1) % len(q.entries)
}

// Full reports whether dispatching one more entry would collide with head.
func (q *Queue) Full() bool {
	return q.wrapInc(q.tail) == q.head
}

// Dispatch allocates a slot for a bounds-descriptor micro-op.
func (q *Queue) Dispatch(u uop.MicroOp) int {
	idx := q.tail

	q.entries[idx] = Entry{Valid: true, Uop: u}

	q.tail = q.wrapInc(q.tail)

	return idx
}

// DeliverAddr transitions an entry from b_init to b_occChk on AGU address
// delivery.
func (q *Queue) DeliverAddr(idx int, addr uint64, data []byte) {
	e := &q.entries[idx]
	e.Addr = addr
	e.AddrValid = true
	e.Data = data
	e.DataValid = data != nil
	e.State = StateOccChk
}

// ProbeAddr computes the physical HBT probe address for an entry's current
// way, identical in shape to the MCQ's formula with the source typo
// resolved to OR (spec open question #2).
func (q *Queue) ProbeAddr(idx int, base uint64) uint64 {
	e := &q.entries[idx]

	return hbt.Addr(base, hbt.PAC(e.Addr), e.Way)
}

// LoadIdx finds the oldest entry ready to fire an occupancy probe: in
// b_occChk and not yet executed this round.
func (q *Queue) LoadIdx() (int, bool) {
	return ageenc.Oldest(q.head, len(q.entries), func(i int) bool {
		e := &q.entries[i]
		return e.Valid && e.State == StateOccChk && !e.Executed
	})
}

// StoreIdx finds the oldest entry ready to fire its bounds store: in
// b_bndStr, committed, and not yet executed.
func (q *Queue) StoreIdx() (int, bool) {
	return ageenc.Oldest(q.head, len(q.entries), func(i int) bool {
		e := &q.entries[i]
		return e.Valid && e.State == StateBndStr && e.Committed && !e.Executed
	})
}

// HandleOccResponse advances an entry's state machine once its occupancy
// probe responds: if the slot is free (occ_check holds), switch to a
// bounds store in b_bndStr; otherwise advance to the next way, or b_fail
// once numWay ways have failed.
func (q *Queue) HandleOccResponse(idx int, base uint64, resp []byte) {
	e := &q.entries[idx]
	e.Executed = true

	addr := q.ProbeAddr(idx, base)
	if q.occ(resp, addr, e.Way) {
		e.Uop.MemCmd = uop.CmdWrite
		e.State = StateBndStr
		e.Executed = false

		return
	}

	if e.Count < q.numWay-1 {
		e.Count++
		e.Way++
		e.Executed = false

		return
	}

	e.State = StateFail
}

// HandleStoreResponse transitions an entry to b_done once its bounds
// store response arrives.
func (q *Queue) HandleStoreResponse(idx int) {
	e := &q.entries[idx]
	e.Executed = true
	e.State = StateDone
}

// Commit marks the entry committed.
func (q *Queue) Commit(idx int) {
	q.entries[idx].Committed = true
}

// DequeueHead retires the head entry once it is committed and in b_done.
func (q *Queue) DequeueHead() bool {
	e := &q.entries[q.head]
	if !e.Valid || !e.Committed || e.State != StateDone {
		return false
	}

	*e = Entry{}
	q.head = q.wrapInc(q.head)

	return true
}

// Kill invalidates every slot whose BrMask intersects mispredictMask and
// rewinds the tail to killIdx.
func (q *Queue) Kill(killIdx int, mispredictMask uint64) {
	q.tail = killIdx

	for i := range q.entries {
		e := &q.entries[i]
		if e.Valid && uop.IsKilledByBranch(e.Uop.BrMask, mispredictMask) {
			*e = Entry{}
		}
	}
}

// Reset invalidates every entry, as happens on an exception.
func (q *Queue) Reset() {
	for i := range q.entries {
		q.entries[i] = Entry{}
	}

	q.head = 0
	q.tail = 0
}

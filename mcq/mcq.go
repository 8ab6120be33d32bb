// Package mcq implements the Memory-Check Queue: one bounds-check state
// machine per memory-touching micro-op, probing the Hash-based Bounds
// Table until it finds a matching descriptor or exhausts its ways.
package mcq

import (
	"github.com/weontaekna/AOS-boom/ageenc"
	"github.com/weontaekna/AOS-boom/hbt"
	"github.com/weontaekna/AOS-boom/uop"
)

// State is one MCQ entry's bounds-check state.
type State int

// MCQ states, per the reference design's m_init -> m_bndChk -> (m_done |
// m_fail) walk.
const (
	StateInit State = iota
	StateBndChk
	StateFail
	StateDone
)

// Entry is one MCQ slot.
type Entry struct {
	Valid bool
	Uop   uop.MicroOp

	AddrValid bool
	Addr      uint64
	Signed    bool

	Executed  bool
	Committed bool

	Way   uint32
	Count uint32

	State State

	// MemReqCount, MemReqBytes, CacheHits, and CacheMisses accumulate over
	// every HBT probe this entry fires, across every way it tries.
	// Flushed into the CSR file when the entry is dequeued, not as each
	// probe happens.
	MemReqCount uint64
	MemReqBytes uint64
	CacheHits   uint64
	CacheMisses uint64
}

// Queue is the Memory-Check Queue.
type Queue struct {
	entries []Entry
	head    int
	tail    int
	numWay  uint32
	check   hbt.CheckPredicate
}

// New creates a Queue with the given capacity, probing at most numWay ways
// per entry and matching probed descriptors with check.
func New(numEntries int, numWay uint32, check hbt.CheckPredicate) *Queue {
	if check == nil {
		check = hbt.AlwaysMatch
	}

	return &Queue{
		entries: make([]Entry, numEntries),
		numWay:  numWay,
		check:   check,
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

// Dispatch allocates a slot for a memory-touching micro-op, forcing
// mem_cmd=READ, mem_size=0, uses_mcq=true per the reference design.
func (q *Queue) Dispatch(u uop.MicroOp) int {
	idx := q.tail

	forced := u
	forced.MemCmd = uop.CmdRead
	forced.MemSize = uop.SizeByte
	forced.UsesMcq = true

	q.entries[idx] = Entry{Valid: true, Uop: forced}

	q.tail = q.wrapInc(q.tail)

	return idx
}

// DeliverAddr transitions an entry from m_init to m_bndChk on AGU address
// delivery.
func (q *Queue) DeliverAddr(idx int, addr uint64, signed bool) {
	e := &q.entries[idx]
	e.Addr = addr
	e.AddrValid = true
	e.Signed = signed
	e.State = StateBndChk
}

// ProbeAddr computes the physical HBT probe address for an entry's current
// way, bit-exact with the reference design's formula.
func (q *Queue) ProbeAddr(idx int, base uint64) uint64 {
	e := &q.entries[idx]

	return hbt.Addr(base, hbt.PAC(e.Addr), e.Way)
}

// LoadIdx finds the oldest entry ready to fire a bounds probe: in
// m_bndChk and not yet executed this round.
func (q *Queue) LoadIdx() (int, bool) {
	return ageenc.Oldest(q.head, len(q.entries), func(i int) bool {
		e := &q.entries[i]
		return e.Valid && e.State == StateBndChk && !e.Executed
	})
}

// HandleResponse advances an entry's state machine once its bounds probe
// responds: if the descriptor matches, transition to m_done; otherwise
// advance to the next way, or m_fail once numWay ways have failed. base is
// the hbt_base_addr the probe was issued against.
func (q *Queue) HandleResponse(idx int, base uint64, resp []byte) {
	e := &q.entries[idx]
	e.Executed = true

	addr := q.ProbeAddr(idx, base)
	if q.check(resp, addr, e.Way) {
		e.State = StateDone
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

// Commit marks the entry committed.
func (q *Queue) Commit(idx int) {
	q.entries[idx].Committed = true
}

// DequeueHead retires the head entry once it is committed and in m_done.
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

package mcq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/mcq"
	"github.com/weontaekna/AOS-boom/uop"
)

func TestDispatchForcesReadByteUsesMcq(t *testing.T) {
	q := mcq.New(4, 4, nil)

	idx := q.Dispatch(uop.MicroOp{MemCmd: uop.CmdWrite, MemSize: uop.SizeDouble})
	e := q.Entry(idx)

	assert.Equal(t, uop.CmdRead, e.Uop.MemCmd)
	assert.Equal(t, uop.SizeByte, e.Uop.MemSize)
	assert.True(t, e.Uop.UsesMcq)
}

func TestLoadIdxFindsOldestBndChkEntryNotYetExecuted(t *testing.T) {
	q := mcq.New(4, 4, nil)

	idx := q.Dispatch(uop.MicroOp{})
	_, ok := q.LoadIdx()
	assert.False(t, ok, "an entry still in m_init is not ready for a bounds probe")

	q.DeliverAddr(idx, 0x4000, false)
	got, ok := q.LoadIdx()
	assert.True(t, ok)
	assert.Equal(t, idx, got)
}

func TestHandleResponseRetriesAcrossWaysThenFails(t *testing.T) {
	neverMatch := func(resp []byte, addr uint64, way uint32) bool { return false }
	q := mcq.New(4, 2, neverMatch)

	idx := q.Dispatch(uop.MicroOp{})
	q.DeliverAddr(idx, 0x4000, false)

	q.HandleResponse(idx, 0x10000, nil)
	e := q.Entry(idx)
	assert.Equal(t, mcq.StateBndChk, e.State, "still searching after the first of two ways fails")
	assert.Equal(t, uint32(1), e.Way)
	assert.False(t, e.Executed)

	q.HandleResponse(idx, 0x10000, nil)
	assert.Equal(t, mcq.StateFail, q.Entry(idx).State, "exhausting every way transitions to m_fail")
}

func TestHandleResponseSucceedsOnMatch(t *testing.T) {
	alwaysMatch := func(resp []byte, addr uint64, way uint32) bool { return true }
	q := mcq.New(4, 4, alwaysMatch)

	idx := q.Dispatch(uop.MicroOp{})
	q.DeliverAddr(idx, 0x4000, false)

	q.HandleResponse(idx, 0x10000, nil)
	assert.Equal(t, mcq.StateDone, q.Entry(idx).State)
}

func TestDequeueHeadRequiresCommittedAndDone(t *testing.T) {
	alwaysMatch := func(resp []byte, addr uint64, way uint32) bool { return true }
	q := mcq.New(4, 4, alwaysMatch)

	idx := q.Dispatch(uop.MicroOp{})
	q.DeliverAddr(idx, 0x4000, false)
	q.HandleResponse(idx, 0x10000, nil)

	assert.False(t, q.DequeueHead(), "not yet committed")

	q.Commit(idx)
	assert.True(t, q.DequeueHead())
}

func TestKillInvalidatesEntriesKilledByBranch(t *testing.T) {
	q := mcq.New(4, 4, nil)

	idx := q.Dispatch(uop.MicroOp{BrMask: 1 << 4})
	q.Kill(idx, 1<<4)

	assert.False(t, q.Entry(idx).Valid)
}

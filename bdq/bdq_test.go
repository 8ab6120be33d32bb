package bdq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/bdq"
	"github.com/weontaekna/AOS-boom/hbt"
	"github.com/weontaekna/AOS-boom/uop"
)

func TestDispatchThroughOccChkToBndStr(t *testing.T) {
	q := bdq.New(4, 4, hbt.AlwaysMatch)

	idx := q.Dispatch(uop.MicroOp{UsesBdq: true})
	assert.Equal(t, bdq.StateInit, q.Entry(idx).State)

	q.DeliverAddr(idx, 0x2000_0000_1000, []byte{1, 2, 3, 4})
	assert.Equal(t, bdq.StateOccChk, q.Entry(idx).State)

	loadIdx, ok := q.LoadIdx()
	assert.True(t, ok)
	assert.Equal(t, idx, loadIdx)

	q.HandleOccResponse(idx, 0x10000, nil)
	e := q.Entry(idx)
	assert.Equal(t, bdq.StateBndStr, e.State)
	assert.Equal(t, uop.CmdWrite, e.Uop.MemCmd)
	assert.False(t, e.Executed)
}

func TestStoreIdxRequiresCommitAndBndStrState(t *testing.T) {
	q := bdq.New(4, 4, hbt.AlwaysMatch)

	idx := q.Dispatch(uop.MicroOp{UsesBdq: true})
	q.DeliverAddr(idx, 0x1000, nil)
	q.HandleOccResponse(idx, 0x10000, nil)

	_, ok := q.StoreIdx()
	assert.False(t, ok, "an uncommitted entry must not fire its bounds store")

	q.Commit(idx)

	storeIdx, ok := q.StoreIdx()
	assert.True(t, ok)
	assert.Equal(t, idx, storeIdx)

	q.HandleStoreResponse(idx)
	assert.Equal(t, bdq.StateDone, q.Entry(idx).State)

	assert.True(t, q.DequeueHead())
}

func TestHandleOccResponseRetriesAcrossWaysThenFails(t *testing.T) {
	neverMatch := func(resp []byte, addr uint64, way uint32) bool { return false }
	q := bdq.New(4, 2, neverMatch)

	idx := q.Dispatch(uop.MicroOp{UsesBdq: true})
	q.DeliverAddr(idx, 0x1000, nil)

	q.HandleOccResponse(idx, 0x10000, nil)
	e := q.Entry(idx)
	assert.Equal(t, bdq.StateOccChk, e.State, "still searching after the first of two ways fails")
	assert.Equal(t, uint32(1), e.Way)
	assert.False(t, e.Executed)

	q.HandleOccResponse(idx, 0x10000, nil)
	assert.Equal(t, bdq.StateFail, q.Entry(idx).State, "exhausting every way transitions to b_fail")
}

func TestDequeueHeadRequiresCommittedAndDone(t *testing.T) {
	q := bdq.New(4, 4, hbt.AlwaysMatch)

	idx := q.Dispatch(uop.MicroOp{UsesBdq: true})
	assert.False(t, q.DequeueHead())

	q.Commit(idx)
	assert.False(t, q.DequeueHead(), "committed but not yet b_done")
}

func TestKillInvalidatesEntriesKilledByBranch(t *testing.T) {
	q := bdq.New(4, 4, hbt.AlwaysMatch)

	idx := q.Dispatch(uop.MicroOp{UsesBdq: true, BrMask: 1 << 2})
	q.Kill(idx, 1<<2)

	assert.False(t, q.Entry(idx).Valid)
}

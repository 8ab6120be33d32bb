package ldq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/ldq"
	"github.com/weontaekna/AOS-boom/uop"
)

func TestWakeupIdxSkipsUncacheableLoadsNotAtRobHead(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{RobIdx: 5}, 0, 0)
	e := q.Entry(idx)
	e.AddrValid = true
	e.AddrIsUncacheable = true

	_, ok := q.WakeupIdx(0)
	assert.False(t, ok, "an uncacheable load must wait until it is at the ROB head")

	_, ok = q.WakeupIdx(5)
	assert.True(t, ok, "once robHeadIdx matches and there is no store dependency, it may fire")
}

func TestWakeupIdxBlocksOnLiveStoreDependency(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{RobIdx: 5}, 1<<2, 0)
	e := q.Entry(idx)
	e.AddrValid = true
	e.AddrIsUncacheable = true

	_, ok := q.WakeupIdx(5)
	assert.False(t, ok, "a nonzero StDepMask must block an uncacheable load even at the ROB head")
}

func TestWakeupIdxSkipsBlockedAndVirtualAddrLoads(t *testing.T) {
	q := ldq.New(4)

	blockedIdx := q.Dispatch(uop.MicroOp{}, 0, 0)
	be := q.Entry(blockedIdx)
	be.AddrValid = true
	be.Blocked = true

	virtualIdx := q.Dispatch(uop.MicroOp{}, 0, 0)
	ve := q.Entry(virtualIdx)
	ve.AddrValid = true
	ve.AddrIsVirtual = true

	_, ok := q.WakeupIdx(0)
	assert.False(t, ok)
}

func TestRetryIdxFindsVirtualUnblockedLoad(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{}, 0, 0)
	e := q.Entry(idx)
	e.AddrValid = true
	e.AddrIsVirtual = true

	got, ok := q.RetryIdx()
	assert.True(t, ok)
	assert.Equal(t, idx, got)

	e.Blocked = true
	_, ok = q.RetryIdx()
	assert.False(t, ok, "a blocked load must not be offered for TLB retry")
}

func TestCommitPanicsOnEntryThatNeverExecutedOrSucceeded(t *testing.T) {
	q := ldq.New(4)
	q.Dispatch(uop.MicroOp{}, 0, 0)

	assert.Panics(t, func() { q.Commit() }, "committing a load that never executed or forwarded is a fatal design error")
}

func TestCommitClearsHeadEntryAndAdvances(t *testing.T) {
	q := ldq.New(4)
	idx := q.Dispatch(uop.MicroOp{}, 0, 0)
	e := q.Entry(idx)
	e.Executed = true
	e.Succeeded = true

	q.Commit()

	assert.False(t, q.Entry(idx).Valid)
	assert.Equal(t, 1, q.Head())
}

func TestKillInvalidatesLoadsKilledByBranch(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{BrMask: 1 << 3}, 0, 0)
	q.Kill(idx, 1<<3)

	assert.False(t, q.Entry(idx).Valid)
}

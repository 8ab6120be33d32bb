package stq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/stq"
	"github.com/weontaekna/AOS-boom/uop"
)

func TestRetryIdxFindsVirtualAddrStore(t *testing.T) {
	q := stq.New(4)

	idx := q.Dispatch(uop.MicroOp{})
	_, ok := q.RetryIdx()
	assert.False(t, ok, "an address-less store is not yet ready for TLB retry")

	e := q.Entry(idx)
	e.AddrValid = true
	e.AddrIsVirtual = true

	got, ok := q.RetryIdx()
	assert.True(t, ok)
	assert.Equal(t, idx, got)
}

func TestAdvanceCommitHeadStopsAtFirstUncommitted(t *testing.T) {
	q := stq.New(4)

	first := q.Dispatch(uop.MicroOp{})
	q.Dispatch(uop.MicroOp{})

	q.Commit(first)
	q.AdvanceCommitHead()

	assert.Equal(t, 1, q.CommitHead(), "the second entry is still uncommitted, so commitHead stops there")
}

func TestDequeueHeadRequiresCommittedAndSucceeded(t *testing.T) {
	q := stq.New(4)
	idx := q.Dispatch(uop.MicroOp{})

	assert.False(t, q.DequeueHead())

	q.Commit(idx)
	assert.False(t, q.DequeueHead(), "committed but not yet succeeded")

	q.Entry(idx).Succeeded = true
	assert.True(t, q.DequeueHead())
	assert.False(t, q.Entry(idx).Valid)
}

func TestKillInvalidatesUncommittedStoresKilledByBranch(t *testing.T) {
	q := stq.New(4)

	idx := q.Dispatch(uop.MicroOp{BrMask: 1 << 1})
	q.Kill(idx, 1<<1)

	assert.False(t, q.Entry(idx).Valid)
}

func TestKillPanicsOnCommittedStore(t *testing.T) {
	q := stq.New(4)

	idx := q.Dispatch(uop.MicroOp{BrMask: 1 << 1})
	q.Commit(idx)

	assert.Panics(t, func() { q.Kill(idx, 1<<1) }, "killing an already-committed store is a fatal invariant violation")
}

func TestRewindExecuteHeadOnlyMovesBackward(t *testing.T) {
	q := stq.New(4)
	q.Dispatch(uop.MicroOp{})
	q.Dispatch(uop.MicroOp{})
	q.Dispatch(uop.MicroOp{})

	q.AdvanceExecuteHead()
	q.AdvanceExecuteHead()
	assert.Equal(t, 2, q.ExecuteHead())

	q.RewindExecuteHead(0)
	assert.Equal(t, 0, q.ExecuteHead(), "a nack on an older slot rewinds executeHead")

	q.AdvanceExecuteHead()
	q.AdvanceExecuteHead()
	q.RewindExecuteHead(2)
	assert.Equal(t, 2, q.ExecuteHead(), "rewinding to the current slot itself is a no-op, not strictly older")
}

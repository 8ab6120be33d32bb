package lcam_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/ldq"
	"github.com/weontaekna/AOS-boom/lcam"
	"github.com/weontaekna/AOS-boom/stq"
	"github.com/weontaekna/AOS-boom/uop"
)

func TestByteMask(t *testing.T) {
	tests := []struct {
		name string
		addr uint64
		size uop.MemSize
		want uint64
	}{
		{name: "aligned byte", addr: 0x1000, size: uop.SizeByte, want: 0x01},
		{name: "aligned word", addr: 0x1000, size: uop.SizeWord, want: 0x0F},
		{name: "aligned double", addr: 0x1000, size: uop.SizeDouble, want: 0xFF},
		{name: "offset halfword", addr: 0x1002, size: uop.SizeHalf, want: 0x0C},
		{name: "offset word spans upper half", addr: 0x1004, size: uop.SizeWord, want: 0xF0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lcam.ByteMask(tt.addr, tt.size))
		})
	}
}

func TestDoubleWordAddr(t *testing.T) {
	assert.Equal(t, uint64(0x1000), lcam.DoubleWordAddr(0x1003))
	assert.Equal(t, uint64(0x1008), lcam.DoubleWordAddr(0x100F))
}

func TestStoreSearchFlagsOrderFailOnAliasingOlderLoad(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 1<<0, 0)
	e := q.Entry(idx)
	e.AddrValid = true
	e.Addr = 0x2000
	e.Succeeded = true

	res := lcam.StoreSearch(q, 0, 0x2000, uop.SizeWord)

	assert.Equal(t, []int{idx}, res.OrderFailLdqIdx)
	assert.True(t, e.OrderFail)
}

func TestStoreSearchIgnoresLoadNotDependentOnStore(t *testing.T) {
	q := ldq.New(4)

	idx := q.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 0, 0)
	e := q.Entry(idx)
	e.AddrValid = true
	e.Addr = 0x2000
	e.Succeeded = true

	res := lcam.StoreSearch(q, 0, 0x2000, uop.SizeWord)

	assert.Empty(t, res.OrderFailLdqIdx)
	assert.False(t, e.OrderFail)
}

func TestLoadSearchFindsFullForwardMatch(t *testing.T) {
	ldqQ := ldq.New(4)
	stqQ := stq.New(4)

	stIdx := stqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeDouble})
	se := stqQ.Entry(stIdx)
	se.AddrValid = true
	se.Addr = 0x3000

	ldIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 1<<uint(stIdx), stIdx)
	le := ldqQ.Entry(ldIdx)
	le.Addr = 0x3000

	res := lcam.LoadSearch(ldqQ, stqQ, ldIdx)

	assert.Equal(t, []int{stIdx}, res.ForwardMatchStqIdx)
	assert.Empty(t, res.AddrMatchStqIdx)
}

func TestLoadSearchFlagsOrderFailOnOlderObservedAliasingLoad(t *testing.T) {
	ldqQ := ldq.New(4)
	stqQ := stq.New(4)

	oldIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 0, 0)
	oe := ldqQ.Entry(oldIdx)
	oe.AddrValid = true
	oe.Addr = 0x4000
	oe.Observed = true
	oe.Executed = true
	oe.Succeeded = true

	selfIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 0, 0)
	se := ldqQ.Entry(selfIdx)
	se.AddrValid = true
	se.Addr = 0x4000
	se.Succeeded = true

	res := lcam.LoadSearch(ldqQ, stqQ, selfIdx)

	assert.Equal(t, []int{oldIdx}, res.OrderFailLdqIdx)
	assert.True(t, oe.OrderFail, "the older, already-observed-and-executed load is marked, not the firing load")
	assert.False(t, se.OrderFail)
}

func TestLoadSearchKillsYoungerUnexecutedAliasingLoad(t *testing.T) {
	ldqQ := ldq.New(4)
	stqQ := stq.New(4)

	selfIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 0, 0)
	se := ldqQ.Entry(selfIdx)
	se.AddrValid = true
	se.Addr = 0x5000

	youngIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeWord}, 0, 0)
	ye := ldqQ.Entry(youngIdx)
	ye.AddrValid = true
	ye.Addr = 0x5000
	ye.Executed = true
	ye.ExecuteIgnore = true

	res := lcam.LoadSearch(ldqQ, stqQ, selfIdx)

	assert.Equal(t, []int{youngIdx}, res.S1KillLdqIdx)
	assert.False(t, ye.Executed, "the younger load's in-flight request is killed, not the firing (older) load's")
}

func TestLoadSearchFindsPartialOverlapOnly(t *testing.T) {
	ldqQ := ldq.New(4)
	stqQ := stq.New(4)

	stIdx := stqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeByte})
	se := stqQ.Entry(stIdx)
	se.AddrValid = true
	se.Addr = 0x3000

	ldIdx := ldqQ.Dispatch(uop.MicroOp{MemSize: uop.SizeDouble}, 1<<uint(stIdx), stIdx)
	le := ldqQ.Entry(ldIdx)
	le.Addr = 0x3000

	res := lcam.LoadSearch(ldqQ, stqQ, ldIdx)

	assert.Empty(t, res.ForwardMatchStqIdx)
	assert.Equal(t, []int{stIdx}, res.AddrMatchStqIdx)
}

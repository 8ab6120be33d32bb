package iface

import "github.com/weontaekna/AOS-boom/uop"

// BrInfo carries a resolved branch's outcome: whether it mispredicted,
// and the saved queue tail indices to roll back to.
type BrInfo struct {
	Valid          bool
	Mispredict     bool
	MispredictMask uint64
	LdqTail        int
	StqTail        int
	McqTail        int
	BdqTail        int
}

// DispatchBundle is one cycle's worth of dispatched micro-ops, up to
// coreWidth wide.
type DispatchBundle struct {
	Uops []uop.MicroOp
}

// CommitBundle is one cycle's worth of retiring micro-ops, up to
// coreWidth wide. A retiring store names its STQ slot through StqIdx;
// loads retire from the LDQ head, and MCQ/BDQ slots are committed in
// their own program order.
type CommitBundle struct {
	Valids []bool
	Uops   []uop.MicroOp
}

// ExceptionKind names one of the error kinds the LSU can surface to the
// ROB.
type ExceptionKind int

// Exception kinds the LSU can raise against a committing instruction.
const (
	ExceptionNone ExceptionKind = iota
	ExceptionMisaligned
	ExceptionPageFault
	ExceptionAccessFault
	ExceptionMemOrdering
	ExceptionBoundsFailure
	ExceptionOccupancyFailure
)

// Lxcpt is the one-cycle-valid exception report the LSU sends the ROB,
// naming the oldest offending micro-op's ROB index.
type Lxcpt struct {
	Valid  bool
	RobIdx int
	Kind   ExceptionKind
}

// Signals bundles every sideband status bit the ROB reads from the LSU
// each cycle.
type Signals struct {
	LdqFull      bool
	StqFull      bool
	McqFull      bool
	BdqFull      bool
	ClrBusy      []bool
	ClrUnsafe    []bool
	SpecLdWakeup bool
	LdMiss       bool
	FenceiReady  bool
	Lxcpt        Lxcpt
}

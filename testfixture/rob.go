package testfixture

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/uop"
)

// ROB is a bare-bones reorder-buffer stand-in: it has no pipeline of its
// own, it is just a convenience for a test to build the DispatchBundle/
// CommitBundle/BrInfo values a real ROB would hand the LSU, since that
// interface is plain Go method calls rather than sim.Port messages.
type ROB struct {
	nextRobIdx int
}

// NewROB creates an ROB stand-in starting at ROB index 0.
func NewROB() *ROB {
	return &ROB{}
}

// Alloc assigns the next ROB index to u and returns the updated uop.
func (r *ROB) Alloc(u uop.MicroOp) uop.MicroOp {
	u.RobIdx = r.nextRobIdx
	r.nextRobIdx++

	return u
}

// Dispatch builds a DispatchBundle carrying uops.
func Dispatch(uops ...uop.MicroOp) iface.DispatchBundle {
	return iface.DispatchBundle{Uops: uops}
}

// Commit builds a CommitBundle where every uop retires.
func Commit(uops ...uop.MicroOp) iface.CommitBundle {
	valids := make([]bool, len(uops))
	for i := range valids {
		valids[i] = true
	}

	return iface.CommitBundle{Valids: valids, Uops: uops}
}

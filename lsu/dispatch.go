package lsu

import (
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/uop"
)

// dispatch allocates LDQ/STQ/MCQ/BDQ slots for each dispatched micro-op in
// program order, per §4.1. Exception-marked uops are dropped. A uop
// asserting both uses_ldq and uses_stq is a fatal design error.
func (c *Comp) dispatch(bundle iface.DispatchBundle) {
	for _, u := range bundle.Uops {
		if u.Exception {
			continue
		}

		if u.UsesLdq && u.UsesStq {
			panic("lsu: dispatch: uop sets both uses_ldq and uses_stq")
		}

		if u.UsesLdq {
			if c.Ldq.Full() {
				continue
			}

			u.LdqIdx = c.Ldq.Dispatch(u, c.nextLiveStoreMask, c.Stq.Tail())
		}

		if u.UsesStq {
			if c.Stq.Full() {
				continue
			}

			u.StqIdx = c.Stq.Dispatch(u)
			c.nextLiveStoreMask |= 1 << uint(u.StqIdx)
		}

		if isMemTouching(u) && !u.Exception {
			if !c.Mcq.Full() {
				u.McqIdx = c.Mcq.Dispatch(u)
			}
		}

		if u.UsesBdq && !c.Bdq.Full() {
			u.BdqIdx = c.Bdq.Dispatch(u)
		}

		if u.UsesReserve {
			c.lrscCount = lrscWindowCycles
		}
	}
}

// lrscWindowCycles is the number of cycles an LR/SC reservation stays
// armed before it expires unclaimed.
const lrscWindowCycles = 8

func isMemTouching(u uop.MicroOp) bool {
	if u.IsFence || u.IsFencei || u.IsSfence {
		return false
	}

	return u.UsesLdq || u.UsesStq
}

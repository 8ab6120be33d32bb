// Package lcam implements the Load-Compare-Address-Match engine: the
// associative search over the Load and Store Queues that enforces
// memory-ordering between speculative loads and older stores, and locates
// store-to-load forwarding candidates.
package lcam

import (
	"github.com/weontaekna/AOS-boom/ageenc"
	"github.com/weontaekna/AOS-boom/ldq"
	"github.com/weontaekna/AOS-boom/stq"
	"github.com/weontaekna/AOS-boom/uop"
)

// CacheBlockBytes is the granularity a release event is observed at.
const CacheBlockBytes = 64

// ByteMask returns the mask of bytes within an 8-byte-aligned double word
// that a size-`size` access at `addr` touches.
func ByteMask(addr uint64, size uop.MemSize) uint64 {
	offset := addr % 8
	width := size.Bytes()

	var mask uint64
	for i := uint64(0); i < width; i++ {
		mask |= 1 << (offset + i)
	}

	return mask
}

// DoubleWordAddr truncates addr to its containing 8-byte double word.
func DoubleWordAddr(addr uint64) uint64 {
	return addr &^ 7
}

// cacheBlockAddr truncates addr to its containing cache block.
func cacheBlockAddr(addr uint64) uint64 {
	return addr &^ (CacheBlockBytes - 1)
}

// masksOverlap reports whether two byte masks touch any common byte.
func masksOverlap(a, b uint64) bool {
	return a&b != 0
}

// isSubset reports whether every bit set in sub is also set in super.
func isSubset(sub, super uint64) bool {
	return sub&^super == 0
}

// Result collects every effect of one LCAM scan for a single fired
// load/store.
type Result struct {
	// OrderFailLdqIdx are LDQ entries that must raise order_fail.
	OrderFailLdqIdx []int
	// ExecuteIgnoreLdqIdx are LDQ entries whose in-flight response must be
	// dropped and retried.
	ExecuteIgnoreLdqIdx []int
	// S1KillLdqIdx are LDQ entries whose in-flight DC request must be
	// killed this cycle.
	S1KillLdqIdx []int
	// ForwardMatchStqIdx are STQ entries whose write fully covers the
	// load's bytes.
	ForwardMatchStqIdx []int
	// AddrMatchStqIdx are STQ entries that partially overlap the load
	// (forwarding blocked, DC request killed).
	AddrMatchStqIdx []int
	// ForwardFromIdx is the store selected by forwarding-age logic, and
	// MemForwardValid reports whether that store fully covers the load.
	ForwardFromIdx  int
	ForwardFromOK   bool
	MemForwardValid bool
}

// ReleaseSearch marks every valid LDQ entry whose address shares releaseAddr's
// cache block as observed, per do_release_search.
func ReleaseSearch(q *ldq.Queue, releaseAddr uint64) {
	block := cacheBlockAddr(releaseAddr)

	for i := 0; i < q.Len(); i++ {
		e := q.Entry(i)
		if e.Valid && e.AddrValid && cacheBlockAddr(e.Addr) == block {
			e.Observed = true
		}
	}
}

// StoreSearch runs do_st_search: for every LDQ entry that is younger than
// the firing store (per its st_dep_mask), has a translated address, and
// overlaps the store in double-word and byte-mask, either flags an order
// failure (if the load already has or is about to have a result) or asks
// the load to ignore its in-flight response and retry.
func StoreSearch(q *ldq.Queue, stqIdx int, stAddr uint64, stSize uop.MemSize) Result {
	var res Result

	stDW := DoubleWordAddr(stAddr)
	stMask := ByteMask(stAddr, stSize)

	for i := 0; i < q.Len(); i++ {
		e := q.Entry(i)
		if !e.Valid || !e.AddrValid || e.AddrIsVirtual {
			continue
		}

		if e.StDepMask&(1<<uint(stqIdx)) == 0 {
			continue
		}

		if DoubleWordAddr(e.Addr) != stDW {
			continue
		}

		loadMask := ByteMask(e.Addr, e.Uop.MemSize)
		if !masksOverlap(loadMask, stMask) {
			continue
		}

		forwardedFromThisStore := e.ForwardStdVal && e.ForwardStqIdx == stqIdx
		if forwardedFromThisStore {
			continue
		}

		if e.Succeeded {
			e.OrderFail = true
			res.OrderFailLdqIdx = append(res.OrderFailLdqIdx, i)
		} else {
			e.ExecuteIgnore = true
			res.ExecuteIgnoreLdqIdx = append(res.ExecuteIgnoreLdqIdx, i)
		}
	}

	return res
}

// LoadSearch runs do_ld_search for a firing load at index selfIdx: checks
// load-load ordering against every other valid LDQ entry, then finds
// store-to-load forwarding candidates among the STQ entries that are
// older than self (per self's st_dep_mask).
func LoadSearch(ldqQ *ldq.Queue, stqQ *stq.Queue, selfIdx int) Result {
	var res Result

	self := ldqQ.Entry(selfIdx)
	selfDW := DoubleWordAddr(self.Addr)
	selfMask := ByteMask(self.Addr, self.Uop.MemSize)

	for i := 0; i < ldqQ.Len(); i++ {
		if i == selfIdx {
			continue
		}

		other := ldqQ.Entry(i)
		if !other.Valid || !other.AddrValid || other.AddrIsVirtual || self.AddrIsVirtual {
			continue
		}

		if DoubleWordAddr(other.Addr) != selfDW {
			continue
		}

		if !masksOverlap(ByteMask(other.Addr, other.Uop.MemSize), selfMask) {
			continue
		}

		selfOlder := ageenc.IsOlder(selfIdx, i, ldqQ.Head(), ldqQ.Len())
		otherOlder := !selfOlder

		if otherOlder && other.Observed && other.Executed {
			if other.Succeeded {
				other.OrderFail = true
				res.OrderFailLdqIdx = append(res.OrderFailLdqIdx, i)
			} else {
				other.ExecuteIgnore = true
				res.ExecuteIgnoreLdqIdx = append(res.ExecuteIgnoreLdqIdx, i)
			}
		} else if selfOlder && (!other.Executed || other.ExecuteIgnore) {
			res.S1KillLdqIdx = append(res.S1KillLdqIdx, i)
			other.Executed = false
		}
	}

	for i := 0; i < stqQ.Len(); i++ {
		s := stqQ.Entry(i)
		if !s.Valid || !s.AddrValid || s.AddrIsVirtual {
			continue
		}

		if self.StDepMask&(1<<uint(i)) == 0 {
			continue
		}

		if DoubleWordAddr(s.Addr) != selfDW {
			continue
		}

		storeMask := ByteMask(s.Addr, s.Uop.MemSize)

		if s.Uop.IsFence || s.Uop.IsAMO {
			if masksOverlap(storeMask, selfMask) {
				res.AddrMatchStqIdx = append(res.AddrMatchStqIdx, i)
			}

			continue
		}

		if isSubset(selfMask, storeMask) {
			res.ForwardMatchStqIdx = append(res.ForwardMatchStqIdx, i)
		} else if masksOverlap(storeMask, selfMask) {
			res.AddrMatchStqIdx = append(res.AddrMatchStqIdx, i)
		}
	}

	return res
}

// Package hbt computes hash-based bounds table addresses and defines the
// pluggable predicates (bnd_check, occ_check) the MCQ and BDQ state
// machines consult when deciding whether a probed row matches.
package hbt

// PAC extracts the pointer authentication code from a virtual address: the
// tag bits at bit 45 and above.
func PAC(vaddr uint64) uint64 {
	return vaddr >> 45
}

// Addr computes the physical probe address of row `way` (0-indexed,
// 0..numWay-1) of the bounds table entry tagged by pac, bit-exact with the
// reference design: hbt_base_addr | (PAC << 2) | (way << 3).
func Addr(base uint64, pac uint64, way uint32) uint64 {
	return base | (pac << 2) | (uint64(way) << 3)
}

// CheckPredicate decides whether a probed descriptor matches a load's
// bounds entry. The reference hardware always returns true — one probe
// always suffices — but callers that want to model real hash collisions
// or descriptor mismatches can inject any predicate over the probe
// response, the address probed, and the way probed.
type CheckPredicate func(resp []byte, addr uint64, way uint32) bool

// AlwaysMatch is the reference design's bnd_check/occ_check predicate: the
// first probe always matches.
func AlwaysMatch(resp []byte, addr uint64, way uint32) bool {
	return true
}

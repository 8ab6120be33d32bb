// Package fwdage implements the Forwarding Age Logic: given the set of
// STQ indices the LCAM engine flagged as address-matching a load, and that
// load's youngest_stq_idx, pick the single youngest store that is still
// older than the load.
package fwdage

// Select returns the youngest STQ index in matches that is older than the
// load (i.e. appears before youngestStqIdx in the circular order starting
// at stqHead), applying the double-vector age-priority scan described in
// the design notes: candidates are walked from the slot nearest
// youngestStqIdx back toward stqHead, and the first (nearest) match wins.
func Select(matches []int, stqHead, youngestStqIdx, stqLen int) (idx int, ok bool) {
	if len(matches) == 0 {
		return 0, false
	}

	inWindow := make(map[int]bool, len(matches))
	for _, m := range matches {
		inWindow[m] = true
	}

	dist := func(i int) int {
		return (i - stqHead + stqLen) % stqLen
	}

	youngestDist := dist(youngestStqIdx)

	best := -1
	bestDist := -1

	for _, m := range matches {
		d := dist(m)
		if d >= youngestDist {
			continue
		}

		if d > bestDist {
			bestDist = d
			best = m
		}
	}

	if best == -1 {
		return 0, false
	}

	return best, true
}

// IsForwardMatch reports whether the selected forwarding store idx is also
// present in the forward-match set (its write fully covers the load's
// bytes), which gates mem_forward_valid.
func IsForwardMatch(idx int, forwardMatches []int) bool {
	for _, m := range forwardMatches {
		if m == idx {
			return true
		}
	}

	return false
}

// Package ageenc implements the circular age-priority encoder used
// throughout the LSU: given a queue's head pointer and depth, find the
// oldest slot satisfying a predicate. Hardware realizes this as a
// double-length bit-vector priority scan; a plain circular loop is the
// direct, idiomatic Go translation of the same search.
package ageenc

// Oldest scans n slots starting at head, wrapping around modulo n, and
// returns the index of the first one for which pred holds. ok is false if
// no slot satisfies pred.
func Oldest(head int, n int, pred func(idx int) bool) (idx int, ok bool) {
	if n <= 0 {
		return 0, false
	}

	for i := 0; i < n; i++ {
		slot := (head + i) % n
		if pred(slot) {
			return slot, true
		}
	}

	return 0, false
}

// Youngest scans n slots walking backward from the slot just before head,
// wrapping modulo n and ending at head, and returns the index of the first
// one for which pred holds.
func Youngest(head int, n int, pred func(idx int) bool) (idx int, ok bool) {
	if n <= 0 {
		return 0, false
	}

	for i := n - 1; i >= 0; i-- {
		slot := (head + i) % n
		if pred(slot) {
			return slot, true
		}
	}

	return 0, false
}

// IsOlder reports whether slot a is older than slot b, measuring each by
// its circular distance from head in a queue of n slots. Used wherever
// two indices from the same circular space need an age comparison rather
// than a scan, e.g. deciding which of two outstanding exceptions is the
// oldest offender.
func IsOlder(a, b, head, n int) bool {
	distA := (a - head + n) % n
	distB := (b - head + n) % n

	return distA < distB
}

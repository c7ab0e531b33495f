package models

// Assignment maps slot index to the identity held in that slot. It is a
// permutation of 0..len-1, shuffled fresh for each trial and read-only for
// the trial's lifetime. Strategies must not mutate it.
type Assignment []int

// At returns the identity held in the given slot.
func (a Assignment) At(slot int) int { return a[slot] }

// Len returns the number of slots.
func (a Assignment) Len() int { return len(a) }

// CycleLen returns the length of the permutation cycle containing start.
func (a Assignment) CycleLen(start int) int {
	n := 0
	slot := start
	for {
		slot = a[slot]
		n++
		if slot == start {
			return n
		}
	}
}

// LongestCycle returns the length of the longest cycle in the permutation.
func (a Assignment) LongestCycle() int {
	seen := make([]bool, len(a))
	longest := 0
	for start := range a {
		if seen[start] {
			continue
		}
		n := 0
		for slot := start; !seen[slot]; slot = a[slot] {
			seen[slot] = true
			n++
		}
		if n > longest {
			longest = n
		}
	}
	return longest
}

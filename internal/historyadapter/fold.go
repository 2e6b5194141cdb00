package historyadapter

import "fmt"

// Fold collapses the unfolded merge at row i, removing the contiguous
// suffix of rows nested under it (spec.md §4.4.4). It returns the number
// of rows removed.
func (a *Adapter) Fold(i int) int {
	if i < 0 || i >= len(a.history) {
		panic(fmt.Sprintf("historyadapter: fold index %d out of range (loaded=%d)", i, len(a.history)))
	}
	merge := a.history[i]
	if merge.Folded || !merge.IsMerge() {
		panic(fmt.Sprintf("historyadapter: fold precondition violated at index %d: not an unfolded merge", i))
	}

	j := i + 1
	for j < len(a.history) && a.history[j].Level > merge.Level {
		j++
	}
	removed := j - (i + 1)

	a.history = append(a.history[:i+1], a.history[j:]...)
	merge.Folded = true
	a.length -= removed
	return removed
}

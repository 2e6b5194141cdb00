package historyadapter

import (
	"context"
	"fmt"
)

// Address locates a commit in the hierarchical tree the way the search
// engine does (spec.md §4.4.6): address[0] is the index of a top-level
// entry counting only top-level entries, address[1] the index of an entry
// inside that merge counting only entries at that merge's inner level, and
// so on.
type Address []int

// ResultToIndex translates an address into a current row index, unfolding
// any merge on the path that is still folded (spec.md §4.4.6). On return
// every ancestor of the target is unfolded and the row index points at the
// final entry.
func (a *Adapter) ResultToIndex(ctx context.Context, addr Address) (int, error) {
	if len(addr) == 0 {
		panic("historyadapter: result_to_index: empty address")
	}

	cursor := 0
	level := uint8(0)
	for depth, want := range addr {
		idx, err := a.walkToNth(ctx, cursor, level, want, depth == 0)
		if err != nil {
			return 0, err
		}
		cursor = idx

		if depth < len(addr)-1 {
			entry, ok := a.Entry(cursor)
			if !ok {
				return 0, fmt.Errorf("historyadapter: result_to_index: address %v out of range", addr)
			}
			if entry.Folded {
				if _, err := a.Unfold(ctx, cursor); err != nil {
					return 0, fmt.Errorf("historyadapter: result_to_index: %w", err)
				}
			}
			level++
			cursor++
		}
	}
	return cursor, nil
}

// walkToNth scans forward from start, counting only entries at level,
// until it reaches the want-th such entry, loading more top-level data via
// FillUp along the way when allowFillUp is set (only true for the
// outermost, top-level address component).
func (a *Adapter) walkToNth(ctx context.Context, start int, level uint8, want int, allowFillUp bool) (int, error) {
	idx := start
	count := -1
	for {
		if idx >= len(a.history) {
			if !allowFillUp {
				return 0, fmt.Errorf("historyadapter: result_to_index: ran out of entries at level %d", level)
			}
			progressed, err := a.FillUp(ctx, fillPageSize)
			if err != nil {
				return 0, fmt.Errorf("historyadapter: result_to_index: %w", err)
			}
			if !progressed {
				return 0, fmt.Errorf("historyadapter: result_to_index: ran out of entries at level %d", level)
			}
			continue
		}
		if a.history[idx].Level == level {
			count++
			if count == want {
				return idx, nil
			}
		}
		idx++
	}
}

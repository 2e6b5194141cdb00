package historyadapter

import (
	"context"
	"fmt"
)

// FindCommitID implements the "follow commit link" navigation from spec.md
// §8 scenario 4: locate the first row in the adapter whose commit id matches
// id, unfolding merges along the way and topping up loaded data as needed.
// Commit-link rows themselves are skipped even when their id matches, since
// the link exists to point *at* that row, not to be mistaken for it
// (original_source/src/history.rs's search_link_target: "if e.is_commit_link()
// { continue; }").
func (a *Adapter) FindCommitID(ctx context.Context, id string) (int, error) {
	i := 0
	for {
		if i >= len(a.history) {
			progressed, err := a.FillUp(ctx, fillPageSize)
			if err != nil {
				return 0, fmt.Errorf("historyadapter: find_commit_id: %w", err)
			}
			if !progressed {
				return 0, fmt.Errorf("historyadapter: find_commit_id: %q not found", id)
			}
			continue
		}

		e := a.history[i]
		if e.Commit.ID == id && !e.IsCommitLink {
			return i, nil
		}
		if e.Foldable() && e.Folded {
			if _, err := a.Unfold(ctx, i); err != nil {
				return 0, fmt.Errorf("historyadapter: find_commit_id: %w", err)
			}
			continue
		}
		i++
	}
}

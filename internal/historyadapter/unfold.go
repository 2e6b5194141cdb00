package historyadapter

import (
	"context"
	"fmt"

	"github.com/kalkin-go/glv/internal/commit"
	"github.com/kalkin-go/glv/internal/historyentry"
)

// Unfold expands the merge at row i, inserting its inner branch
// immediately after it (spec.md §4.4.3). It returns the number of rows
// inserted. Preconditions (checked as programmer-error assertions per
// spec.md §7): history[i] exists, is folded, and is a merge.
func (a *Adapter) Unfold(ctx context.Context, i int) (int, error) {
	if i < 0 || i >= len(a.history) {
		panic(fmt.Sprintf("historyadapter: unfold index %d out of range (loaded=%d)", i, len(a.history)))
	}
	merge := a.history[i]
	if !merge.Folded || !merge.IsMerge() {
		panic(fmt.Sprintf("historyadapter: unfold precondition violated at index %d: not a folded merge", i))
	}

	bellow := merge.Commit.Bellow()
	firstChild := merge.Commit.Children()[0]

	base, err := a.driver.MergeBase(ctx, bellow, firstChild)
	if err != nil {
		return 0, fmt.Errorf("historyadapter: unfold: merge-base: %w", err)
	}

	var inner []commit.Commit
	switch {
	case base == firstChild:
		c, err := a.driver.ResolveCommit(ctx, firstChild)
		if err != nil {
			return 0, fmt.Errorf("historyadapter: unfold: resolve %s: %w", firstChild, err)
		}
		inner = []commit.Commit{c}
	case base != "":
		inner, err = a.fetchRange(ctx, base+".."+firstChild)
		if err != nil {
			return 0, fmt.Errorf("historyadapter: unfold: batch: %w", err)
		}
	default:
		inner, err = a.fetchRange(ctx, firstChild)
		if err != nil {
			return 0, fmt.Errorf("historyadapter: unfold: batch: %w", err)
		}
	}

	level := merge.Level + 1
	above := merge
	inserted := make([]*historyentry.Entry, 0, len(inner)+1)
	for _, c := range inner {
		e := a.buildEntry(c, level, merge.URL, above)
		inserted = append(inserted, e)
		above = e
	}

	// Commit link: the inner branch's true predecessor disagrees with the
	// merge's own first-parent predecessor, so a synthetic link row closes
	// the gap (spec.md §4.4.3, glossary "Commit link").
	if last := above; last != merge && last.Commit.Bellow() != "" && last.Commit.Bellow() != bellow {
		linkCommit, err := a.driver.ResolveCommit(ctx, last.Commit.Bellow())
		if err != nil {
			return 0, fmt.Errorf("historyadapter: unfold: resolve commit link %s: %w", last.Commit.Bellow(), err)
		}
		link := &historyentry.Entry{
			Commit:       linkCommit,
			Level:        level,
			IsCommitLink: true,
			URL:          merge.URL,
		}
		a.seedForkPoint(link, last)
		inserted = append(inserted, link)
	}

	newHistory := make([]*historyentry.Entry, 0, len(a.history)+len(inserted))
	newHistory = append(newHistory, a.history[:i+1]...)
	newHistory = append(newHistory, inserted...)
	newHistory = append(newHistory, a.history[i+1:]...)
	a.history = newHistory

	merge.Folded = false
	a.length += len(inserted)
	return len(inserted), nil
}

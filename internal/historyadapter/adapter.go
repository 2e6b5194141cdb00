// Package historyadapter implements the virtualised, lazily filled,
// hierarchically foldable data model described in spec.md §3/§4.4: it maps
// display-row indices to commits, dispatches enrichment requests to the
// three background workers, and maintains the fold/unfold invariants
// I1-I6 under insertion and removal.
package historyadapter

import (
	"context"
	"fmt"

	"github.com/kalkin-go/glv/internal/commit"
	"github.com/kalkin-go/glv/internal/historyentry"
	"github.com/kalkin-go/glv/internal/subtrees"
	"github.com/kalkin-go/glv/internal/vcsdriver"
	"github.com/kalkin-go/glv/internal/workers"
)

// fillPageSize is how many top-level commits a single fill_up fetches.
const fillPageSize = 64

// batchPageSize bounds a single Batch call when an unbounded inner range
// has to be paged to exhaustion (spec.md §4.4.3 "until exhausted").
const batchPageSize = 256

// Adapter is the history adapter (spec.md §4.4). It owns every Entry it
// has created; workers never hold a reference to one, only its commit id.
type Adapter struct {
	driver  vcsdriver.Driver
	rng     string
	paths   []string
	modules subtrees.Config
	repoURL string

	forkPoint *workers.ForkPointWorker
	subtree   *workers.SubtreeWorker
	pr        *workers.PRWorker

	history []*historyentry.Entry
	length  int
}

// New constructs an adapter for the given revision range and optional path
// filters (spec.md §4.4.1). It queries the commit count up front and starts
// the three background workers; history itself starts empty.
func New(ctx context.Context, driver vcsdriver.Driver, rng string, paths []string, modules subtrees.Config) (*Adapter, error) {
	count, err := driver.Count(ctx, rng, paths)
	if err != nil {
		return nil, fmt.Errorf("historyadapter: count: %w", err)
	}
	repoURL, err := driver.DefaultRemoteURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("historyadapter: default remote: %w", err)
	}

	fp := workers.NewForkPointWorker(driver)
	st := workers.NewSubtreeWorker(driver, modules)
	pr := workers.NewPRWorker()
	fp.Start(ctx)
	st.Start(ctx)
	pr.Start(ctx)

	return &Adapter{
		driver:    driver,
		rng:       rng,
		paths:     paths,
		modules:   modules,
		repoURL:   repoURL,
		forkPoint: fp,
		subtree:   st,
		pr:        pr,
		length:    count,
	}, nil
}

// Len returns the number of rows currently visible to the user (spec.md §3
// I3): the top-level count plus every currently unfolded inner commit.
func (a *Adapter) Len() int { return a.length }

// Loaded returns how many entries have actually been fetched and stored so
// far; it is always ≤ Len.
func (a *Adapter) Loaded() int { return len(a.history) }

// RefreshCount re-queries the top-level count from the driver, for callers
// that learned (e.g. via vcsdriver.Watcher) that a ref may have moved since
// New. Already-loaded rows are left untouched: a ref move can make them
// stale, but re-deriving the whole tree on every watch event would defeat
// the point of lazily paging it in the first place, so this only keeps the
// row count (and therefore Len-driven paging) honest. Rows inside currently
// unfolded merges stay counted on top of the new top-level count.
func (a *Adapter) RefreshCount(ctx context.Context) error {
	count, err := a.driver.Count(ctx, a.rng, a.paths)
	if err != nil {
		return fmt.Errorf("historyadapter: refresh count: %w", err)
	}
	inner := 0
	for _, e := range a.history {
		if e.Level > 0 {
			inner++
		}
	}
	a.length = count + inner
	return nil
}

// Entry returns the entry at row index i, or false if it hasn't been
// loaded yet (the caller should trigger FillUp/Unfold first).
func (a *Adapter) Entry(i int) (*historyentry.Entry, bool) {
	if i < 0 || i >= len(a.history) {
		return nil, false
	}
	return a.history[i], true
}

func (a *Adapter) findByID(id string) *historyentry.Entry {
	for _, e := range a.history {
		if e.Commit.ID == id {
			return e
		}
	}
	return nil
}

// fetchRange pages through driver.Batch until an empty batch is returned,
// implementing the unbounded "all ancestors" range forms from spec.md
// §4.4.3 on top of a Driver whose Batch call is necessarily bounded.
func (a *Adapter) fetchRange(ctx context.Context, rng string) ([]commit.Commit, error) {
	var all []commit.Commit
	skip := 0
	for {
		page, err := a.driver.Batch(ctx, rng, nil, skip, batchPageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
		skip += len(page)
	}
}

// buildEntry constructs a fully classified entry for commit c at the given
// level and inherited URL, dispatching subtree/fork-point/PR requests
// exactly as spec.md §4.4.2 describes. above is the entry immediately
// preceding c in display order (nil at the very top of the list).
func (a *Adapter) buildEntry(c commit.Commit, level uint8, url string, above *historyentry.Entry) *historyentry.Entry {
	e := &historyentry.Entry{
		Commit: c,
		Level:  level,
		URL:    url,
	}
	if c.IsMerge() {
		e.Folded = true
	}
	_, e.SubjectModule = historyentry.SplitSubject(c.Subject)
	e.SubtreeOp = historyentry.ClassifySubtreeOperation(c.Subject)
	e.SpecialOp = historyentry.ClassifySpecial(c.Subject)

	if len(a.modules) > 0 {
		a.subtree.Send(workers.SubtreeRequest{OID: c.ID, Bellow: c.Bellow()})
	}

	a.seedForkPoint(e, above)

	if e.SpecialOp.IsPullRequest && url != "" {
		a.pr.Send(workers.PRRequest{OID: c.ID, URL: url, PRID: e.SpecialOp.PRID})
	}
	return e
}

// seedForkPoint implements spec.md §4.4.2 step 2 / §4.3: a fork-point probe
// is only dispatched when the entry immediately above is a merge whose
// first merged-in child differs from this commit; otherwise the answer is
// known without asking (original_source/src/actors/fork_point.rs's
// short-circuit).
func (a *Adapter) seedForkPoint(e *historyentry.Entry, above *historyentry.Entry) {
	if above != nil && above.IsMerge() {
		children := above.Commit.Children()
		if len(children) > 0 && children[0] != e.Commit.ID {
			e.ForkPoint = historyentry.Pending()
			a.forkPoint.Send(workers.ForkPointRequest{
				OID:    e.Commit.ID,
				First:  e.Commit.ID,
				Second: children[0],
			})
			return
		}
	}
	e.ForkPoint = historyentry.Done(false)
}

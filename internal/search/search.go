// Package search implements the recursive, cancellable background search
// engine (spec.md §4.6): it walks the same hierarchical history the
// adapter exposes, including the interiors of currently folded merges,
// and streams progress and hit addresses back to the caller.
package search

import (
	"context"
	"strings"

	"github.com/kalkin-go/glv/internal/commit"
	"github.com/kalkin-go/glv/internal/historyadapter"
	"github.com/kalkin-go/glv/internal/historyentry"
	"github.com/kalkin-go/glv/internal/subtrees"
	"github.com/kalkin-go/glv/internal/vcsdriver"
)

// Direction is the direction a needle search proceeds in.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// ProgressKind distinguishes the three events Search emits.
type ProgressKind int

const (
	Found ProgressKind = iota
	Searched
	Finished
)

// Progress is one event sent on a search's channel.
type Progress struct {
	Kind    ProgressKind
	Address historyadapter.Address // valid when Kind == Found
	Seen    int                    // valid when Kind == Searched
}

// searchEvery is how often a Searched progress event fires (spec.md
// §4.6 step 3: "approximately every 100 commits examined").
const searchEvery = 100

// fetchPageSize bounds a single Batch call when the searcher pages a
// range to exhaustion.
const fetchPageSize = 256

// Range is the minimal read-only view of commit history the searcher
// needs: the top-level range/paths the adapter itself was built with, plus
// access to the same VCS driver for descending into merges. Decoupled
// from *historyadapter.Adapter so the searcher never mutates adapter
// state directly — it only ever produces addresses for the caller to feed
// back through Adapter.ResultToIndex.
type Range struct {
	Driver  vcsdriver.Driver
	Rng     string
	Paths   []string
	Modules subtrees.Config
}

// Search spawns one background goroutine that walks the commits in r
// starting at position start, in the given direction, looking for needle
// as a case-insensitive substring of any searchable field (spec.md §4.6
// step 3, §8 P7). It returns a receive-only channel of Progress events;
// the caller cancels by cancelling ctx — the next blocked send inside
// Search observes the cancellation and returns, after which the channel may
// be abandoned (spec.md §5 "Cancellation").
func Search(ctx context.Context, r Range, needle string, start int, dir Direction) <-chan Progress {
	out := make(chan Progress)
	go func() {
		defer close(out)
		s := &searcher{ctx: ctx, r: r, needle: strings.ToLower(needle), out: out}
		if !s.run(start, dir) {
			return
		}
		s.emit(Progress{Kind: Finished})
	}()
	return out
}

type searcher struct {
	ctx    context.Context
	r      Range
	needle string
	out    chan<- Progress
	seen   int
}

// emit sends a progress event, reporting whether the channel is still
// connected. A false return means ctx was cancelled (search cancelled)
// and the caller must abort the traversal immediately.
func (s *searcher) emit(p Progress) bool {
	select {
	case s.out <- p:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *searcher) run(start int, dir Direction) bool {
	top, err := fetchRange(s.ctx, s.r.Driver, s.r.Rng, s.r.Paths)
	if err != nil {
		return true // nothing found, but not an error the caller surfaces (search produces no errors, spec.md §7)
	}

	order := traversalOrder(len(top), start, dir)
	for _, idx := range order {
		if !s.visit(top[idx], historyadapter.Address{idx}) {
			return false
		}
	}
	return true
}

// visit checks one commit against the needle, recurses into it if it's a
// merge, and periodically emits a Searched progress event. It returns
// false if the progress channel has been disconnected.
func (s *searcher) visit(c commit.Commit, addr historyadapter.Address) bool {
	if s.matches(c) {
		if !s.emit(Progress{Kind: Found, Address: append(historyadapter.Address{}, addr...)}) {
			return false
		}
	}

	s.seen++
	if s.seen%searchEvery == 0 {
		if !s.emit(Progress{Kind: Searched, Seen: s.seen}) {
			return false
		}
	}

	if !c.IsMerge() {
		return true
	}
	return s.recurseMerge(c, addr)
}

// recurseMerge descends into a merge's inner branch exactly the way
// historyadapter.Unfold computes it, recursing with start=0 and extending
// the address path (spec.md §4.6 step 3).
func (s *searcher) recurseMerge(c commit.Commit, addr historyadapter.Address) bool {
	bellow := c.Bellow()
	children := c.Children()
	if len(children) == 0 {
		return true
	}
	firstChild := children[0]

	base, err := s.r.Driver.MergeBase(s.ctx, bellow, firstChild)
	if err != nil {
		return true
	}

	var inner []commit.Commit
	switch {
	case base == firstChild:
		ic, err := s.r.Driver.ResolveCommit(s.ctx, firstChild)
		if err != nil {
			return true
		}
		inner = []commit.Commit{ic}
	case base != "":
		inner, err = fetchRange(s.ctx, s.r.Driver, base+".."+firstChild, nil)
	default:
		inner, err = fetchRange(s.ctx, s.r.Driver, firstChild, nil)
	}
	if err != nil {
		return true
	}

	for i, ic := range inner {
		childAddr := append(append(historyadapter.Address{}, addr...), i)
		if !s.visit(ic, childAddr) {
			return false
		}
	}
	return true
}

// traversalOrder builds the wrap-around sequence from spec.md §4.6 step 2:
// [start, start+1, ..., n-1, 0, 1, ..., start-1], reversed for Backward.
func traversalOrder(n, start int, dir Direction) []int {
	if n == 0 {
		return nil
	}
	start = ((start % n) + n) % n
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, (start+i)%n)
	}
	if dir == Backward {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

// matches implements spec.md §4.6 step 3's field list, case-insensitively
// (§9 Open Question b): short id, full id, author/committer name and
// email, rendered subject, every reference name, and every subtree-module
// id the commit touches.
func (s *searcher) matches(c commit.Commit) bool {
	renderedSubject, _ := historyentry.SplitSubject(c.Subject)
	fields := []string{
		c.ShortID, c.ID,
		c.Author.Name, c.Author.Email,
		c.Committer.Name, c.Committer.Email,
		renderedSubject,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), s.needle) {
			return true
		}
	}
	for _, ref := range c.Refs {
		if strings.Contains(strings.ToLower(ref.Name), s.needle) {
			return true
		}
	}
	if len(s.r.Modules) > 0 {
		paths, err := s.r.Driver.ChangedPaths(s.ctx, c.Bellow(), c.ID)
		if err == nil {
			for _, id := range s.r.Modules.Classify(paths) {
				if strings.Contains(strings.ToLower(id), s.needle) {
					return true
				}
			}
		}
	}
	return false
}

func fetchRange(ctx context.Context, driver vcsdriver.Driver, rng string, paths []string) ([]commit.Commit, error) {
	var all []commit.Commit
	skip := 0
	for {
		page, err := driver.Batch(ctx, rng, paths, skip, fetchPageSize)
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

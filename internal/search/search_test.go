package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kalkin-go/glv/internal/commit"
)

type fakeDriver struct {
	ranges     map[string][]commit.Commit
	commits    map[string]commit.Commit
	mergeBases map[[2]string]string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		ranges:     map[string][]commit.Commit{},
		commits:    map[string]commit.Commit{},
		mergeBases: map[[2]string]string{},
	}
}

func (d *fakeDriver) add(rng string, commits ...commit.Commit) {
	d.ranges[rng] = append(d.ranges[rng], commits...)
	for _, c := range commits {
		d.commits[c.ID] = c
	}
}

func (d *fakeDriver) Count(ctx context.Context, rng string, paths []string) (int, error) {
	return len(d.ranges[rng]), nil
}

func (d *fakeDriver) Batch(ctx context.Context, rng string, paths []string, skip, max int) ([]commit.Commit, error) {
	all := d.ranges[rng]
	if skip >= len(all) {
		return nil, nil
	}
	end := skip + max
	if end > len(all) {
		end = len(all)
	}
	return append([]commit.Commit{}, all[skip:end]...), nil
}

func (d *fakeDriver) ResolveCommit(ctx context.Context, id string) (commit.Commit, error) {
	c, ok := d.commits[id]
	if !ok {
		return commit.Commit{}, fmt.Errorf("unknown commit %q", id)
	}
	return c, nil
}

func (d *fakeDriver) MergeBase(ctx context.Context, a, b string) (string, error) {
	return d.mergeBases[[2]string{a, b}], nil
}

func (d *fakeDriver) IsAncestor(ctx context.Context, first, second string) (bool, error) {
	return false, nil
}

func (d *fakeDriver) Diff(ctx context.Context, bellow, id string) ([]byte, error) { return nil, nil }

func (d *fakeDriver) ChangedPaths(ctx context.Context, bellow, id string) ([]string, error) {
	return nil, nil
}

func (d *fakeDriver) DefaultRemoteURL(ctx context.Context) (string, error) { return "", nil }

func mk(id, subject string, parents ...string) commit.Commit {
	return commit.Commit{ID: id, ShortID: id, Parents: parents, Subject: subject}
}

func drain(t *testing.T, ch <-chan Progress, timeout time.Duration) []Progress {
	t.Helper()
	var events []Progress
	deadline := time.After(timeout)
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, p)
		case <-deadline:
			t.Fatal("timed out waiting for search to finish")
		}
	}
}

func TestSearch_FindsTopLevelMatch(t *testing.T) {
	driver := newFakeDriver()
	driver.add("top",
		mk("c1", "fix: nothing here"),
		mk("c2", "feat: add the magic widget"),
		mk("c3", "chore: cleanup"),
	)

	ch := Search(context.Background(), Range{Driver: driver, Rng: "top"}, "magic", 0, Forward)
	events := drain(t, ch, time.Second)

	found := false
	for _, e := range events {
		if e.Kind == Found && len(e.Address) == 1 && e.Address[0] == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Found at address [1], got %+v", events)
	}
	if events[len(events)-1].Kind != Finished {
		t.Fatalf("last event = %+v, want Finished", events[len(events)-1])
	}
}

// TestSearch_FindsInsideFoldedMerge covers spec.md §8 scenario 6: a search
// recurses into a merge's interior even though the adapter currently shows
// it folded (the searcher never consults fold state; it always recurses).
func TestSearch_FindsInsideFoldedMerge(t *testing.T) {
	driver := newFakeDriver()
	driver.add("top", mk("m", "Merge branch 'feature'", "root", "tip"))
	driver.add("top", mk("root", "root commit"))
	driver.add("root..tip", mk("tip", "feat: add the magic touch"))
	driver.mergeBases[[2]string{"root", "tip"}] = "root"

	ch := Search(context.Background(), Range{Driver: driver, Rng: "top"}, "magic", 0, Forward)
	events := drain(t, ch, time.Second)

	var hit *Progress
	for i := range events {
		if events[i].Kind == Found {
			hit = &events[i]
		}
	}
	if hit == nil {
		t.Fatalf("expected a Found event, got %+v", events)
	}
	if len(hit.Address) != 2 || hit.Address[0] != 0 || hit.Address[1] != 0 {
		t.Fatalf("Found address = %v, want [0 0]", hit.Address)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	driver := newFakeDriver()
	driver.add("top", mk("c1", "fix: nothing here"))

	ch := Search(context.Background(), Range{Driver: driver, Rng: "top"}, "absent", 0, Forward)
	events := drain(t, ch, time.Second)
	for _, e := range events {
		if e.Kind == Found {
			t.Fatalf("unexpected Found event: %+v", e)
		}
	}
	if len(events) == 0 || events[len(events)-1].Kind != Finished {
		t.Fatalf("expected a trailing Finished event, got %+v", events)
	}
}

func TestTraversalOrder(t *testing.T) {
	got := traversalOrder(5, 2, Forward)
	want := []int{2, 3, 4, 0, 1}
	if !equalInts(got, want) {
		t.Fatalf("traversalOrder forward = %v, want %v", got, want)
	}

	got = traversalOrder(5, 2, Backward)
	want = []int{1, 0, 4, 3, 2}
	if !equalInts(got, want) {
		t.Fatalf("traversalOrder backward = %v, want %v", got, want)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestSearch_CancellationStopsTraversal covers spec.md §8 P8: cancelling a
// search (here: the context, standing in for "dropping the receiver")
// causes the search task to exit promptly instead of running to
// completion.
func TestSearch_CancellationStopsTraversal(t *testing.T) {
	driver := newFakeDriver()
	var commits []commit.Commit
	for i := 0; i < 1000; i++ {
		commits = append(commits, mk(fmt.Sprintf("c%d", i), "irrelevant"))
	}
	driver.add("top", commits...)

	ctx, cancel := context.WithCancel(context.Background())
	ch := Search(ctx, Range{Driver: driver, Rng: "top"}, "absent", 0, Forward)

	// Consume nothing; cancel immediately and make sure the goroutine
	// exits instead of blocking forever on a full send.
	cancel()
	select {
	case <-ch:
	case <-time.After(time.Second):
	}
	// The channel must eventually close even though nothing drained it.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("search goroutine never exited after cancellation")
		}
	}
}

package historyadapter

import (
	"context"
	"fmt"

	"github.com/kalkin-go/glv/internal/commit"
)

// fakeDriver is a minimal, deterministic stand-in for vcsdriver.Driver.
// Ranges are keyed by the exact range string the adapter constructs
// ("base..tip", a bare tip, or the adapter's configured top-level range)
// rather than implementing real git range semantics.
type fakeDriver struct {
	ranges       map[string][]commit.Commit
	commits      map[string]commit.Commit
	mergeBases   map[[2]string]string
	ancestors    map[[2]string]bool
	changedPaths map[string][]string
	remoteURL    string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		ranges:       map[string][]commit.Commit{},
		commits:      map[string]commit.Commit{},
		mergeBases:   map[[2]string]string{},
		ancestors:    map[[2]string]bool{},
		changedPaths: map[string][]string{},
	}
}

func (d *fakeDriver) addCommits(rng string, commits ...commit.Commit) {
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
		return commit.Commit{}, fmt.Errorf("fakeDriver: unknown commit %q", id)
	}
	return c, nil
}

func (d *fakeDriver) MergeBase(ctx context.Context, a, b string) (string, error) {
	return d.mergeBases[[2]string{a, b}], nil
}

func (d *fakeDriver) IsAncestor(ctx context.Context, first, second string) (bool, error) {
	return d.ancestors[[2]string{first, second}], nil
}

func (d *fakeDriver) Diff(ctx context.Context, bellow, id string) ([]byte, error) {
	return nil, nil
}

func (d *fakeDriver) ChangedPaths(ctx context.Context, bellow, id string) ([]string, error) {
	return d.changedPaths[id], nil
}

func (d *fakeDriver) DefaultRemoteURL(ctx context.Context) (string, error) {
	return d.remoteURL, nil
}

func mk(id string, parents ...string) commit.Commit {
	return commit.Commit{
		ID:      id,
		ShortID: id[:min(len(id), 7)],
		Parents: parents,
		Subject: "subject " + id,
	}
}

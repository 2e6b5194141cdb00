package workers

import (
	"context"
	"errors"

	"github.com/kalkin-go/glv/internal/commit"
)

// fakeDriver is a minimal vcsdriver.Driver stand-in for worker tests.
type fakeDriver struct {
	ancestors    map[[2]string]bool
	changedPaths map[string][]string
	err          error
}

func (f *fakeDriver) Count(ctx context.Context, rng string, paths []string) (int, error) { return 0, nil }
func (f *fakeDriver) Batch(ctx context.Context, rng string, paths []string, skip, max int) ([]commit.Commit, error) {
	return nil, nil
}
func (f *fakeDriver) ResolveCommit(ctx context.Context, id string) (commit.Commit, error) {
	return commit.Commit{}, nil
}
func (f *fakeDriver) MergeBase(ctx context.Context, a, b string) (string, error) { return "", nil }

func (f *fakeDriver) IsAncestor(ctx context.Context, first, second string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ancestors[[2]string{first, second}], nil
}

func (f *fakeDriver) Diff(ctx context.Context, bellow, id string) ([]byte, error) { return nil, nil }

func (f *fakeDriver) ChangedPaths(ctx context.Context, bellow, id string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.changedPaths[id], nil
}

func (f *fakeDriver) DefaultRemoteURL(ctx context.Context) (string, error) { return "", nil }

var errFake = errors.New("fake driver error")

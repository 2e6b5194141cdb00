package diffview

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/kalkin-go/glv/internal/commit"
)

type stubDriver struct {
	diff []byte
	err  error
}

func (s stubDriver) Count(context.Context, string, []string) (int, error) { return 0, nil }
func (s stubDriver) Batch(context.Context, string, []string, int, int) ([]commit.Commit, error) {
	return nil, nil
}
func (s stubDriver) ResolveCommit(context.Context, string) (commit.Commit, error) {
	return commit.Commit{}, nil
}
func (s stubDriver) MergeBase(context.Context, string, string) (string, error)  { return "", nil }
func (s stubDriver) IsAncestor(context.Context, string, string) (bool, error)   { return false, nil }
func (s stubDriver) ChangedPaths(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (s stubDriver) DefaultRemoteURL(context.Context) (string, error) { return "", nil }
func (s stubDriver) Diff(context.Context, string, string) ([]byte, error) {
	return s.diff, s.err
}

func TestRun_ReturnsRawDiffWhenNoNiceToolOnPath(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	out, err := Run(context.Background(), stubDriver{diff: []byte("diff --git a b\n")}, "a", "b")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if string(out) != "diff --git a b\n" {
		t.Fatalf("Run() = %q, want raw diff passthrough", out)
	}
}

func TestRun_PropagatesDriverError(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	wantErr := errors.New("boom")
	_, err := Run(context.Background(), stubDriver{err: wantErr}, "a", "b")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}

// Package vcsdriver is the narrow boundary the core talks to the external
// version-control tool through (spec.md §1, §4.2, §6). It never allows a
// commit/History component to shell out directly.
package vcsdriver

import (
	"context"
	"strconv"

	"github.com/kalkin-go/glv/internal/commit"
)

// Driver is the external collaborator interface for a version-control tool.
// GitDriver is the only implementation shipped; the interface exists so
// tests can substitute a fake without invoking a real VCS child process.
type Driver interface {
	// Count returns the number of first-parent commits in range, optionally
	// restricted to paths.
	Count(ctx context.Context, rng string, paths []string) (int, error)

	// Batch returns up to max first-parent commits in range (optionally
	// path-restricted), skipping the first skip. An empty result signals
	// end-of-range (spec.md §4.2).
	Batch(ctx context.Context, rng string, paths []string, skip, max int) ([]commit.Commit, error)

	// ResolveCommit fetches a single commit by id.
	ResolveCommit(ctx context.Context, id string) (commit.Commit, error)

	// MergeBase returns the merge base of a and b, or "" if none exists.
	MergeBase(ctx context.Context, a, b string) (string, error)

	// IsAncestor reports whether first is an ancestor of second.
	IsAncestor(ctx context.Context, first, second string) (bool, error)

	// Diff runs the external diff between bellow (exclusive, "" meaning the
	// empty tree) and id, returning the raw ANSI-colored byte stream
	// described in spec.md §4.8.
	Diff(ctx context.Context, bellow, id string) ([]byte, error)

	// ChangedPaths returns the file paths touched between bellow (exclusive,
	// "" meaning the empty tree) and id, used by the subtree-change worker.
	ChangedPaths(ctx context.Context, bellow, id string) ([]string, error)

	// DefaultRemoteURL returns the configured remote URL for the repository,
	// or "" if none is configured (spec.md §3 I6, used for top-level entries).
	DefaultRemoteURL(ctx context.Context) (string, error)
}

// CommandError is returned when the VCS child process exits non-zero. It
// carries the exit code and stderr the way spec.md §4.2/§7 requires:
// "failures propagate as an error carrying the exit code and a message."
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return e.Command + ": exit " + strconv.Itoa(e.ExitCode) + ": " + e.Stderr
}

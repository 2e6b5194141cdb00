package vcsdriver

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kalkin-go/glv/internal/commit"
)

// logFormat is the pretty-format template described by spec.md §4.1/§6:
// a leading literal, then US-delimited fields in the required order, with
// each record terminated by RS. %D (ref decorations) already produces
// comma-space-separated "HEAD -> branch, tag: x" tokens, which is exactly
// the grammar commit.ParseRefs expects.
const logFormat = "format:x" +
	"%x1f%H%x1f%h%x1f%P%x1f%D" +
	"%x1f%an%x1f%ae%x1f%aI%x1f%ar" +
	"%x1f%cn%x1f%ce%x1f%cI%x1f%cr" +
	"%x1f%s%x1f%b%x1e"

// emptyTree is git's hash for the empty tree object, used as the base of a
// diff when a commit has no first-parent predecessor.
const emptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// GitDriver implements Driver by shelling out to the git binary. It is
// grounded on internal/vcs/git.go's GitCommandBuilder and
// internal/workspace/git_graph.go's exec.CommandContext usage.
type GitDriver struct {
	WorkingDir string
}

func NewGitDriver(workingDir string) *GitDriver {
	return &GitDriver{WorkingDir: workingDir}
}

// GitDir returns the repository's metadata directory, for callers (such as
// Watcher) that need to watch it directly rather than shelling out. This is
// the common non-worktree, non-submodule layout; callers needing the exact
// gitdir for those cases should resolve it themselves.
func (g *GitDriver) GitDir() string {
	return filepath.Join(g.WorkingDir, ".git")
}

func (g *GitDriver) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.WorkingDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		exitCode := -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		return stdout.Bytes(), &CommandError{
			Command:  "git " + strings.Join(args, " "),
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}
	return stdout.Bytes(), nil
}

func rangeArgs(rng string, paths []string) []string {
	var args []string
	if rng != "" {
		args = append(args, rng)
	}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return args
}

func (g *GitDriver) Count(ctx context.Context, rng string, paths []string) (int, error) {
	args := append([]string{"rev-list", "--first-parent", "--count"}, rangeArgs(rng, paths)...)
	out, err := g.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(string(out)))
	if convErr != nil {
		return 0, &CommandError{Command: "git " + strings.Join(args, " "), ExitCode: 0, Stderr: convErr.Error()}
	}
	return n, nil
}

func (g *GitDriver) Batch(ctx context.Context, rng string, paths []string, skip, max int) ([]commit.Commit, error) {
	args := []string{
		"log", "--first-parent",
		"--skip=" + strconv.Itoa(skip),
		"--max-count=" + strconv.Itoa(max),
		"--pretty=" + logFormat,
	}
	args = append(args, rangeArgs(rng, paths)...)
	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return commit.ParseRecordStream(string(out)), nil
}

func (g *GitDriver) ResolveCommit(ctx context.Context, id string) (commit.Commit, error) {
	out, err := g.run(ctx, "log", "-1", "--pretty="+logFormat, id)
	if err != nil {
		return commit.Commit{}, err
	}
	commits := commit.ParseRecordStream(string(out))
	if len(commits) == 0 {
		return commit.Commit{}, &CommandError{Command: "git log -1 " + id, ExitCode: 0, Stderr: "no such commit"}
	}
	return commits[0], nil
}

func (g *GitDriver) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.run(ctx, "merge-base", a, b)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return "", nil // no common ancestor
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (g *GitDriver) IsAncestor(ctx context.Context, first, second string) (bool, error) {
	_, err := g.run(ctx, "merge-base", "--is-ancestor", first, second)
	if err == nil {
		return true, nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
		return false, nil
	}
	return false, err
}

func (g *GitDriver) Diff(ctx context.Context, bellow, id string) ([]byte, error) {
	base := bellow
	if base == "" {
		base = emptyTree
	}
	return g.run(ctx, "diff", "--color=always", "--stat", "-p", "-M", "--full-index", base+".."+id)
}

func (g *GitDriver) ChangedPaths(ctx context.Context, bellow, id string) ([]string, error) {
	base := bellow
	if base == "" {
		base = emptyTree
	}
	out, err := g.run(ctx, "diff", "--name-only", base+".."+id)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

func (g *GitDriver) DefaultRemoteURL(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", nil // no remote configured is not fatal
	}
	return strings.TrimSpace(string(out)), nil
}

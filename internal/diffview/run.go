package diffview

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/kalkin-go/glv/internal/vcsdriver"
)

// niceDiffTool is the external pager-style diff post-processor preferred
// over raw `diff`/`git diff` output, when present on PATH (spec.md §4.8:
// "when a visually nicer diff tool is available on PATH").
const niceDiffTool = "delta"

// lookPath is overridden in tests.
var lookPath = exec.LookPath

// Run produces the raw ANSI byte stream for the detail view of the entry
// spanning bellow..id: the driver's own --color=always diff, piped through
// niceDiffTool with paging disabled when that tool is on PATH.
//
// The driver already attaches the VCS diff subprocess to its own pty-free
// pipe (spec.md §6's narrow vcsdriver.Driver.Diff); Run only adds the
// optional second pty-attached stage so the nicer tool still believes it is
// talking to a terminal and keeps emitting color (the same reason
// internal/session/tracker.go attaches a pty rather than a plain pipe).
func Run(ctx context.Context, driver vcsdriver.Driver, bellow, id string) ([]byte, error) {
	raw, err := driver.Diff(ctx, bellow, id)
	if err != nil {
		return nil, err
	}

	path, err := lookPath(niceDiffTool)
	if err != nil {
		return raw, nil
	}

	// Only stdout/stderr are attached to the pty, so niceDiffTool still
	// believes it's talking to a terminal and keeps emitting color. stdin
	// is a plain os.Pipe, the same shape as the original's pipe+.output()
	// (detail.rs:144-148), so closing the write end signals EOF the way a
	// pty's write side cannot (a pty has no half-close).
	ptmx, tty, err := pty.Open()
	if err != nil {
		return raw, nil
	}
	defer ptmx.Close()

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		tty.Close()
		return raw, nil
	}

	cmd := exec.CommandContext(ctx, path, "--paging=never")
	cmd.Stdin = stdinR
	cmd.Stdout = tty
	cmd.Stderr = tty
	if err := cmd.Start(); err != nil {
		stdinR.Close()
		stdinW.Close()
		tty.Close()
		return raw, nil
	}
	stdinR.Close()
	tty.Close()

	go func() {
		_, _ = stdinW.Write(raw)
		stdinW.Close()
	}()

	out, readErr := io.ReadAll(ptmx)
	_ = cmd.Wait()
	if readErr != nil && len(out) == 0 {
		return raw, nil
	}
	return out, nil
}

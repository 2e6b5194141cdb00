// Command glv is an interactive terminal viewer for a commit-history
// graph (spec.md §1). Usage: glv [--working-dir DIR] [REVISION] [PATHS...].
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/kalkin-go/glv/internal/config"
	"github.com/kalkin-go/glv/internal/exitcode"
	"github.com/kalkin-go/glv/internal/historyadapter"
	"github.com/kalkin-go/glv/internal/subtrees"
	"github.com/kalkin-go/glv/internal/ui"
	"github.com/kalkin-go/glv/internal/vcsdriver"
)

func main() {
	os.Exit(run())
}

func run() int {
	rev, workingDir, paths, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "glv:", err)
		return exitcode.Code(exitcode.InvalidArgument)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "glv: stdout is not a terminal")
		return exitcode.Code(exitcode.TerminalTitleFailure)
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "glv:", err)
		return exitcode.Code(exitcode.InvalidArgument)
	}
	cfg, _, err := config.EnsureExists(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "glv:", err)
		return exitcode.Code(exitcode.InvalidArgument)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driver := vcsdriver.NewGitDriver(workingDir)
	var modules subtrees.Config // no subtree-module discovery mechanism is specified; starts empty

	adapter, err := historyadapter.New(ctx, driver, rev, paths, modules)
	if err != nil {
		fmt.Fprintln(os.Stderr, "glv:", err)
		return exitcode.Code(exitcode.InvalidArgument)
	}

	watchCh := make(chan struct{}, 1)
	if watcher, werr := vcsdriver.NewWatcher(driver.GitDir(), func() {
		select {
		case watchCh <- struct{}{}:
		default:
		}
	}); werr == nil {
		watcher.Start()
		defer watcher.Stop()
	}

	model := ui.New(ctx, driver, adapter, rev, paths, modules, cfg, watchCh)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "glv:", err)
		return exitcode.Code(exitcode.InvalidArgument)
	}
	return exitcode.Code(exitcode.Success)
}

// parseArgs implements the CLI surface from spec.md §6: a positional
// REVISION (default "HEAD"), a --working-dir option, and a trailing
// PATHS... list.
func parseArgs(args []string) (rev, workingDir string, paths []string, err error) {
	rev = "HEAD"
	workingDir = "."

	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--working-dir":
			if i+1 >= len(args) {
				return "", "", nil, fmt.Errorf("--working-dir requires a value")
			}
			i++
			workingDir = args[i]
		case len(arg) > len("--working-dir=") && arg[:len("--working-dir=")] == "--working-dir=":
			workingDir = arg[len("--working-dir="):]
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) > 0 {
		rev = positional[0]
		paths = positional[1:]
	}
	return rev, workingDir, paths, nil
}

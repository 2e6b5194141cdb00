// Package searchwidget implements the needle-capture state machine from
// spec.md §4.7: Hidden / CaptureNeedle(dir) / Search(needle), driven by a
// bubbles/textinput field while capturing.
package searchwidget

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kalkin-go/glv/internal/historyadapter"
	"github.com/kalkin-go/glv/internal/search"
)

// State identifies which of the three machine states is active.
type State int

const (
	Hidden State = iota
	CaptureNeedle
	Search
)

// Needle is a search string plus direction (glossary "Needle").
type Needle struct {
	Text string
	Dir  search.Direction
}

// Widget owns the state machine plus the live progress/result tracking a
// Search(needle) state accumulates while a background search runs.
type Widget struct {
	state State
	dir   search.Direction
	input textinput.Model

	needle  Needle
	seen    int
	results []historyadapter.Address
	cursor  int
}

// New constructs a hidden widget with a ready-to-use text input.
func New() *Widget {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/"
	return &Widget{input: ti}
}

func (w *Widget) State() State      { return w.state }
func (w *Widget) Needle() Needle    { return w.needle }
func (w *Widget) TextValue() string { return w.input.Value() }
func (w *Widget) Seen() int         { return w.seen }
func (w *Widget) ResultCount() int  { return len(w.results) }

// Activate implements the Activate(dir) transition (spec.md §4.7 table).
// From Hidden or Search it always enters CaptureNeedle(dir). From an
// already-capturing state with the *same* direction it is a no-op;
// a different direction restarts capture in the new direction.
func (w *Widget) Activate(dir search.Direction) {
	if w.state == CaptureNeedle && w.dir == dir {
		return
	}
	w.state = CaptureNeedle
	w.dir = dir
	w.input.SetValue("")
	w.input.Focus()
}

// Cancel implements the Cancel transition: every state returns to Hidden.
func (w *Widget) Cancel() {
	w.state = Hidden
	w.input.Blur()
	w.input.SetValue("")
}

// Submit implements the Text(s) transition: the captured text becomes a
// Needle and the widget moves to Search. Ignored while Hidden (spec.md
// §4.7 table: "(ignored)"). Re-submitting from an existing Search state
// keeps that search's direction, matching the table's "dir(n)".
func (w *Widget) Submit(text string) {
	if w.state == Hidden {
		return
	}
	dir := w.dir
	if w.state == Search {
		dir = w.needle.Dir
	}
	w.needle = Needle{Text: text, Dir: dir}
	w.state = Search
	w.input.Blur()
	w.seen = 0
	w.results = nil
	w.cursor = 0
}

// UpdateInput forwards a bubbletea message to the embedded text input
// while capturing; callers should only invoke this in CaptureNeedle state.
func (w *Widget) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

// RecordProgress accumulates a Searched/Found event (spec.md §4.5 step 2:
// "Drain any received SearchProgress into the search widget").
func (w *Widget) RecordProgress(p search.Progress) {
	switch p.Kind {
	case search.Searched:
		w.seen = p.Seen
	case search.Found:
		w.results = append(w.results, p.Address)
	}
}

// NextResult returns the next result to navigate to ("n"), wrapping
// around, or false if no results have arrived yet.
func (w *Widget) NextResult() (historyadapter.Address, bool) {
	if len(w.results) == 0 {
		return nil, false
	}
	addr := w.results[w.cursor]
	w.cursor = (w.cursor + 1) % len(w.results)
	return addr, true
}

// PrevResult returns the previous result ("N"), wrapping around.
func (w *Widget) PrevResult() (historyadapter.Address, bool) {
	if len(w.results) == 0 {
		return nil, false
	}
	w.cursor = (w.cursor - 1 + len(w.results)) % len(w.results)
	return w.results[w.cursor], true
}

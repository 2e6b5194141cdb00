// Package ui implements the bubbletea Model/Update/View loop described in
// spec.md §5/§4.5: one UI goroutine, synchronous renders, workers drained
// to exhaustion on every idle tick. It ties internal/historyadapter,
// internal/table, internal/searchwidget, and internal/diffview together.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kalkin-go/glv/internal/config"
	"github.com/kalkin-go/glv/internal/diffview"
	"github.com/kalkin-go/glv/internal/historyadapter"
	"github.com/kalkin-go/glv/internal/historyentry"
	"github.com/kalkin-go/glv/internal/search"
	"github.com/kalkin-go/glv/internal/searchwidget"
	"github.com/kalkin-go/glv/internal/subtrees"
	"github.com/kalkin-go/glv/internal/table"
	"github.com/kalkin-go/glv/internal/vcsdriver"
)

// idleTick paces re-renders while the input channel is empty (spec.md §5:
// "a bounded sleep (~100 ms) when the input channel is empty").
const idleTick = 100 * time.Millisecond

// fillBatch bounds each synchronous top-up of loaded rows.
const fillBatch = 64

// Model is the top-level bubbletea model.
type Model struct {
	ctx    context.Context
	driver vcsdriver.Driver

	adapter *historyadapter.Adapter
	rng     string
	paths   []string
	modules subtrees.Config

	widths table.ColumnWidths
	paging table.Paging

	keys   KeyMap
	search *searchwidget.Widget

	searchCancel context.CancelFunc
	searchCh     <-chan search.Progress

	diff     diffview.View
	showDiff bool

	watchCh <-chan struct{}

	width, height int
	err           error
}

// New constructs the model; the adapter is expected to already have been
// created via historyadapter.New by the caller (cmd/glv), which also owns
// the context workers run under. watchCh is optional (nil is fine): when
// non-nil, a pending receive on it triggers an adapter count refresh on the
// next idle tick, fed by a vcsdriver.Watcher the caller owns.
func New(ctx context.Context, driver vcsdriver.Driver, adapter *historyadapter.Adapter, rng string, paths []string, modules subtrees.Config, cfg *config.Config, watchCh <-chan struct{}) *Model {
	return &Model{
		ctx:     ctx,
		driver:  driver,
		adapter: adapter,
		rng:     rng,
		paths:   paths,
		modules: modules,
		widths: table.ColumnWidths{
			AuthorName:    cfg.AuthorNameWidth,
			AuthorRelDate: cfg.AuthorRelDateWidth,
			Modules:       cfg.ModulesWidth,
		},
		keys:    DefaultKeyMap(),
		search:  searchwidget.New(),
		diff:    diffview.New(0, 0),
		watchCh: watchCh,
	}
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(idleTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type searchEventMsg search.Progress

func listenSearch(ch <-chan search.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return searchEventMsg(p)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())
		m.diff.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tickMsg:
		select {
		case <-m.watchCh:
			if err := m.adapter.RefreshCount(m.ctx); err != nil {
				m.err = err
			}
		default:
		}
		m.adapter.Update()
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())
		return m, tickCmd()

	case searchEventMsg:
		p := search.Progress(msg)
		m.search.RecordProgress(p)
		if p.Kind == search.Finished {
			return m, nil
		}
		return m, listenSearch(m.searchCh)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.State() == searchwidget.CaptureNeedle {
		return m.handleCaptureKey(msg)
	}
	if m.showDiff {
		return m.handleDiffKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.search.TextValue()
		m.search.Submit(text)
		return m, m.startSearch(text)
	case "esc":
		m.search.Cancel()
		m.stopSearch()
		return m, nil
	}
	cmd := m.search.UpdateInput(msg)
	return m, cmd
}

func (m *Model) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.showDiff = false
		return m, nil
	}
	cmd := m.diff.Update(msg)
	return m, cmd
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.searchCancel != nil {
			m.stopSearch()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.ensureLoaded(m.paging.Selected + 1)
		m.paging.MoveDown(m.adapter.Len())
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())

	case key.Matches(msg, m.keys.Up):
		m.paging.MoveUp()
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())

	case key.Matches(msg, m.keys.PageDown):
		m.ensureLoaded(m.paging.Selected + m.tableHeight())
		m.paging.PageDown(m.adapter.Len())
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())

	case key.Matches(msg, m.keys.PageUp):
		m.paging.PageUp()
		m.paging.Recompute(m.adapter.Len(), m.tableHeight())

	case key.Matches(msg, m.keys.Collapse):
		m.collapseSelected()

	case key.Matches(msg, m.keys.Expand):
		m.expandSelected()

	case key.Matches(msg, m.keys.ToggleFold):
		m.toggleFoldSelected()

	case key.Matches(msg, m.keys.OpenDiff):
		return m, m.openDiff()

	case key.Matches(msg, m.keys.SearchForward):
		m.search.Activate(search.Forward)

	case key.Matches(msg, m.keys.SearchBack):
		m.search.Activate(search.Backward)

	case key.Matches(msg, m.keys.NextMatch):
		if addr, ok := m.search.NextResult(); ok {
			m.jumpTo(addr)
		}

	case key.Matches(msg, m.keys.PrevMatch):
		if addr, ok := m.search.PrevResult(); ok {
			m.jumpTo(addr)
		}

	case key.Matches(msg, m.keys.Cancel):
		m.search.Cancel()
		m.stopSearch()
	}
	return m, nil
}

// ensureLoaded synchronously tops up the adapter's loaded rows until index
// i is available or the range is exhausted — a direct, blocking VCS call
// on the UI thread, which spec.md §5 explicitly accepts ("(b) the
// synchronous VCS child-process calls in fill_up, unfold, and to_commit").
func (m *Model) ensureLoaded(i int) {
	for i >= m.adapter.Loaded() {
		more, err := m.adapter.FillUp(m.ctx, fillBatch)
		if err != nil {
			m.err = err
			return
		}
		if !more {
			return
		}
	}
}

func (m *Model) collapseSelected() {
	e, ok := m.adapter.Entry(m.paging.Selected)
	if !ok {
		return
	}
	if e.Foldable() && !e.Folded {
		m.adapter.Fold(m.paging.Selected)
		return
	}
	if e.Level > 0 && m.paging.Selected > 0 {
		m.paging.Selected--
	}
}

func (m *Model) expandSelected() {
	e, ok := m.adapter.Entry(m.paging.Selected)
	if !ok {
		return
	}
	if e.Foldable() && e.Folded {
		if _, err := m.adapter.Unfold(m.ctx, m.paging.Selected); err != nil {
			m.err = err
		}
		return
	}
	if e.IsCommitLink {
		m.followCommitLink(e)
	}
}

func (m *Model) toggleFoldSelected() {
	e, ok := m.adapter.Entry(m.paging.Selected)
	if !ok {
		return
	}
	switch {
	case e.IsCommitLink:
		m.followCommitLink(e)
	case e.Foldable() && e.Folded:
		if _, err := m.adapter.Unfold(m.ctx, m.paging.Selected); err != nil {
			m.err = err
		}
	case e.Foldable():
		m.adapter.Fold(m.paging.Selected)
	}
}

// followCommitLink implements spec.md §8 scenario 4: activating a commit
// link row navigates, via result_to_index semantics, to the first row in
// the adapter with the same oid, unfolding merges along the way.
func (m *Model) followCommitLink(e *historyentry.Entry) {
	i, err := m.adapter.FindCommitID(m.ctx, e.Commit.ID)
	if err != nil {
		m.err = err
		return
	}
	m.paging.Selected = i
	m.paging.Recompute(m.adapter.Len(), m.tableHeight())
}

func (m *Model) openDiff() tea.Cmd {
	e, ok := m.adapter.Entry(m.paging.Selected)
	if !ok {
		return nil
	}
	m.showDiff = true
	return func() tea.Msg {
		_ = m.diff.Load(m.ctx, m.driver, e)
		return nil
	}
}

func (m *Model) startSearch(needle string) tea.Cmd {
	m.stopSearch()
	ctx, cancel := context.WithCancel(m.ctx)
	m.searchCancel = cancel
	r := search.Range{Driver: m.driver, Rng: m.rng, Paths: m.paths, Modules: m.modules}
	ch := search.Search(ctx, r, needle, m.paging.Selected, m.search.Needle().Dir)
	m.searchCh = ch
	return listenSearch(ch)
}

func (m *Model) stopSearch() {
	if m.searchCancel != nil {
		m.searchCancel()
		m.searchCancel = nil
	}
}

func (m *Model) jumpTo(addr historyadapter.Address) {
	i, err := m.adapter.ResultToIndex(m.ctx, addr)
	if err != nil {
		m.err = err
		return
	}
	m.paging.Selected = i
	m.paging.Recompute(m.adapter.Len(), m.tableHeight())
}

func (m *Model) tableHeight() int {
	if m.showDiff {
		return 0
	}
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error()
	}
	if m.showDiff {
		return m.diff.View()
	}

	var b strings.Builder
	for i := m.paging.Top; i <= m.paging.Bottom() && i < m.adapter.Loaded(); i++ {
		e, ok := m.adapter.Entry(i)
		if !ok {
			break
		}
		b.WriteString(table.Line(e, i == m.paging.Selected, m.widths, m.width, m.search.Needle().Text))
		b.WriteByte('\n')
	}
	status := lipgloss.NewStyle().Faint(true).Render(m.statusLine())
	return b.String() + status
}

func (m *Model) statusLine() string {
	switch m.search.State() {
	case searchwidget.CaptureNeedle:
		return "/" + m.search.TextValue()
	case searchwidget.Search:
		return "search: " + m.search.Needle().Text
	default:
		return ""
	}
}

package diffview

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kalkin-go/glv/internal/historyentry"
	"github.com/kalkin-go/glv/internal/vcsdriver"
)

// View is the scrollable detail pane: composed header plus the rendered
// diff, wrapped in a bubbles/viewport (spec.md §4.8: "scrolling is provided
// by the enclosing layout").
type View struct {
	vp    viewport.Model
	ready bool
}

// New creates an empty detail view sized to width x height.
func New(width, height int) View {
	return View{vp: viewport.New(width, height)}
}

// Load fetches the diff for entry via driver and fills the viewport with
// the composed header + parsed diff, scrolled back to the top.
func (v *View) Load(ctx context.Context, driver vcsdriver.Driver, e *historyentry.Entry) error {
	raw, err := Run(ctx, driver, e.Commit.Bellow(), e.Commit.ID)
	if err != nil {
		return err
	}
	v.vp.SetContent(Header(e) + ParseANSI(raw))
	v.vp.GotoTop()
	v.ready = true
	return nil
}

// SetSize resizes the underlying viewport, e.g. on a terminal resize.
func (v *View) SetSize(width, height int) {
	v.vp.Width = width
	v.vp.Height = height
}

// Update forwards a bubbletea message to the underlying viewport (page
// up/down, arrow scrolling).
func (v *View) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return cmd
}

// View renders the current viewport content.
func (v View) View() string {
	if !v.ready {
		return ""
	}
	return v.vp.View()
}

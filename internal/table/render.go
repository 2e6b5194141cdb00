package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalkin-go/glv/internal/historyentry"
)

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	matchStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Line renders one row: the indented graph glyph, short id, author name,
// optional relative-date and subtree-module columns, and the rendered
// subject, truncated to pageWidth and highlighted if it contains needle
// (spec.md §4.5 steps 6-7).
func Line(e *historyentry.Entry, selected bool, widths ColumnWidths, pageWidth int, needle string) string {
	indent := strings.Repeat("  ", int(e.Level))
	graph := indent + historyentry.Glyph(*e)

	// A configured cap of 0 means "no cap, use the running page maximum"
	// (spec.md §6). The author column is resolved against pageWidth; the
	// relative-date and modules columns are then left at their natural
	// width, and the final Truncate against pageWidth below is what bounds
	// them.
	authorW := widths.AuthorName
	if pageWidth > 0 {
		authorW = resolve(authorW, pageWidth)
	}

	cols := []string{
		graph,
		idStyle.Render(e.Commit.ShortID),
		Truncate(e.Commit.Author.Name, authorW),
	}
	relDate := e.Commit.Author.RelativeDate
	if widths.AuthorRelDate > 0 {
		relDate = Truncate(relDate, widths.AuthorRelDate)
	}
	cols = append(cols, relDate)
	if len(e.Subtrees) > 0 {
		modules := strings.Join(e.Subtrees, ",")
		if widths.Modules > 0 {
			modules = Truncate(modules, widths.Modules)
		}
		cols = append(cols, modules)
	}

	line := strings.Join(cols, " ") + " " + e.RenderedSubject()
	if pageWidth > 0 {
		line = Truncate(line, pageWidth)
	}

	if needle != "" {
		line = highlight(line, needle)
	}
	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

// highlight wraps the first case-insensitive occurrence of needle in line
// with a bold/underline style.
func highlight(line, needle string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(needle))
	if idx < 0 {
		return line
	}
	end := idx + len(needle)
	return line[:idx] + matchStyle.Render(line[idx:end]) + line[end:]
}

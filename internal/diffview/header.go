// Package diffview renders the split-pane diff detail view from spec.md
// §4.8: a header (id, author, dates, modules, subject, body) followed by
// the external VCS diff parsed into styled spans.
package diffview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalkin-go/glv/internal/historyentry"
)

var (
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	boldStyle = lipgloss.NewStyle().Bold(true)
	labelW    = 17
)

// Header renders the detail-view preamble for the given entry: the
// committer line is only shown when the committer name differs from the
// author's, and the committer-date line is only shown when the committer
// date differs from the author date.
func Header(e *historyentry.Entry) string {
	c := e.Commit
	var b strings.Builder

	writeField(&b, "Commit:", idStyle.Render(c.ID))
	writeField(&b, "Author:", nameStyle.Render(c.Author.Name))
	writeField(&b, "Author Date:", dateStyle.Render(c.Author.ISODate))

	if c.Author.Name != c.Committer.Name {
		writeField(&b, "Committer:", nameStyle.Render(c.Committer.Name))
	}
	if c.Author.ISODate != c.Committer.ISODate {
		writeField(&b, "Committer Date:", dateStyle.Render(c.Committer.ISODate))
	}

	if len(e.Subtrees) > 0 {
		writeField(&b, "Modules:", dateStyle.Render(strings.Join(e.Subtrees, ", ")))
	}

	b.WriteByte('\n')
	b.WriteString(boldStyle.Render(" " + e.RenderedSubject()))
	b.WriteByte('\n')
	b.WriteByte('\n')
	for _, line := range strings.Split(c.Body, "\n") {
		b.WriteString(" " + line + "\n")
	}
	b.WriteString("                                 ❦ ❦ ❦ ❦ \n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	if pad := labelW - len(label); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(value)
	b.WriteByte('\n')
}

package table

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DisplayWidth returns the grapheme-cluster-aware terminal column width of
// s (spec.md §9 "Unicode column widths").
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate fits s into exactly width display columns: shorter strings are
// space-padded, longer ones are cut at a grapheme boundary and end with a
// horizontal ellipsis (spec.md §9).
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(s) <= width {
		return s + spaces(width-DisplayWidth(s))
	}
	if width == 1 {
		return "…"
	}

	var b strings.Builder
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := uniseg.StringWidth(g.Str())
		if w+cw > width-1 {
			break
		}
		b.WriteString(g.Str())
		w += cw
	}
	b.WriteString("…")
	w++
	return b.String() + spaces(width-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

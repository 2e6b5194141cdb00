package historyentry

// Glyph computes the fixed graph-line glyph for an entry from its state,
// per spec.md §9: "a small pure function from entry-state to glyph
// string." Exact glyphs are cosmetic (spec.md §9c); the distinctions the
// rest of the system depends on (fork-point vs not, merge vs not, commit
// link vs not) are what matter.
func Glyph(e Entry) string {
	if e.IsCommitLink {
		return "↳"
	}
	if !e.IsMerge() {
		if e.Commit.Bellow() == "" {
			return "●" // root commit, nothing above it
		}
		return "│"
	}

	if e.ForkPoint.InProgress {
		return "⋯┐"
	}
	if !e.ForkPoint.Value {
		return "─┐"
	}

	switch e.SubtreeOp {
	case Update:
		return "=┤"
	case Import:
		return "+┤"
	case Split:
		return "-┤"
	default:
		return "─┤"
	}
}

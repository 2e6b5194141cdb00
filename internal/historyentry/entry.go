// Package historyentry holds the per-row mutable state the adapter owns
// (spec.md §3 "History entry") plus the pure derivations computed from it:
// subject classification and the graph glyph function (spec.md §9).
package historyentry

import "github.com/kalkin-go/glv/internal/commit"

// ForkPointState models the three-valued fork-point field from spec.md §3:
// unresolved (InProgress) until the worker answers.
type ForkPointState struct {
	InProgress bool
	Value      bool // only meaningful when !InProgress
}

// Done returns a resolved fork-point state.
func Done(value bool) ForkPointState { return ForkPointState{Value: value} }

// Pending returns the in-progress fork-point state.
func Pending() ForkPointState { return ForkPointState{InProgress: true} }

// SubtreeOperation classifies a commit's subject prefix (spec.md §4.4.2).
type SubtreeOperation int

const (
	NoOperation SubtreeOperation = iota
	Update
	Import
	Split
)

// Special marks a commit as a detected pull-request merge (spec.md §3).
type Special struct {
	IsPullRequest bool
	PRID          string
}

// Entry is the adapter's mutable per-row state. Commit is immutable;
// everything else may be mutated in place by fold/unfold/update.
type Entry struct {
	Commit commit.Commit

	Level        uint8
	Folded       bool
	IsCommitLink bool

	ForkPoint ForkPointState

	Subtrees []string // module ids, filled by the subtree worker

	SubjectOverride *string // replacement subject from a PR lookup
	SubjectModule   *string // conventional-commit scope, if any

	SubtreeOp SubtreeOperation
	SpecialOp Special

	URL string // "" means no associated upstream URL (spec.md §3 I6)
}

// RenderedSubject returns SubjectOverride if set, otherwise the
// scope-stripped subject computed by SplitSubject.
func (e Entry) RenderedSubject() string {
	if e.SubjectOverride != nil {
		return *e.SubjectOverride
	}
	short, _ := SplitSubject(e.Commit.Subject)
	return short
}

// IsMerge reports whether the underlying commit is a merge.
func (e Entry) IsMerge() bool {
	return e.Commit.IsMerge()
}

// Foldable reports whether this entry can be folded/unfolded: must be a
// merge and must not be a synthetic commit-link row (spec.md §3 I5).
func (e Entry) Foldable() bool {
	return e.IsMerge() && !e.IsCommitLink
}

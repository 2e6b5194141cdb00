package historyentry

import (
	"regexp"
	"strings"
)

// PR-merge subject patterns from spec.md §4.4.2, exact.
var (
	prTrackingBranchRE = regexp.MustCompile(`^Merge remote-tracking branch '.+/pr/(\d+)'$`)
	prPullRequestRE    = regexp.MustCompile(`^Merge pull request #(\d+) from .+$`)
)

// ClassifySpecial detects a PR-merge subject and returns its Special value.
// Exactly the two patterns in spec.md §4.4.2 match; nothing else does
// (spec.md §8 P5).
func ClassifySpecial(subject string) Special {
	if m := prPullRequestRE.FindStringSubmatch(subject); m != nil {
		return Special{IsPullRequest: true, PRID: m[1]}
	}
	if m := prTrackingBranchRE.FindStringSubmatch(subject); m != nil {
		return Special{IsPullRequest: true, PRID: m[1]}
	}
	return Special{}
}

// ClassifySubtreeOperation returns the subtree operation implied by a
// commit subject's prefix: the first matching prefix wins (spec.md
// §4.4.2): "Update :" -> Update, "Import :" -> Import, "Split '" -> Split,
// else None.
func ClassifySubtreeOperation(subject string) SubtreeOperation {
	switch {
	case strings.HasPrefix(subject, "Update :"):
		return Update
	case strings.HasPrefix(subject, "Import :"):
		return Import
	case strings.HasPrefix(subject, "Split '"):
		return Split
	default:
		return NoOperation
	}
}

// subjectScopeRE matches conventional-commit form "type(scope): message".
var subjectScopeRE = regexp.MustCompile(`^(\w+)\((.+)\): (.+)$`)

// SplitSubject implements spec.md §4.4.2's subject splitting: if the
// subject matches "^\w+\((.+)\): .+", the captured scope becomes the module
// and the rendered subject has the "(scope)" token removed. Idempotent
// (spec.md §8 P6): applying it to its own short-subject output returns the
// same short subject and no module.
func SplitSubject(subject string) (shortSubject string, module *string) {
	m := subjectScopeRE.FindStringSubmatch(subject)
	if m == nil {
		return subject, nil
	}
	scope := m[2]
	short := m[1] + ": " + m[3]
	return short, &scope
}

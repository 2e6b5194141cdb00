package table

import (
	"strings"
	"testing"

	"github.com/kalkin-go/glv/internal/commit"
	"github.com/kalkin-go/glv/internal/historyentry"
)

func TestTruncate_PadsShortStrings(t *testing.T) {
	got := Truncate("hi", 5)
	if got != "hi   " {
		t.Fatalf("Truncate = %q, want %q", got, "hi   ")
	}
}

func TestTruncate_EllipsisOnOverflow(t *testing.T) {
	got := Truncate("abcdefgh", 5)
	if DisplayWidth(got) != 5 {
		t.Fatalf("Truncate width = %d, want 5", DisplayWidth(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("Truncate(%q) = %q, want ellipsis suffix", "abcdefgh", got)
	}
}

func TestTruncate_GraphemeClusterAware(t *testing.T) {
	// A flag emoji is two codepoints forming one grapheme cluster; it must
	// not be split mid-cluster when truncating.
	flag := "🇩🇪"
	got := Truncate(flag+"xxxxxxx", 3)
	if strings.Contains(got, "�") {
		t.Fatalf("Truncate produced a replacement character: %q", got)
	}
}

func TestPaging_RecomputeScrollsToKeepSelectedVisible(t *testing.T) {
	p := &Paging{Selected: 9}
	p.Recompute(20, 5)
	if p.Selected != 9 {
		t.Fatalf("Selected = %d, want 9", p.Selected)
	}
	if p.Top > p.Selected || p.Bottom() < p.Selected {
		t.Fatalf("selected row %d not within [%d,%d]", p.Selected, p.Top, p.Bottom())
	}
}

func TestPaging_ClampsToTotal(t *testing.T) {
	p := &Paging{Selected: 100}
	p.Recompute(5, 10)
	if p.Selected != 4 {
		t.Fatalf("Selected = %d, want 4 (clamped to total-1)", p.Selected)
	}
}

func TestPaging_EmptyTotal(t *testing.T) {
	p := &Paging{Selected: 3, Top: 2}
	p.Recompute(0, 10)
	if p.Selected != 0 || p.Top != 0 {
		t.Fatalf("Recompute(0, ...) = %+v, want zeroed", p)
	}
}

func TestLine_ContainsSubjectAndGlyph(t *testing.T) {
	e := &historyentry.Entry{
		Commit: commit.Commit{
			ShortID: "abc1234",
			Subject: "fix: correct the thing",
			Author:  commit.Person{Name: "Ada", RelativeDate: "2 days ago"},
		},
	}
	line := Line(e, false, DefaultColumnWidths(), 0, "")
	if !strings.Contains(line, "abc1234") {
		t.Fatalf("Line() = %q, missing short id", line)
	}
	if !strings.Contains(line, "fix: correct the thing") {
		t.Fatalf("Line() = %q, missing subject", line)
	}
	if !strings.Contains(line, historyentry.Glyph(*e)) {
		t.Fatalf("Line() = %q, missing glyph %q", line, historyentry.Glyph(*e))
	}
}

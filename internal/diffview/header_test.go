package diffview

import (
	"strings"
	"testing"

	"github.com/kalkin-go/glv/internal/commit"
	"github.com/kalkin-go/glv/internal/historyentry"
)

func entryFixture() *historyentry.Entry {
	return &historyentry.Entry{
		Commit: commit.Commit{
			ID:      "abc123",
			Subject: "fix: correct the thing",
			Body:    "longer body text",
			Author: commit.Person{
				Name: "Ada Lovelace", ISODate: "2024-01-02",
			},
			Committer: commit.Person{
				Name: "Ada Lovelace", ISODate: "2024-01-02",
			},
		},
	}
}

func TestHeader_OmitsCommitterWhenSameAsAuthor(t *testing.T) {
	h := Header(entryFixture())
	if strings.Contains(h, "Committer:") {
		t.Fatalf("Header = %q, committer line should be omitted when names match", h)
	}
}

func TestHeader_ShowsCommitterWhenNameDiffers(t *testing.T) {
	e := entryFixture()
	e.Commit.Committer.Name = "Bob Builder"
	h := Header(e)
	if !strings.Contains(h, "Committer:") {
		t.Fatalf("Header = %q, expected a committer line", h)
	}
}

func TestHeader_ShowsCommitterDateOnlyWhenDatesDiffer(t *testing.T) {
	e := entryFixture()
	h := Header(e)
	if strings.Contains(h, "Committer Date:") {
		t.Fatalf("Header = %q, committer date line should be omitted when dates agree", h)
	}

	e.Commit.Committer.ISODate = "2024-06-06"
	h = Header(e)
	if !strings.Contains(h, "Committer Date:") {
		t.Fatalf("Header = %q, expected committer date line when dates differ", h)
	}
}

func TestHeader_IncludesModulesWhenPresent(t *testing.T) {
	e := entryFixture()
	e.Subtrees = []string{"web", "api"}
	h := Header(e)
	if !strings.Contains(h, "Modules:") || !strings.Contains(h, "web, api") {
		t.Fatalf("Header = %q, expected module list", h)
	}
}

func TestHeader_OmitsModulesWhenEmpty(t *testing.T) {
	h := Header(entryFixture())
	if strings.Contains(h, "Modules:") {
		t.Fatalf("Header = %q, modules line should be omitted", h)
	}
}

func TestHeader_IncludesSubjectAndBody(t *testing.T) {
	h := Header(entryFixture())
	if !strings.Contains(h, "fix: correct the thing") {
		t.Fatalf("Header = %q, missing subject", h)
	}
	if !strings.Contains(h, "longer body text") {
		t.Fatalf("Header = %q, missing body", h)
	}
}

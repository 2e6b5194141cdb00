package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseNetrc_FindsMachine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netrc")
	content := "machine github.com\n  login alice\n  password token123\nmachine example.com login bob password secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	entries := parseNetrc(path)
	if entries["github.com"].login != "alice" || entries["github.com"].password != "token123" {
		t.Fatalf("entries[github.com] = %+v, want alice/token123", entries["github.com"])
	}
	if entries["example.com"].login != "bob" {
		t.Fatalf("entries[example.com] = %+v, want bob", entries["example.com"])
	}
}

func TestParseNetrc_MissingFileReturnsEmpty(t *testing.T) {
	entries := parseNetrc(filepath.Join(t.TempDir(), "nope"))
	if len(entries) != 0 {
		t.Fatalf("parseNetrc(missing) = %v, want empty", entries)
	}
}

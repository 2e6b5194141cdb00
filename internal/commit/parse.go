package commit

import (
	"fmt"
	"strings"
)

// Field and record separators used by the VCS driver's log template, per
// spec.md §4.1/§6.
const (
	unitSeparator   = "\x1f"
	recordSeparator = "\x1e"
)

// fieldCount is the number of fields after the leading ignored literal:
// full-id, short-id, parents, refs, author(name,email,iso,rel),
// committer(name,email,iso,rel), subject, body.
const fieldCount = 14

// ParseRecordStream parses the raw output of the VCS log invocation into
// Commit values, in the order the records were produced. A malformed
// mandatory field is a programming error per spec.md §4.1: the VCS driver
// is assumed to emit well-formed records, so ParseRecordStream panics rather than
// returning a partial Commit.
func ParseRecordStream(raw string) []Commit {
	raw = strings.Trim(raw, recordSeparator+"\n")
	if raw == "" {
		return nil
	}
	records := strings.Split(raw, recordSeparator)
	commits := make([]Commit, 0, len(records))
	for _, rec := range records {
		rec = strings.Trim(rec, "\n")
		if rec == "" {
			continue
		}
		commits = append(commits, parseRecord(rec))
	}
	return commits
}

// parseRecord parses one US-delimited record. The record carries a leading
// literal field (the template's introducer) that is discarded.
func parseRecord(rec string) Commit {
	fields := strings.Split(rec, unitSeparator)
	if len(fields) < fieldCount+1 {
		panic(fmt.Sprintf("commit: malformed record: got %d fields, want %d: %q", len(fields), fieldCount+1, rec))
	}
	fields = fields[1:] // drop leading literal

	id := fields[0]
	shortID := fields[1]
	if id == "" || shortID == "" {
		panic(fmt.Sprintf("commit: malformed record: missing id/short-id: %q", rec))
	}

	var parents []string
	if p := strings.TrimSpace(fields[2]); p != "" {
		parents = strings.Fields(p)
	}

	refs := ParseRefs(fields[3])

	author := Person{Name: fields[4], Email: fields[5], ISODate: fields[6], RelativeDate: fields[7]}
	committer := Person{Name: fields[8], Email: fields[9], ISODate: fields[10], RelativeDate: fields[11]}

	return Commit{
		ID:        id,
		ShortID:   shortID,
		Parents:   parents,
		Refs:      refs,
		Author:    author,
		Committer: committer,
		Subject:   fields[12],
		Body:      fields[13],
	}
}

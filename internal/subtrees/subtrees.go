// Package subtrees holds the pre-configured list of subtree modules a
// repository declares, and the membership test used to classify which
// modules a commit touched (spec.md §4.3, glossary "subtree module").
package subtrees

import "strings"

// Module is one pre-configured subtree of the repository.
type Module struct {
	ID   string
	Path string // repository-relative path prefix
	URL  string // upstream/origin URL, used by spec.md §3 I6
}

// Config is the set of subtree modules configured for a repository.
type Config []Module

// Touches reports whether any of the given changed file paths falls under
// this module's path prefix.
func (m Module) Touches(changedPaths []string) bool {
	prefix := strings.TrimSuffix(m.Path, "/") + "/"
	for _, p := range changedPaths {
		if p == m.Path || strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Classify returns the ids of every module touched by the given changed
// file paths.
func (c Config) Classify(changedPaths []string) []string {
	var ids []string
	for _, m := range c {
		if m.Touches(changedPaths) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// ByID looks up a module by id.
func (c Config) ByID(id string) (Module, bool) {
	for _, m := range c {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

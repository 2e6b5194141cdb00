// Package remotes resolves which upstream URL an entry should carry
// (spec.md §3 I6, §9 Open Question a): the repository's own remote at the
// top level, overridden by a subtree module's URL once the subtree worker
// reports that the commit touched exactly one module that has one.
package remotes

import "github.com/kalkin-go/glv/internal/subtrees"

// Remote is one named repository remote. The history adapter does not
// enumerate remotes into Remote values; it only reads the default remote's
// URL through the VCS driver.
type Remote struct {
	Name string
	URL  string
}

// SelectURL returns the URL an entry should carry given its currently
// inherited URL (the repo remote, or an enclosing merge's URL — spec.md §9
// Open Question a prefers the nearest enclosing URL over jumping back to
// the top-level repo) and the subtree modules the commit was found to
// touch. A single touched module with a configured URL overrides the
// inherited one; anything else (zero or several modules, or a module with
// no URL) leaves it unchanged.
func SelectURL(inherited string, touchedModuleIDs []string, modules subtrees.Config) string {
	if len(touchedModuleIDs) != 1 {
		return inherited
	}
	m, ok := modules.ByID(touchedModuleIDs[0])
	if !ok || m.URL == "" {
		return inherited
	}
	return m.URL
}

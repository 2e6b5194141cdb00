// Package table implements the table widget from spec.md §4.5: paging,
// selection, column formatting, and search-highlight overlay over the
// rows the history adapter exposes.
package table

// ColumnWidths holds the three configured caps from spec.md §6. Zero means
// "no configured cap, use the running page maximum" (resolved against the
// live page width the way original_source/src/ui/base/paging.rs does it,
// not just the configured value).
type ColumnWidths struct {
	AuthorName    int
	AuthorRelDate int
	Modules       int
}

// DefaultColumnWidths returns the defaults from spec.md §6.
func DefaultColumnWidths() ColumnWidths {
	return ColumnWidths{AuthorName: 10, AuthorRelDate: 0, Modules: 35}
}

// resolve clamps a configured cap against the live maximum: 0 or a cap
// larger than what's available both just mean "use the maximum".
func resolve(configured, max int) int {
	if configured <= 0 || configured > max {
		return max
	}
	return configured
}

package historyadapter

import (
	"context"

	"github.com/kalkin-go/glv/internal/historyentry"
)

// FillUp fetches and appends the next page of top-level commits (spec.md
// §4.4.2). It reports whether any progress was made; an empty batch from
// the fetcher means the range is exhausted and Len already accounts for
// every row the user will ever see.
func (a *Adapter) FillUp(ctx context.Context, max int) (bool, error) {
	skip := len(a.history)
	batch, err := a.driver.Batch(ctx, a.rng, a.paths, skip, max)
	if err != nil {
		return false, err
	}
	if len(batch) == 0 {
		return false, nil
	}

	for _, c := range batch {
		var above *historyentry.Entry
		if len(a.history) > 0 {
			above = a.history[len(a.history)-1]
		}
		e := a.buildEntry(c, 0, a.repoURL, above)
		a.history = append(a.history, e)
	}
	return true, nil
}

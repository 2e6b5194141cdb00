package historyadapter

import (
	"github.com/kalkin-go/glv/internal/historyentry"
	"github.com/kalkin-go/glv/internal/remotes"
	"github.com/kalkin-go/glv/internal/workers"
)

// Update drains every worker's response queue to exhaustion (spec.md
// §4.4.5, §5: "the UI thread drains each worker's response queue to
// exhaustion before each render"). Responses whose oid no longer matches a
// loaded entry (e.g. the row was folded away) are silently dropped.
func (a *Adapter) Update() {
	for {
		resp, status := a.forkPoint.TryRecv()
		if status != workers.Received {
			break
		}
		if e := a.findByID(resp.OID); e != nil {
			e.ForkPoint = historyentry.Done(resp.IsAncestor)
		}
	}

	for {
		resp, status := a.subtree.TryRecv()
		if status != workers.Received {
			break
		}
		e := a.findByID(resp.OID)
		if e == nil {
			continue
		}
		e.Subtrees = resp.ModuleIDs
		e.URL = remotes.SelectURL(e.URL, resp.ModuleIDs, a.modules)
	}

	for {
		resp, status := a.pr.TryRecv()
		if status != workers.Received {
			break
		}
		e := a.findByID(resp.OID)
		if e == nil {
			continue
		}
		subject := resp.Subject
		e.SubjectOverride = &subject
	}
}

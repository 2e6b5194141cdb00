// Package workers implements the uniform background-worker contract from
// spec.md §4.3/§5: each worker is a single long-lived goroutine reading
// typed requests from an inbound channel and writing typed responses to an
// outbound channel. Requests are never reordered; responses correspond 1:1
// to successfully processed requests, tagged with a correlation id so a
// caller can match a response to the exact Send that produced it rather
// than relying solely on the target entry's (reusable) commit id.
//
// Grounded on internal/streamjson/manager.go's reader-goroutine-plus-channel
// pattern and internal/session/tracker.go's single-owner-goroutine style.
package workers

import "github.com/google/uuid"

// requestBuffer is generous enough that the UI thread's fire-and-forget
// Send never blocks in practice; the adapter only dispatches one request
// per newly fetched/unfolded entry per render cycle.
const requestBuffer = 4096

// newRequestID tags a request with a fresh correlation id at Send time.
func newRequestID() uuid.UUID { return uuid.New() }

// PollStatus is the outcome of a single non-blocking receive attempt.
type PollStatus int

const (
	// Empty means no response was waiting.
	Empty PollStatus = iota
	// Received means a response was returned.
	Received
	// Disconnected means the worker's output channel was closed.
	Disconnected
)

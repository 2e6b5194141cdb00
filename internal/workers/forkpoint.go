package workers

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/kalkin-go/glv/internal/vcsdriver"
)

var forkPointLog = log.New(log.Writer(), "[forkpoint] ", log.Flags())

// ForkPointRequest asks whether First is an ancestor of Second. OID is the
// entry the answer should be applied to (spec.md §4.4.5 matches responses
// back to entries by commit id, not by a handle). RequestID is assigned by
// Send and is not meant to be set by callers.
type ForkPointRequest struct {
	OID    string
	First  string
	Second string

	RequestID uuid.UUID
}

// ForkPointResponse answers a ForkPointRequest. RequestID echoes the
// request's correlation id (spec.md §4.3's 1:1 request/response guarantee).
type ForkPointResponse struct {
	OID        string
	IsAncestor bool

	RequestID uuid.UUID
}

// ForkPointWorker performs async ancestry probes (spec.md §4.3).
type ForkPointWorker struct {
	driver vcsdriver.Driver
	reqCh  chan ForkPointRequest
	respCh chan ForkPointResponse
}

func NewForkPointWorker(driver vcsdriver.Driver) *ForkPointWorker {
	return &ForkPointWorker{
		driver: driver,
		reqCh:  make(chan ForkPointRequest, requestBuffer),
		respCh: make(chan ForkPointResponse, requestBuffer),
	}
}

// Start launches the worker's background goroutine.
func (w *ForkPointWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Send enqueues a request; never blocks the caller in practice.
func (w *ForkPointWorker) Send(req ForkPointRequest) {
	req.RequestID = newRequestID()
	w.reqCh <- req
}

// TryRecv performs a single non-blocking poll.
func (w *ForkPointWorker) TryRecv() (ForkPointResponse, PollStatus) {
	select {
	case resp, ok := <-w.respCh:
		if !ok {
			return ForkPointResponse{}, Disconnected
		}
		return resp, Received
	default:
		return ForkPointResponse{}, Empty
	}
}

func (w *ForkPointWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.reqCh:
			if !ok {
				return
			}
			isAncestor, err := w.driver.IsAncestor(ctx, req.First, req.Second)
			if err != nil {
				forkPointLog.Printf("error: ancestry probe %s..%s: %v", req.First, req.Second, err)
				continue
			}
			select {
			case w.respCh <- ForkPointResponse{OID: req.OID, IsAncestor: isAncestor, RequestID: req.RequestID}:
			case <-ctx.Done():
				return
			}
		}
	}
}

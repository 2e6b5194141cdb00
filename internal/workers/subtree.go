package workers

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/kalkin-go/glv/internal/subtrees"
	"github.com/kalkin-go/glv/internal/vcsdriver"
)

var subtreeLog = log.New(log.Writer(), "[subtree] ", log.Flags())

// SubtreeRequest asks which configured subtree modules a commit touched.
// RequestID is assigned by Send and is not meant to be set by callers.
type SubtreeRequest struct {
	OID    string
	Bellow string

	RequestID uuid.UUID
}

// SubtreeResponse answers a SubtreeRequest with the touched module ids.
// RequestID echoes the request's correlation id.
type SubtreeResponse struct {
	OID       string
	ModuleIDs []string

	RequestID uuid.UUID
}

// SubtreeWorker classifies commits against a pre-configured module list
// (spec.md §4.3).
type SubtreeWorker struct {
	driver  vcsdriver.Driver
	modules subtrees.Config
	reqCh   chan SubtreeRequest
	respCh  chan SubtreeResponse
}

func NewSubtreeWorker(driver vcsdriver.Driver, modules subtrees.Config) *SubtreeWorker {
	return &SubtreeWorker{
		driver:  driver,
		modules: modules,
		reqCh:   make(chan SubtreeRequest, requestBuffer),
		respCh:  make(chan SubtreeResponse, requestBuffer),
	}
}

func (w *SubtreeWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubtreeWorker) Send(req SubtreeRequest) {
	req.RequestID = newRequestID()
	w.reqCh <- req
}

func (w *SubtreeWorker) TryRecv() (SubtreeResponse, PollStatus) {
	select {
	case resp, ok := <-w.respCh:
		if !ok {
			return SubtreeResponse{}, Disconnected
		}
		return resp, Received
	default:
		return SubtreeResponse{}, Empty
	}
}

func (w *SubtreeWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.reqCh:
			if !ok {
				return
			}
			paths, err := w.driver.ChangedPaths(ctx, req.Bellow, req.OID)
			if err != nil {
				subtreeLog.Printf("error: changed paths for %s: %v", req.OID, err)
				continue
			}
			ids := w.modules.Classify(paths)
			select {
			case w.respCh <- SubtreeResponse{OID: req.OID, ModuleIDs: ids, RequestID: req.RequestID}:
			case <-ctx.Done():
				return
			}
		}
	}
}

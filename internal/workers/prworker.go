package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/kalkin-go/glv/internal/forge"
)

var prLog = log.New(log.Writer(), "[prworker] ", log.Flags())

// PRRequest asks for a pull request's title, per spec.md §4.3. RequestID is
// assigned by Send and is not meant to be set by callers.
type PRRequest struct {
	OID  string
	URL  string
	PRID string

	RequestID uuid.UUID
}

// PRResponse carries the rendered subject override
// ("<title> (#<pr-id>)") for the matching entry. RequestID echoes the
// request's correlation id.
type PRResponse struct {
	OID     string
	Subject string

	RequestID uuid.UUID
}

// PRWorker fetches PR titles from a code-forge API. On a 401 it enters a
// stopped state and silently drops all subsequent requests, per spec.md
// §4.3: "to avoid flooding failed auth."
type PRWorker struct {
	reqCh   chan PRRequest
	respCh  chan PRResponse
	stopped bool

	// selectClient is forge.SelectClient by default; overridable in tests.
	selectClient func(url string) (forge.Client, string, string, bool)
}

func NewPRWorker() *PRWorker {
	return &PRWorker{
		reqCh:        make(chan PRRequest, requestBuffer),
		respCh:       make(chan PRResponse, requestBuffer),
		selectClient: forge.SelectClient,
	}
}

func (w *PRWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *PRWorker) Send(req PRRequest) {
	req.RequestID = newRequestID()
	w.reqCh <- req
}

func (w *PRWorker) TryRecv() (PRResponse, PollStatus) {
	select {
	case resp, ok := <-w.respCh:
		if !ok {
			return PRResponse{}, Disconnected
		}
		return resp, Received
	default:
		return PRResponse{}, Empty
	}
}

func (w *PRWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.reqCh:
			if !ok {
				return
			}
			if w.stopped {
				continue
			}
			w.handle(ctx, req)
		}
	}
}

func (w *PRWorker) handle(ctx context.Context, req PRRequest) {
	client, owner, repo, ok := w.selectClient(req.URL)
	if !ok {
		return
	}
	host := req.URL
	result := client.FetchPRTitle(host, owner, repo, req.PRID)

	switch result.Kind {
	case forge.Found:
		subject := fmt.Sprintf("%s (#%s)", result.Title, req.PRID)
		select {
		case w.respCh <- PRResponse{OID: req.OID, Subject: subject, RequestID: req.RequestID}:
		case <-ctx.Done():
		}
	case forge.NotFound:
		prLog.Printf("info: PR #%s not found for %s", req.PRID, req.OID)
	case forge.Unauthorized:
		prLog.Printf("error: unauthorized fetching PR #%s, stopping worker", req.PRID)
		w.stopped = true
	case forge.Errored:
		prLog.Printf("error: fetching PR #%s for %s: %v", req.PRID, req.OID, result.Err)
	}
}

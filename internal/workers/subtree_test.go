package workers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kalkin-go/glv/internal/subtrees"
)

func TestSubtreeWorker_ClassifiesModules(t *testing.T) {
	driver := &fakeDriver{changedPaths: map[string][]string{
		"c1": {"vendor/lib/a.go", "main.go"},
	}}
	modules := subtrees.Config{
		{ID: "lib", Path: "vendor/lib"},
		{ID: "docs", Path: "docs"},
	}
	w := NewSubtreeWorker(driver, modules)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Send(SubtreeRequest{OID: "c1", Bellow: "c0"})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		resp, status := w.TryRecv()
		if status == Received {
			if resp.OID != "c1" || !reflect.DeepEqual(resp.ModuleIDs, []string{"lib"}) {
				t.Errorf("got %+v, want OID=c1 ModuleIDs=[lib]", resp)
			}
			if resp.RequestID == (uuid.UUID{}) {
				t.Error("RequestID was not propagated from request to response")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for response")
}

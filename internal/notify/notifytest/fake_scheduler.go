package notifytest

import (
	"context"
	"sync"

	"github.com/avirtala/takaraja/internal/notify"
)

// RecordingScheduler captures schedule and cancel requests for assertions.
// Fail, when set, is returned from Schedule to exercise the best-effort
// notification path.
type RecordingScheduler struct {
	mu        sync.Mutex
	Scheduled []notify.Alert
	Cancelled []string
	Fail      error
}

func (r *RecordingScheduler) Schedule(ctx context.Context, a notify.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.Scheduled = append(r.Scheduled, a)
	return nil
}

func (r *RecordingScheduler) Cancel(ctx context.Context, alertID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, alertID)
	return nil
}

func (r *RecordingScheduler) CancelAll(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, ids...)
	return nil
}

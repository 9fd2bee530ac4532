package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-lms-api/pkg/mailer"
)

// Outbox records dispatched email jobs instead of sending them.
type Outbox struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob

	Fail error
}

func (o *Outbox) Dispatch(_ context.Context, job mailer.EmailJob) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Fail != nil {
		return o.Fail
	}
	if job.To == "" {
		return mailer.ErrNoRecipient
	}
	o.jobs = append(o.jobs, job)
	return nil
}

func (o *Outbox) Jobs() []mailer.EmailJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]mailer.EmailJob(nil), o.jobs...)
}

// Last returns the most recent job; ok is false when nothing was sent.
func (o *Outbox) Last() (job mailer.EmailJob, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.jobs) == 0 {
		return mailer.EmailJob{}, false
	}
	return o.jobs[len(o.jobs)-1], true
}

var _ mailer.Dispatcher = (*Outbox)(nil)

package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

// Dispatcher hands an email job to a delivery mechanism. Returning nil means
// the job was accepted, not necessarily delivered.
type Dispatcher interface {
	Dispatch(ctx context.Context, job EmailJob) error
}

// Sender delivers an already rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Publisher is the queue side of RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, kind string, body any) error
}

const JobKindEmail = "email"

var ErrNoRecipient = errors.New("mailer: job has no recipient")

// RenderJob resolves the subject and bodies of job, rendering its template when set.
func RenderJob(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	return templates.Render(job.Template, job.Data)
}

// QueueDispatcher publishes jobs for cmd/email_worker.
type QueueDispatcher struct {
	Pub Publisher
}

func NewQueueDispatcher(pub Publisher) *QueueDispatcher { return &QueueDispatcher{Pub: pub} }

func (d *QueueDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	if job.To == "" {
		return ErrNoRecipient
	}
	return d.Pub.PublishJSON(ctx, JobKindEmail, job)
}

// DirectDispatcher renders and sends in the request path.
type DirectDispatcher struct {
	Sender Sender
}

func NewDirectDispatcher(s Sender) *DirectDispatcher { return &DirectDispatcher{Sender: s} }

func (d *DirectDispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	if job.To == "" {
		return ErrNoRecipient
	}
	subject, text, html, err := RenderJob(job)
	if err != nil {
		return err
	}
	return d.Sender.Send(ctx, job.To, subject, text, html)
}

// LogDispatcher only logs the job. Used when MAIL_SEND_ENABLED=false.
type LogDispatcher struct {
	Logger *logrus.Logger
}

func NewLogDispatcher(l *logrus.Logger) *LogDispatcher { return &LogDispatcher{Logger: l} }

func (d *LogDispatcher) Dispatch(_ context.Context, job EmailJob) error {
	if job.To == "" {
		return ErrNoRecipient
	}
	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sending disabled; job dropped")
	}
	return nil
}

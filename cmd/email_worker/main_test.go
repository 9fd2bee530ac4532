package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
)

type stubSender struct {
	to, subject string
	err         error
}

func (s *stubSender) Send(_ context.Context, to, subject, _, _ string) error {
	s.to, s.subject = to, subject
	return s.err
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessSendsLiteralJob(t *testing.T) {
	s := &stubSender{}
	w := &worker{sender: s, logger: helpers.NopLogger()}
	out := w.process(context.Background(), mailer.JobKindEmail, body(t, mailer.EmailJob{To: "a@b.c", Subject: "hi", Text: "x"}))
	assert.Equal(t, ack, out)
	assert.Equal(t, "a@b.c", s.to)
	assert.Equal(t, "hi", s.subject)
}

func TestProcessOutcomes(t *testing.T) {
	w := &worker{sender: &stubSender{}, logger: helpers.NopLogger()}
	assert.Equal(t, drop, w.process(context.Background(), "", []byte("{")))
	assert.Equal(t, drop, w.process(context.Background(), "sms", body(t, mailer.EmailJob{To: "a@b.c"})))
	assert.Equal(t, drop, w.process(context.Background(), "", body(t, mailer.EmailJob{Subject: "no one"})))
	assert.Equal(t, drop, w.process(context.Background(), "", body(t, mailer.EmailJob{To: "a@b.c", Template: "nope"})))

	failing := &worker{sender: &stubSender{err: errors.New("mailgun down")}, logger: helpers.NopLogger()}
	assert.Equal(t, retry, failing.process(context.Background(), "", body(t, mailer.EmailJob{To: "a@b.c", Subject: "s"})))
}

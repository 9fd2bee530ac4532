package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	w := &worker{sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), logger: logger}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			w.handle(msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

type worker struct {
	sender mailer.Sender
	logger *logrus.Logger
}

// outcome says what to do with a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

func (w *worker) handle(msg amqp.Delivery) {
	switch w.process(context.Background(), msg.Type, msg.Body) {
	case ack:
		_ = msg.Ack(false)
	case drop:
		_ = msg.Nack(false, false)
	case retry:
		_ = msg.Nack(false, true)
	}
}

// process decodes, renders and sends one job. Malformed jobs are dropped,
// send failures are requeued.
func (w *worker) process(ctx context.Context, kind string, body []byte) outcome {
	if kind != "" && kind != mailer.JobKindEmail {
		w.logger.WithField("type", kind).Warn("unknown message type")
		return drop
	}
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	if job.To == "" {
		w.logger.Warn("message without recipient")
		return drop
	}
	subject, text, html, err := mailer.RenderJob(job)
	if err != nil {
		w.logger.WithError(err).WithField("template", job.Template).Error("render failed")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("to", job.To).Error("send failed")
		return retry
	}
	w.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return ack
}

package templates

import (
	"time"

	"github.com/oksasatya/go-lms-api/config"
)

type Option func(*EmailData)

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithOrder(orderID, courseName string, price float64, at time.Time) Option {
	return func(d *EmailData) {
		// short reference, like a receipt number
		if len(orderID) > 8 {
			orderID = orderID[:8]
		}
		d.OrderID = orderID
		d.CourseName = courseName
		d.CoursePrice = price
		d.OrderDate = at.UTC().Format("January 2, 2006")
	}
}

func WithQuestion(courseName, question, answer string) Option {
	return func(d *EmailData) {
		d.CourseName = courseName
		d.Question = question
		d.Answer = answer
	}
}

// NewBaseEmailData fills branding fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, Type: typ}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.CompanyName = cfg.CompanyName
		d.CompanyAddress = cfg.CompanyAddress
		d.LogoURL = cfg.LogoURL
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewActivationData(cfg *config.Config, name, email, code string, expiresAt time.Time) map[string]any {
	d := NewBaseEmailData(cfg, Activation, name, email, WithExpiresAt(expiresAt))
	d.ActivationCode = code
	return ToMap(d)
}

func NewOrderConfirmationData(cfg *config.Config, name, email, orderID, courseName string, price float64, at time.Time) map[string]any {
	return ToMap(NewBaseEmailData(cfg, OrderConfirmation, name, email, WithOrder(orderID, courseName, price, at)))
}

func NewQuestionReplyData(cfg *config.Config, name, email, courseName, question, answer string) map[string]any {
	return ToMap(NewBaseEmailData(cfg, QuestionReply, name, email, WithQuestion(courseName, question, answer)))
}

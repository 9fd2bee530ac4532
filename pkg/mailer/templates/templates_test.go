package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/config"
)

func TestRenderActivation(t *testing.T) {
	cfg := &config.Config{AppName: "Academy"}
	data := NewActivationData(cfg, "Ana", "ana@example.com", "4821", time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC))

	subject, text, html, err := Render(Activation, data)
	require.NoError(t, err)
	assert.Equal(t, "Academy: activate your account", subject)
	assert.Contains(t, text, "4821")
	assert.Contains(t, text, "02 January 2026, 03:04 UTC")
	assert.Contains(t, html, "4821")
}

func TestRenderOrderConfirmation(t *testing.T) {
	data := NewOrderConfirmationData(nil, "Ana", "ana@example.com", "0123456789abcdef", "Go Basics", 49.5, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))

	subject, text, html, err := Render(OrderConfirmation, data)
	require.NoError(t, err)
	assert.Equal(t, "Order confirmation: Go Basics", subject)
	assert.Contains(t, text, "#01234567")
	assert.Contains(t, text, "$49.50")
	assert.Contains(t, html, "March 9, 2026")
}

func TestRenderQuestionReplyEscapesHTML(t *testing.T) {
	data := NewQuestionReplyData(nil, "Ana", "ana@example.com", "Go Basics", "<b>why?</b>", "because")

	_, text, html, err := Render(QuestionReply, data)
	require.NoError(t, err)
	assert.Contains(t, text, "<b>why?</b>")
	assert.NotContains(t, html, "<b>why?</b>")
	assert.Contains(t, html, "&lt;b&gt;why?&lt;/b&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

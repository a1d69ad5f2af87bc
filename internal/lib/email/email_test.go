package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (r *recordingSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, params)
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		body, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, body)
	}
}

func TestSendFormReceivedEmail(t *testing.T) {
	logger := zerolog.Nop()
	rec := &recordingSender{}
	c := &Client{emails: rec, from: "Support <support@example.com>", logger: &logger}

	require.NoError(t, c.SendFormReceivedEmail(context.Background(), "jane@example.com", "Jane <b>"))

	require.Len(t, rec.sent, 1)
	msg := rec.sent[0]
	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Equal(t, "Support <support@example.com>", msg.From)
	assert.Contains(t, msg.Html, "Hi Jane &lt;b&gt;,")
}

func TestSendEmailFailure(t *testing.T) {
	logger := zerolog.Nop()
	c := &Client{emails: &recordingSender{err: errors.New("provider down")}, logger: &logger}

	err := c.SendFormReceivedEmail(context.Background(), "jane@example.com", "Jane")
	assert.ErrorContains(t, err, "provider down")
}

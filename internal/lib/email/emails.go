package email

import "context"

// SendFormReceivedEmail acknowledges a contact form submission.
func (c *Client) SendFormReceivedEmail(ctx context.Context, to, name string) error {
	data := map[string]string{
		"Name": name,
	}

	return c.SendEmail(
		ctx,
		to,
		"We received your message",
		TemplateFormReceived,
		data,
	)
}

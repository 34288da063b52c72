// Package resend implements the Sender interface on top of the Resend
// HTTP API, for campaigns that cannot speak SMTP directly.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/heraldmail/herald/pkg/mailer"
)

// Sender delivers messages through the Resend API.
type Sender struct {
	client *resend.Client
	cfg    Config
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = mailer.Address(s.cfg.SenderName, s.cfg.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = make([]*resend.Attachment, len(email.Attachments))
		for i, part := range email.Attachments {
			req.Attachments[i] = &resend.Attachment{
				Filename:    part.Filename,
				ContentType: part.ContentType,
				Content:     part.Content,
			}
		}
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: sending message: %w", err)
	}
	return nil
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return "resend" }

// Close implements mailer.Sender. The API client is stateless.
func (s *Sender) Close() error { return nil }

// Package stdout implements a Sender that prints messages instead of
// delivering them, backing dry runs and local development.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heraldmail/herald/pkg/mailer"
)

// Sender prints each message in a human-readable form.
type Sender struct {
	w io.Writer
}

// New creates a stdout sender writing to os.Stdout.
func New() *Sender {
	return &Sender{w: os.Stdout}
}

// NewWithWriter creates a sender writing to w, useful in tests.
func NewWithWriter(w io.Writer) *Sender {
	return &Sender{w: w}
}

// Send implements mailer.Sender. It never fails.
func (s *Sender) Send(_ context.Context, email *mailer.Email) error {
	var b strings.Builder

	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "From: %s\n", email.From)
	fmt.Fprintf(&b, "To: %s\n", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\n", email.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	b.WriteString(email.Text)
	if !strings.HasSuffix(email.Text, "\n") {
		b.WriteString("\n")
	}

	if len(email.Attachments) > 0 {
		names := make([]string, 0, len(email.Attachments))
		for _, part := range email.Attachments {
			names = append(names, fmt.Sprintf("%s (%s)", part.Filename, formatSize(part.Size())))
		}
		fmt.Fprintf(&b, "Attachments: %s\n", strings.Join(names, ", "))
	}
	b.WriteString("----------------------------------------\n")

	_, err := io.WriteString(s.w, b.String())
	return err
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return "stdout" }

// Close implements mailer.Sender.
func (s *Sender) Close() error { return nil }

// formatSize renders a byte count for humans.
func formatSize(n int64) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

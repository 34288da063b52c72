package campaign

import (
	"fmt"
	"strings"

	"github.com/heraldmail/herald/pkg/recipients"
)

// DefaultEmailColumn is the recipient column consulted for the delivery
// address when the campaign does not name one.
const DefaultEmailColumn = "email"

// Campaign describes one bulk send: what to say, who says it, and to whom.
// Subject and body are templates evaluated against each recipient's fields.
type Campaign struct {
	// Subject is the subject template, rendered per recipient.
	Subject string

	// Body is the body template, rendered per recipient. When HTMLBody is
	// set the rendered text is additionally converted to a sanitized HTML
	// alternative.
	Body string

	// HTMLBody enables the HTML alternative part.
	HTMLBody bool

	// Sender is the envelope and From address. Required.
	Sender string

	// SenderName, when set, becomes the From display name.
	SenderName string

	// ReplyTo, when set, is carried as the Reply-To header.
	ReplyTo string

	// EmailColumn names the recipient column holding the delivery address.
	// Empty means DefaultEmailColumn.
	EmailColumn string

	// AttachmentPaths are files attached to every message. They are read
	// and validated once, before the first send.
	AttachmentPaths []string

	// Recipients is the ordered recipient list. Order is preserved in
	// outcomes and events.
	Recipients []recipients.Record
}

func (c *Campaign) emailColumn() string {
	if c.EmailColumn == "" {
		return DefaultEmailColumn
	}
	return c.EmailColumn
}

// Validate reports conditions that would make every send fail.
func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Sender) == "" {
		return fmt.Errorf("%w: sender address is required", ErrInvalidCampaign)
	}
	if strings.TrimSpace(c.Subject) == "" {
		return fmt.Errorf("%w: subject template is empty", ErrInvalidCampaign)
	}
	if strings.TrimSpace(c.Body) == "" {
		return fmt.Errorf("%w: body template is empty", ErrInvalidCampaign)
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidCampaign)
	}
	return nil
}

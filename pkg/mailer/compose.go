package mailer

import "github.com/heraldmail/herald/pkg/attachment"

// ComposeParams carries everything needed to assemble one message.
type ComposeParams struct {
	Sender      string             // sender address (required)
	SenderName  string             // optional display name
	ReplyTo     string             // optional reply-to address
	Recipients  []string           // at least one required
	Subject     string             // rendered subject
	Body        string             // rendered plain-text body
	HTMLBody    string             // optional rendered HTML body
	Attachments []*attachment.Part // pre-built shared parts
}

// Compose assembles an Email from rendered content and attachment parts.
// It is pure assembly: no network access and no file I/O. The plain-text
// body part is always present; the HTML part only when provided;
// attachments keep their build order after the body parts.
func Compose(params ComposeParams) (*Email, error) {
	if len(params.Recipients) == 0 {
		return nil, ErrNoRecipient
	}
	if params.Sender == "" {
		return nil, ErrNoSender
	}

	return &Email{
		From:        Address(params.SenderName, params.Sender),
		ReplyTo:     params.ReplyTo,
		To:          params.Recipients,
		Subject:     params.Subject,
		Text:        params.Body,
		HTML:        params.HTMLBody,
		Attachments: params.Attachments,
	}, nil
}

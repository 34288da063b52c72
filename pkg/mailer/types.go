package mailer

import (
	"fmt"

	"github.com/heraldmail/herald/pkg/attachment"
)

// Email is a fully-composed message ready for delivery.
type Email struct {
	Headers     map[string]string  // extra headers, set verbatim
	From        string             // sender address, RFC 5322 formatted
	ReplyTo     string             // optional reply-to address
	Subject     string             // rendered subject line
	Text        string             // plain-text body, always present
	HTML        string             // optional HTML alternative
	To          []string           // recipient addresses
	Attachments []*attachment.Part // appended after the body parts, in order
}

// Address formats a display name and address into RFC 5322 form.
// Returns "Name <addr>" when a name is given, otherwise just the address.
func Address(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

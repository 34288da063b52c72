// Package mailer assembles outbound email messages and defines the Sender
// interface that delivery providers implement.
//
// Compose turns rendered subject and body text, optional HTML, and
// pre-built attachment parts into an Email. The Email's Raw method
// produces the RFC 822 wire form: a multipart/mixed container holding a
// multipart/alternative body (plain text always, HTML when present)
// followed by the attachments in the order they were built.
//
// Delivery backends live in subpackages: smtp (the core transport),
// stdout (dry runs), resend, and ses. All of them consume the same Email
// through the Sender interface, so campaign code never depends on a
// concrete provider.
package mailer

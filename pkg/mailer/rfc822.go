package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heraldmail/herald/pkg/attachment"
)

const (
	mailerIdentifier = "herald/1.0"
	base64LineLength = 76
	crlf             = "\r\n"
)

// Raw encodes the message in RFC 822 wire form. Messages with an HTML
// alternative or attachments become multipart; plain text-only messages
// stay single-part.
func (e *Email) Raw() ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, "From", e.From)
	writeHeader(&buf, "To", strings.Join(e.To, ", "))
	if e.ReplyTo != "" {
		writeHeader(&buf, "Reply-To", e.ReplyTo)
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("UTF-8", e.Subject))
	writeHeader(&buf, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID(e.From))
	writeHeader(&buf, "X-Mailer", mailerIdentifier)
	writeHeader(&buf, "MIME-Version", "1.0")
	for k, v := range e.Headers {
		writeHeader(&buf, k, v)
	}

	if len(e.Attachments) == 0 && e.HTML == "" {
		writeHeader(&buf, "Content-Type", `text/plain; charset=UTF-8`)
		writeHeader(&buf, "Content-Transfer-Encoding", "8bit")
		buf.WriteString(crlf)
		buf.WriteString(e.Text)
		return buf.Bytes(), nil
	}

	mixed := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", mixed.Boundary()))
	buf.WriteString(crlf)

	if err := writeBody(mixed, e.Text, e.HTML); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	for _, part := range e.Attachments {
		if err := writeAttachment(mixed, part); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrEncodeFailed, part.Filename, err)
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString(crlf)
}

// messageID derives a unique Message-ID, using the sender's domain when
// one can be extracted from the address.
func messageID(from string) string {
	domain := "herald.local"
	addr := from
	if i := strings.LastIndexByte(addr, '<'); i >= 0 {
		addr = strings.TrimRight(addr[i+1:], ">")
	}
	if i := strings.LastIndexByte(addr, '@'); i >= 0 && i < len(addr)-1 {
		domain = addr[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// writeBody emits the body as a nested multipart/alternative when an HTML
// part exists, or a single text part otherwise. The plain-text part always
// comes first so clients prefer the richer alternative.
func writeBody(mixed *multipart.Writer, text, html string) error {
	if html == "" {
		return writeTextPart(mixed, "text/plain", text)
	}

	var nested bytes.Buffer
	alt := multipart.NewWriter(&nested)
	if err := writeTextPart(alt, "text/plain", text); err != nil {
		return err
	}
	if err := writeTextPart(alt, "text/html", html); err != nil {
		return err
	}
	if err := alt.Close(); err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary()))
	w, err := mixed.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = w.Write(nested.Bytes())
	return err
}

func writeTextPart(w *multipart.Writer, contentType, body string) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType+"; charset=UTF-8")
	header.Set("Content-Transfer-Encoding", "8bit")
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write([]byte(body))
	return err
}

// writeAttachment emits one attachment part. Text parts travel as 8bit
// UTF-8; everything else is base64 with RFC 2045 line wrapping.
func writeAttachment(w *multipart.Writer, part *attachment.Part) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", part.Disposition())

	if part.Kind == attachment.KindText {
		header.Set("Content-Type", part.ContentType+"; charset=UTF-8")
		header.Set("Content-Transfer-Encoding", "8bit")
		out, err := w.CreatePart(header)
		if err != nil {
			return err
		}
		_, err = out.Write(part.Content)
		return err
	}

	header.Set("Content-Type", part.ContentType)
	header.Set("Content-Transfer-Encoding", "base64")
	out, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = out.Write([]byte(wrapBase64(part.Content)))
	return err
}

// wrapBase64 encodes data and folds it at 76 columns per RFC 2045.
func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(encoded) > base64LineLength {
		b.WriteString(encoded[:base64LineLength])
		b.WriteString(crlf)
		encoded = encoded[base64LineLength:]
	}
	b.WriteString(encoded)
	return b.String()
}

// Package smtp implements the Sender interface over a direct SMTP
// connection, supporting implicit TLS, STARTTLS upgrades, and PLAIN
// authentication. Each Send opens and cleanly closes its own connection.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/heraldmail/herald/pkg/mailer"
)

// Sender delivers messages over SMTP. It is safe for reuse across sends
// but holds no connection between calls.
type Sender struct {
	log *slog.Logger
	cfg Config
}

// New creates an SMTP sender. A nil logger disables logging.
func New(cfg Config, log *slog.Logger) *Sender {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Sender{cfg: cfg, log: log}
}

// Send implements mailer.Sender. The exchange is bounded by the
// configured timeout and the context, whichever ends first; the
// connection is closed on every exit path.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	raw, err := email.Raw()
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "connecting to smtp server",
		slog.String("host", s.cfg.Host),
		slog.Int("port", s.cfg.Port),
		slog.String("username", s.cfg.Username),
	)

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Quit politely; fall back to a hard close if the server is gone.
		if qerr := client.Quit(); qerr != nil {
			_ = client.Close()
		}
	}()

	if err := s.authenticate(client); err != nil {
		return err
	}
	if err := s.exchange(client, email, raw); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "message accepted by server",
		slog.String("to", email.To[0]),
		slog.Int("recipients", len(email.To)),
		slog.Int("attachments", len(email.Attachments)),
	)
	return nil
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return "smtp" }

// Close implements mailer.Sender. Connections are per-call, so there is
// nothing to release.
func (s *Sender) Close() error { return nil }

// dial connects and negotiates TLS according to the configuration:
// implicit TLS when UseSSL, otherwise plaintext with an optional STARTTLS
// upgrade before authentication.
func (s *Sender) dial(ctx context.Context) (*smtp.Client, error) {
	timeout := s.cfg.timeout()
	dialer := net.Dialer{Timeout: timeout}

	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.addr())
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrConnection, s.cfg.addr(), err)
	}
	// One deadline bounds the whole exchange, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if s.cfg.UseSSL {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: s.cfg.Host})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: tls handshake: %v", ErrConnection, err)
		}
		client, err := smtp.NewClient(tlsConn, s.cfg.Host)
		if err != nil {
			_ = tlsConn.Close()
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		return client, nil
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if s.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%w: starttls upgrade: %v", ErrConnection, err)
		}
	}
	return client, nil
}

// authenticate performs PLAIN auth, distinguishing rejected credentials
// from transport failures.
func (s *Sender) authenticate(client *smtp.Client) error {
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		if isNetworkError(err) {
			return fmt.Errorf("%w: during auth: %v", ErrConnection, err)
		}
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return nil
}

// exchange runs MAIL FROM / RCPT TO / DATA for the message. The envelope
// sender comes from the message's From header so it matches what
// recipients see; the login name is only a fallback.
func (s *Sender) exchange(client *smtp.Client, email *mailer.Email, raw []byte) error {
	if err := client.Mail(envelopeFrom(email.From, s.cfg.Username)); err != nil {
		return classifyExchangeError("mail from", err)
	}
	for _, rcpt := range email.To {
		if err := client.Rcpt(rcpt); err != nil {
			return classifyExchangeError("rcpt to", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return classifyExchangeError("data", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return classifyExchangeError("data write", err)
	}
	if err := w.Close(); err != nil {
		return classifyExchangeError("data close", err)
	}
	return nil
}

// envelopeFrom extracts the bare address from a From header value, which
// may carry a display name.
func envelopeFrom(from, fallback string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return fallback
}

// classifyExchangeError maps a mid-exchange failure to the transport's
// error taxonomy: server replies are protocol rejections, anything else
// is a connection failure.
func classifyExchangeError(stage string, err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return fmt.Errorf("%w: %s: %v", ErrProtocol, stage, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrConnection, stage, err)
}

// isNetworkError reports whether err originates from the socket rather
// than a server reply.
func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

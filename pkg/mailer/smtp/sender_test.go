package smtp

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldmail/herald/pkg/mailer"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTimeout, Config{}.timeout())
	assert.Equal(t, 5*time.Second, Config{Timeout: 5 * time.Second}.timeout())
	assert.Equal(t, "smtp.example.com:587", Config{Host: "smtp.example.com", Port: 587}.addr())
}

// fakeServer speaks just enough SMTP for the client to complete or fail an
// exchange. Reply overrides map command prefixes to canned responses. The
// returned getter yields the commands received so far.
func fakeServer(t *testing.T, overrides map[string]string) (Config, func() []string, func()) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var commands []string
	received := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), commands...)
	}

	reply := func(cmd string) string {
		for prefix, r := range overrides {
			if strings.HasPrefix(cmd, prefix) {
				return r
			}
		}
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			return "250-localhost\r\n250 AUTH PLAIN LOGIN"
		case strings.HasPrefix(cmd, "AUTH"):
			return "235 ok"
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
			return "250 ok"
		case strings.HasPrefix(cmd, "DATA"):
			return "354 go ahead"
		case strings.HasPrefix(cmd, "QUIT"):
			return "221 bye"
		default:
			return "250 ok"
		}
	}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		w := bufio.NewWriter(conn)
		r := bufio.NewReader(conn)
		w.WriteString("220 localhost ESMTP\r\n")
		w.Flush()

		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			mu.Lock()
			commands = append(commands, line)
			mu.Unlock()

			if inData {
				if line == "." {
					inData = false
					w.WriteString("250 accepted\r\n")
					w.Flush()
				}
				continue
			}

			resp := reply(line)
			w.WriteString(resp + "\r\n")
			w.Flush()

			if strings.HasPrefix(line, "DATA") && strings.HasPrefix(resp, "354") {
				inData = true
			}
			if strings.HasPrefix(line, "QUIT") {
				return
			}
		}
	}()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := Config{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "user@example.com",
		Password: "secret",
		UseTLS:   false,
		UseSSL:   false,
		Timeout:  2 * time.Second,
	}
	return cfg, received, func() { ln.Close() }
}

func testEmail() *mailer.Email {
	return &mailer.Email{
		From:    "user@example.com",
		To:      []string{"rcpt@example.com"},
		Subject: "Hello",
		Text:    "body",
	}
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	cfg, _, shutdown := fakeServer(t, nil)
	defer shutdown()

	sender := New(cfg, nil)
	require.NoError(t, sender.Send(context.Background(), testEmail()))
	require.NoError(t, sender.Close())
	assert.Equal(t, "smtp", sender.Name())
}

func TestSender_AuthenticationRejected(t *testing.T) {
	t.Parallel()

	cfg, _, shutdown := fakeServer(t, map[string]string{"AUTH": "535 bad credentials"})
	defer shutdown()

	err := New(cfg, nil).Send(context.Background(), testEmail())
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestSender_RecipientRejected(t *testing.T) {
	t.Parallel()

	cfg, _, shutdown := fakeServer(t, map[string]string{"RCPT": "550 no such user"})
	defer shutdown()

	err := New(cfg, nil).Send(context.Background(), testEmail())
	require.ErrorIs(t, err, ErrProtocol)
}

func TestSender_ConnectionRefused(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	ln.Close() // nothing listens here anymore

	cfg := Config{
		Host: "127.0.0.1", Port: port,
		Username: "u", Password: "p",
		Timeout: time.Second,
	}
	err = New(cfg, nil).Send(context.Background(), testEmail())
	require.ErrorIs(t, err, ErrConnection)
}

func TestSender_EnvelopeUsesFromHeader(t *testing.T) {
	t.Parallel()

	cfg, received, shutdown := fakeServer(t, nil)
	defer shutdown()

	email := testEmail()
	email.From = "News Desk <news@example.com>"

	require.NoError(t, New(cfg, nil).Send(context.Background(), email))

	// The envelope sender follows the From header, not the login name.
	var mailFrom string
	for _, cmd := range received() {
		if strings.HasPrefix(cmd, "MAIL FROM:") {
			mailFrom = cmd
		}
	}
	assert.Contains(t, mailFrom, "<news@example.com>")
}

func TestEnvelopeFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", envelopeFrom("a@x.com", "login@x.com"))
	assert.Equal(t, "a@x.com", envelopeFrom("Alice <a@x.com>", "login@x.com"))
	assert.Equal(t, "login@x.com", envelopeFrom("", "login@x.com"))
	assert.Equal(t, "login@x.com", envelopeFrom("not an address <<", "login@x.com"))
}

func TestClassifyExchangeError(t *testing.T) {
	t.Parallel()

	protoErr := &net.OpError{Op: "read", Err: context.DeadlineExceeded}
	require.ErrorIs(t, classifyExchangeError("rcpt to", protoErr), ErrConnection)
}

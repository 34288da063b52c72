package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldmail/herald/internal/config"
)

func TestBuildCampaign(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recipients.csv")
	bodyPath := filepath.Join(dir, "body.md")
	require.NoError(t, os.WriteFile(csvPath, []byte("email,name\na@x.com,Alice\nb@x.com,Bob\n"), 0o644))
	require.NoError(t, os.WriteFile(bodyPath, []byte("Hello {{name}}"), 0o644))

	cfg := config.Default()
	cfg.Email.Sender = "news@example.com"
	cfg.Email.Subject = "Hi {{name}}"
	cfg.Files.Recipients = csvPath
	cfg.Files.Body = bodyPath

	c, err := buildCampaign(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "Hi {{name}}", c.Subject)
	assert.Equal(t, "Hello {{name}}", c.Body)
	assert.Equal(t, "news@example.com", c.Sender)
	require.Len(t, c.Recipients, 2)
	assert.Equal(t, "a@x.com", c.Recipients[0].Get("email"))
	require.NoError(t, c.Validate())
}

func TestBuildCampaign_MissingInputs(t *testing.T) {
	cfg := config.Default()
	_, err := buildCampaign(&cfg)
	assert.ErrorContains(t, err, "recipient")

	cfg.Files.Recipients = filepath.Join(t.TempDir(), "missing.csv")
	_, err = buildCampaign(&cfg)
	assert.Error(t, err)
}

func TestTestBody_SettingsSummary(t *testing.T) {
	cfg := config.Default()
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Username = "herald"
	cfg.SMTP.Password = "hunter2"
	cfg.Email.Sender = "news@example.com"

	body := testBody(&cfg, "")
	assert.Contains(t, body, "provider: smtp")
	assert.Contains(t, body, "server: smtp.example.com:587")
	assert.Contains(t, body, "security: starttls")
	assert.Contains(t, body, "username: herald")
	assert.Contains(t, body, "sender: news@example.com")
	assert.NotContains(t, body, "hunter2")

	withBody := testBody(&cfg, "Dear {{name}},")
	assert.True(t, strings.HasPrefix(withBody, "Dear {{name}},"))
	assert.Contains(t, withBody, "Delivery settings:")

	cfg.SMTP.UseTLS = false
	assert.Contains(t, testBody(&cfg, ""), "security: none")
	cfg.SMTP.UseSSL = true
	assert.Contains(t, testBody(&cfg, ""), "security: ssl")

	cfg.Provider = config.ProviderStdout
	plain := testBody(&cfg, "")
	assert.Contains(t, plain, "provider: stdout")
	assert.NotContains(t, plain, "server:")
}

func TestLoadBody(t *testing.T) {
	cfg := config.Default()
	_, err := loadBody(&cfg)
	assert.ErrorContains(t, err, "body")

	path := filepath.Join(t.TempDir(), "body.md")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	cfg.Files.Body = path

	body, err := loadBody(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "content", body)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldmail/herald/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "herald.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
smtp:
  server: smtp.example.com
  username: herald
  password: secret
email:
  sender: news@example.com
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.ProviderSMTP, cfg.Provider)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseTLS)
	assert.Equal(t, "rich", cfg.Email.Engine)
	assert.Equal(t, "email", cfg.Email.EmailColumn)
	assert.Equal(t, 25, cfg.MaxAttachmentMB)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
provider: resend
resend:
  api_key: re_123
email:
  sender: news@example.com
  engine: basic
  email_column: correo
max_attachment_mb: 10
files:
  recipients: people.csv
  attachments:
    - a.pdf
    - b.png
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "resend", cfg.Provider)
	assert.Equal(t, "basic", cfg.Email.Engine)
	assert.Equal(t, "correo", cfg.Email.EmailColumn)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxAttachmentSize())
	assert.Equal(t, []string{"a.pdf", "b.png"}, cfg.Files.Attachments)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	t.Parallel()

	// A localhost relay with no TLS at all: use_tls defaults to true and
	// must be switchable off by the file.
	path := writeConfig(t, `
smtp:
  server: localhost
  port: 1025
  username: herald
  password: secret
  use_tls: false
email:
  sender: news@example.com
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.SMTP.UseTLS)
	assert.False(t, cfg.SMTP.UseSSL)
	assert.Equal(t, 1025, cfg.SMTP.Port)
	// Fields the file does not mention keep their defaults.
	assert.Equal(t, "rich", cfg.Email.Engine)
	assert.Equal(t, 25, cfg.MaxAttachmentMB)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "provider: [not, a, string")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() config.Config {
		cfg := config.Default()
		cfg.SMTP.Host = "smtp.example.com"
		cfg.SMTP.Username = "herald"
		cfg.SMTP.Password = "secret"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.Provider = "carrier-pigeon"
		assert.Error(t, cfg.Validate())
	})

	t.Run("smtp incomplete", func(t *testing.T) {
		cfg := base()
		cfg.SMTP.Password = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("ses needs region", func(t *testing.T) {
		cfg := base()
		cfg.Provider = config.ProviderSES
		assert.Error(t, cfg.Validate())
		cfg.SES.Region = "eu-west-1"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("stdout needs nothing", func(t *testing.T) {
		cfg := config.Default()
		cfg.Provider = config.ProviderStdout
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown engine", func(t *testing.T) {
		cfg := base()
		cfg.Email.Engine = "mustache"
		assert.Error(t, cfg.Validate())
	})
}

func TestMerge_FlagsWin(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Files.Recipients = "from-file.csv"
	cfg.Email.Subject = "File subject"

	require.NoError(t, cfg.Merge(config.Config{
		Files: config.Files{Recipients: "from-flag.csv"},
	}))

	assert.Equal(t, "from-flag.csv", cfg.Files.Recipients)
	assert.Equal(t, "File subject", cfg.Email.Subject)
}

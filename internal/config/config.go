// Package config loads and validates the herald configuration file.
//
// The file is YAML, decoded over the defaults so explicit false and zero
// values are honored. Every field has a sensible default; a minimal
// working config names only the SMTP account and the sender address.
// Values given on the command line are merged over the file with
// dario.cat/mergo, so set flags always win.
package config

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/heraldmail/herald/pkg/attachment"
	"github.com/heraldmail/herald/pkg/logger"
	"github.com/heraldmail/herald/pkg/mailer/resend"
	"github.com/heraldmail/herald/pkg/mailer/ses"
	"github.com/heraldmail/herald/pkg/mailer/smtp"
	"github.com/heraldmail/herald/pkg/render"
)

// Provider names accepted in the provider field.
const (
	ProviderSMTP   = "smtp"
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderStdout = "stdout"
)

// Config is the full herald configuration.
type Config struct {
	// Provider selects the delivery backend. Default is smtp; stdout
	// prints messages instead of sending and is what --dry-run uses.
	Provider string `yaml:"provider"`

	SMTP   smtp.Config   `yaml:"smtp"`
	SES    ses.Config    `yaml:"ses"`
	Resend resend.Config `yaml:"resend"`

	Email Email `yaml:"email"`
	Files Files `yaml:"files"`

	// MaxAttachmentMB caps individual attachment size in megabytes.
	MaxAttachmentMB int `yaml:"max_attachment_mb"`

	Log logger.Options `yaml:"log"`
}

// Email holds message-level settings shared by every campaign.
type Email struct {
	// Sender is the From address. Required for real sends.
	Sender string `yaml:"sender"`

	// SenderName is the optional From display name.
	SenderName string `yaml:"sender_name"`

	// ReplyTo is carried as the Reply-To header when set.
	ReplyTo string `yaml:"reply_to"`

	// Subject is the subject template; placeholders are allowed.
	Subject string `yaml:"subject"`

	// TestRecipient receives the message sent by the test command.
	TestRecipient string `yaml:"test_recipient"`

	// Engine selects template processing: rich or basic.
	Engine string `yaml:"engine"`

	// HTML enables the markdown-to-HTML alternative part.
	HTML bool `yaml:"html"`

	// EmailColumn names the recipient column with the delivery address.
	EmailColumn string `yaml:"email_column"`
}

// Files points at the campaign inputs.
type Files struct {
	// Recipients is the recipient CSV path.
	Recipients string `yaml:"recipients"`

	// Body is the body template file path.
	Body string `yaml:"body"`

	// Attachments are files attached to every message.
	Attachments []string `yaml:"attachments"`
}

// Default returns the configuration used when the file sets nothing.
func Default() Config {
	return Config{
		Provider: ProviderSMTP,
		SMTP: smtp.Config{
			Port:    587,
			UseTLS:  true,
			Timeout: smtp.DefaultTimeout,
		},
		Email: Email{
			Engine:      render.EngineRich,
			EmailColumn: "email",
		},
		MaxAttachmentMB: 25,
	}
}

// Load reads the YAML file at path over the defaults. Decoding straight
// into the default struct keeps explicit false and zero values from the
// file, which a struct merge would mistake for "unset". A missing file is
// an error; use Default directly when no file is wanted.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays non-zero fields of other onto c. Used for command-line
// flag overrides.
func (c *Config) Merge(other Config) error {
	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("config: merging overrides: %w", err)
	}
	return nil
}

// Validate checks the parts every command needs. Provider credentials are
// checked only for the selected provider.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider) {
	case ProviderSMTP:
		if err := c.SMTP.Validate(); err != nil {
			return err
		}
	case ProviderSES:
		if c.SES.Region == "" {
			return fmt.Errorf("config: ses provider requires a region")
		}
	case ProviderResend:
		if c.Resend.APIKey == "" {
			return fmt.Errorf("config: resend provider requires an api_key")
		}
	case ProviderStdout:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}

	if _, err := render.NewEngine(c.Email.Engine); err != nil {
		return err
	}
	if c.MaxAttachmentMB <= 0 {
		return fmt.Errorf("config: max_attachment_mb must be positive, got %d", c.MaxAttachmentMB)
	}
	return nil
}

// MaxAttachmentSize returns the attachment cap in bytes.
func (c *Config) MaxAttachmentSize() int64 {
	if c.MaxAttachmentMB <= 0 {
		return attachment.DefaultMaxSize
	}
	return int64(c.MaxAttachmentMB) * 1024 * 1024
}

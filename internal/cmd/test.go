package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/heraldmail/herald/internal/config"
	"github.com/heraldmail/herald/pkg/campaign"
	"github.com/heraldmail/herald/pkg/recipients"
	"github.com/heraldmail/herald/pkg/render"
)

var testCmd = &cobra.Command{
	Use:   "test [address]",
	Short: "Send one test message before running the campaign",
	Long: `Test sends a single message to the given address, or to
email.test_recipient from the config when no address is given. The
message carries a summary of the active delivery settings (password
excluded), appended to the campaign body when one is configured.

When a recipient file is configured, the first row supplies the template
data, so the test message looks exactly like the real one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, slogger, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer closeLog()

		if err := cfg.Validate(); err != nil {
			return err
		}

		addr := cfg.Email.TestRecipient
		if len(args) == 1 {
			addr = args[0]
		}
		if addr == "" {
			return fmt.Errorf("no test recipient: pass an address or set email.test_recipient")
		}

		// The campaign body is optional here: without one the message is
		// the settings summary alone.
		body := ""
		if cfg.Files.Body != "" {
			body, err = loadBody(cfg)
			if err != nil {
				return err
			}
		}
		body = testBody(cfg, body)

		subject := cfg.Email.Subject
		if subject == "" {
			subject = "herald delivery test"
		}

		// Template data comes from the first real recipient when a file is
		// configured, so placeholders render with representative values.
		fields := map[string]string{}
		if cfg.Files.Recipients != "" {
			list, err := recipients.Load(cfg.Files.Recipients)
			if err != nil {
				return err
			}
			if list.Len() > 0 {
				fields = list.Records[0].Fields()
			}
		}
		fields[cfg.Email.EmailColumn] = addr

		c := &campaign.Campaign{
			Subject:         subject,
			Body:            body,
			HTMLBody:        cfg.Email.HTML,
			Sender:          cfg.Email.Sender,
			SenderName:      cfg.Email.SenderName,
			ReplyTo:         cfg.Email.ReplyTo,
			EmailColumn:     cfg.Email.EmailColumn,
			AttachmentPaths: cfg.Files.Attachments,
			Recipients:      []recipients.Record{recipients.NewRecord(fields)},
		}

		sender, err := newSender(cmd.Context(), cfg, slogger, false)
		if err != nil {
			return err
		}
		defer sender.Close()

		engine, err := render.NewEngine(cfg.Email.Engine)
		if err != nil {
			return err
		}
		runner := campaign.NewRunner(sender,
			campaign.WithEngine(engine),
			campaign.WithLogger(slogger),
			campaign.WithMaxAttachmentSize(cfg.MaxAttachmentSize()),
		)

		result, err := runner.Run(cmd.Context(), c, nil)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("test send failed: %s", result.Errors[0])
		}
		log.Info("test message sent", "to", addr)
		return nil
	},
}

// testBody appends the active delivery settings to the campaign body so
// the recipient can verify the configuration. Credentials never appear.
func testBody(cfg *config.Config, body string) string {
	var b strings.Builder
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n\n----\n")
	}
	b.WriteString("Delivery settings:\n")
	fmt.Fprintf(&b, "  provider: %s\n", cfg.Provider)
	if cfg.Provider == config.ProviderSMTP {
		fmt.Fprintf(&b, "  server: %s:%d\n", cfg.SMTP.Host, cfg.SMTP.Port)
		fmt.Fprintf(&b, "  security: %s\n", smtpSecurity(cfg))
		fmt.Fprintf(&b, "  username: %s\n", cfg.SMTP.Username)
	}
	fmt.Fprintf(&b, "  sender: %s\n", cfg.Email.Sender)
	fmt.Fprintf(&b, "  engine: %s\n", cfg.Email.Engine)
	return b.String()
}

func smtpSecurity(cfg *config.Config) string {
	switch {
	case cfg.SMTP.UseSSL:
		return "ssl"
	case cfg.SMTP.UseTLS:
		return "starttls"
	default:
		return "none"
	}
}

func init() {
	addCampaignFlags(testCmd)
}

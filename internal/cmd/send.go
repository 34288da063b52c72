package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/heraldmail/herald/internal/config"
	"github.com/heraldmail/herald/pkg/campaign"
	"github.com/heraldmail/herald/pkg/recipients"
	"github.com/heraldmail/herald/pkg/render"
)

var dryRun bool

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Run the campaign: one personalized message per recipient",
	Long: `Send reads the recipient CSV, renders the subject and body for each
row and delivers through the configured provider. A failed recipient does
not stop the run; failures are reported at the end.

Press Ctrl-C to cancel: the in-flight message finishes, the rest are
skipped, and the summary still covers the full recipient count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, slogger, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer closeLog()

		if dryRun {
			cfg.Provider = config.ProviderStdout
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		c, err := buildCampaign(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sender, err := newSender(ctx, cfg, slogger, dryRun)
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

		total := len(c.Recipients)
		log.Info("starting campaign", "recipients", total, "provider", sender.Name())

		listener := campaign.ListenerFuncs{
			OnRecipient: func(addr string, sent bool, errMsg string) {
				if sent {
					log.Info("sent", "to", addr)
				} else {
					log.Error("failed", "to", addr, "err", errMsg)
				}
			},
			OnProgress: func(done, total int) {
				log.Debug("progress", "done", done, "total", total)
			},
		}

		result, err := runner.Run(ctx, c, listener)
		if err != nil {
			return err
		}

		printSummary(result)
		if !result.Success {
			return fmt.Errorf("%d of %d messages failed", result.Failed, result.Total)
		}
		return nil
	},
}

func init() {
	addCampaignFlags(sendCmd)
	sendCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print messages instead of sending")
}

// buildCampaign assembles the campaign from file inputs and settings.
func buildCampaign(cfg *config.Config) (*campaign.Campaign, error) {
	if cfg.Files.Recipients == "" {
		return nil, fmt.Errorf("no recipient file: set files.recipients or --recipients")
	}
	list, err := recipients.Load(cfg.Files.Recipients)
	if err != nil {
		return nil, err
	}

	body, err := loadBody(cfg)
	if err != nil {
		return nil, err
	}

	return &campaign.Campaign{
		Subject:         cfg.Email.Subject,
		Body:            body,
		HTMLBody:        cfg.Email.HTML,
		Sender:          cfg.Email.Sender,
		SenderName:      cfg.Email.SenderName,
		ReplyTo:         cfg.Email.ReplyTo,
		EmailColumn:     cfg.Email.EmailColumn,
		AttachmentPaths: cfg.Files.Attachments,
		Recipients:      list.Records,
	}, nil
}

func loadBody(cfg *config.Config) (string, error) {
	if cfg.Files.Body == "" {
		return "", fmt.Errorf("no body template: set files.body or --body")
	}
	raw, err := os.ReadFile(cfg.Files.Body)
	if err != nil {
		return "", fmt.Errorf("reading body template: %w", err)
	}
	return string(raw), nil
}

func printSummary(result *campaign.Result) {
	switch {
	case result.Cancelled:
		log.Warn("campaign cancelled", "sent", result.Sent, "failed", result.Failed, "total", result.Total)
	case result.Success:
		log.Info("campaign complete", "sent", result.Sent, "total", result.Total)
	default:
		log.Warn("campaign finished with failures", "sent", result.Sent, "failed", result.Failed, "total", result.Total)
	}
	for _, line := range result.Errors {
		log.Error(line)
	}
}

/*
Package cmd provides the CLI commands for herald.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/heraldmail/herald/internal/config"
	"github.com/heraldmail/herald/pkg/logger"
)

// DefaultConfigFile is consulted when --config is not given.
const DefaultConfigFile = "herald.yaml"

var (
	cfgFile string
	verbose bool

	// Overrides collected from flags, merged over the config file.
	flagProvider    string
	flagSender      string
	flagSenderName  string
	flagReplyTo     string
	flagSubject     string
	flagRecipients  string
	flagBodyFile    string
	flagAttachments []string
	flagEngine      string
	flagEmailColumn string
	flagHTML        bool
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "Personalized bulk email from a CSV and a template",
	Long: `Herald sends one personalized email per row of a recipient CSV.
Subject and body are templates; {{column}} placeholders are filled from
each recipient's fields. Attachments are shared across the campaign.

Example:
  herald init                     # Write sample config and input files
  herald check                    # Validate config, recipients, template
  herald test                     # Send one message to the test recipient
  herald send --dry-run           # Print every message instead of sending
  herald send                     # Run the campaign`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func addCampaignFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "delivery provider: smtp, ses, resend, stdout")
	cmd.Flags().StringVar(&flagSender, "sender", "", "From address")
	cmd.Flags().StringVar(&flagSenderName, "sender-name", "", "From display name")
	cmd.Flags().StringVar(&flagReplyTo, "reply-to", "", "Reply-To address")
	cmd.Flags().StringVarP(&flagSubject, "subject", "s", "", "subject template")
	cmd.Flags().StringVarP(&flagRecipients, "recipients", "r", "", "recipient CSV file")
	cmd.Flags().StringVarP(&flagBodyFile, "body", "b", "", "body template file")
	cmd.Flags().StringArrayVarP(&flagAttachments, "attach", "a", nil, "attachment file (repeatable)")
	cmd.Flags().StringVar(&flagEngine, "engine", "", "template engine: rich or basic")
	cmd.Flags().StringVar(&flagEmailColumn, "email-column", "", "CSV column holding the address")
	cmd.Flags().BoolVar(&flagHTML, "html", false, "render markdown body as an HTML alternative")
}

func flagOverrides() config.Config {
	return config.Config{
		Provider: flagProvider,
		Email: config.Email{
			Sender:      flagSender,
			SenderName:  flagSenderName,
			ReplyTo:     flagReplyTo,
			Subject:     flagSubject,
			Engine:      flagEngine,
			EmailColumn: flagEmailColumn,
			HTML:        flagHTML,
		},
		Files: config.Files{
			Recipients:  flagRecipients,
			Body:        flagBodyFile,
			Attachments: flagAttachments,
		},
	}
}

// loadConfig resolves the config file, applies flag overrides and builds
// the structured logger. The returned close function flushes log
// destinations.
func loadConfig() (*config.Config, *slog.Logger, func(), error) {
	path := cfgFile
	if path == "" {
		path = DefaultConfigFile
	}

	var cfg *config.Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, nil, err
		}
	} else if cfgFile != "" {
		return nil, nil, nil, fmt.Errorf("config file not found: %s", cfgFile)
	} else {
		def := config.Default()
		cfg = &def
	}

	if err := cfg.Merge(flagOverrides()); err != nil {
		return nil, nil, nil, err
	}

	slogger, closeLog, err := logger.New(cfg.Log, logger.RunIDExtractor)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, slogger, closeLog, nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heraldmail/herald/pkg/attachment"
	"github.com/heraldmail/herald/pkg/recipients"
	"github.com/heraldmail/herald/pkg/render"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and campaign inputs without sending",
	Long: `Check runs every pre-send validation the campaign itself would run:

  - config file syntax and provider settings
  - recipient CSV parsing, including the address column
  - subject and body template syntax
  - attachment existence and size

Nothing is sent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer closeLog()

		out := cmd.OutOrStdout()
		fail := 0
		report := func(subject string, err error) {
			if err != nil {
				fail++
				fmt.Fprintf(out, "✗ %s: %v\n", subject, err)
				return
			}
			fmt.Fprintf(out, "✓ %s\n", subject)
		}

		report("configuration", cfg.Validate())

		var list *recipients.List
		if cfg.Files.Recipients == "" {
			report("recipients", fmt.Errorf("no recipient file configured"))
		} else {
			var err error
			list, err = recipients.Load(cfg.Files.Recipients)
			report(fmt.Sprintf("recipients (%s)", cfg.Files.Recipients), err)
			if err == nil {
				fmt.Fprintf(out, "  %d recipients, columns: %s\n", list.Len(), strings.Join(list.Columns, ", "))
				if list.Len() > 0 && !list.Records[0].Has(cfg.Email.EmailColumn) {
					report("address column", fmt.Errorf("column %q not found", cfg.Email.EmailColumn))
				}
			}
		}

		engine, engineErr := render.NewEngine(cfg.Email.Engine)
		if engineErr == nil {
			_, err := engine.Render(cfg.Email.Subject, nil)
			report("subject template", err)

			body, err := loadBody(cfg)
			if err == nil {
				_, err = engine.Render(body, nil)
			}
			report("body template", err)
		}

		for _, path := range cfg.Files.Attachments {
			_, err := attachment.Build(path, cfg.MaxAttachmentSize())
			report(fmt.Sprintf("attachment %s", path), err)
		}

		if fail > 0 {
			return fmt.Errorf("%d check(s) failed", fail)
		}
		return nil
	},
}

func init() {
	addCampaignFlags(checkCmd)
}

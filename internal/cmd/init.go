package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const sampleConfig = `# herald configuration
provider: smtp

smtp:
  server: smtp.example.com
  port: 587
  username: your-username
  password: your-password
  use_tls: true

email:
  sender: you@example.com
  sender_name: Your Name
  subject: "Hello {{name}}"
  test_recipient: you@example.com
  engine: rich
  html: false

files:
  recipients: recipients.csv
  body: body.md
  attachments: []

log:
  level: info
  file: herald.log
`

const sampleRecipients = `email,name,company
alice@example.com,Alice,Initech
bob@example.com,Bob,Globex
`

const sampleBody = `Dear {{name}},

We are delighted to invite {{company}} to our annual gathering.

Best regards,
The Team
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write sample configuration and input files",
	Long: `Init creates a starter set in the current directory:

  herald.yaml     configuration
  recipients.csv  recipient list with example rows
  body.md         body template

Existing files are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := []struct {
			name    string
			content string
		}{
			{DefaultConfigFile, sampleConfig},
			{"recipients.csv", sampleRecipients},
			{"body.md", sampleBody},
		}

		for _, f := range files {
			if _, err := os.Stat(f.name); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (already exists)\n", f.name)
				continue
			}
			if err := os.WriteFile(f.name, []byte(f.content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", f.name)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\nEdit herald.yaml, then run: herald check")
		return nil
	},
}

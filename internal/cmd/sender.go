package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heraldmail/herald/internal/config"
	"github.com/heraldmail/herald/pkg/mailer"
	"github.com/heraldmail/herald/pkg/mailer/resend"
	"github.com/heraldmail/herald/pkg/mailer/ses"
	"github.com/heraldmail/herald/pkg/mailer/smtp"
	"github.com/heraldmail/herald/pkg/mailer/stdout"
)

// newSender builds the delivery backend for the selected provider. dryRun
// forces the stdout sender regardless of configuration.
func newSender(ctx context.Context, cfg *config.Config, log *slog.Logger, dryRun bool) (mailer.Sender, error) {
	if dryRun {
		return stdout.New(), nil
	}

	switch strings.ToLower(cfg.Provider) {
	case config.ProviderSMTP:
		return smtp.New(cfg.SMTP, log), nil
	case config.ProviderSES:
		return ses.New(ctx, cfg.SES)
	case config.ProviderResend:
		return resend.New(cfg.Resend), nil
	case config.ProviderStdout:
		return stdout.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

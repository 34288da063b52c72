// Package ses implements the Sender interface over the AWS SES v2 API.
// Messages are submitted in raw RFC 822 form so attachments and the HTML
// alternative survive unchanged.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/heraldmail/herald/pkg/mailer"
)

// Config holds SES provider configuration. Static credentials are
// optional; the default AWS credential chain applies when they are empty.
type Config struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// SendEmailAPI is the slice of the SES v2 client this sender uses,
// narrowed for mocking.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender delivers messages through AWS SES v2.
type Sender struct {
	client SendEmailAPI
}

// New creates an SES sender from configuration.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: loading AWS config: %w", err)
	}

	return &Sender{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates a sender around an existing client, used in tests.
func NewWithClient(client SendEmailAPI) *Sender {
	return &Sender{client: client}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	raw, err := email.Raw()
	if err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(email.From),
		Destination:      &types.Destination{ToAddresses: email.To},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return wrapSESError(err)
	}
	return nil
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return "ses" }

// Close implements mailer.Sender. The API client holds no connection.
func (s *Sender) Close() error { return nil }

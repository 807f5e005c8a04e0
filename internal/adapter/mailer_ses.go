package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/models"
)

const charsetUTF8 = "UTF-8"

// sesAPI is the subset of *sesv2.Client used by sesMailer.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesMailer struct {
	client  sesAPI
	timeout time.Duration
	logger  *logger.Logger
}

// NewSESMailer returns a [Mailer] delivering through AWS SES v2 in
// cfg.Region. Credentials come from the default AWS chain.
func NewSESMailer(ctx context.Context, cfg config.Mail, log *logger.Logger) (Mailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Err(err).Str("func", "NewSESMailer").Msg("failed to load AWS SDK config for SES")
		return nil, fmt.Errorf("failed to load AWS SDK config for SES: %w", err)
	}
	log.Info().Str("func", "NewSESMailer").Str("region", cfg.Region).Msg("SES mail transport initialized")

	return &sesMailer{
		client:  sesv2.NewFromConfig(awsCfg),
		timeout: cfg.Timeout,
		logger:  log,
	}, nil
}

func (m *sesMailer) Send(ctx context.Context, mail models.Mail) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if _, err := m.client.SendEmail(ctx, buildSESInput(mail)); err != nil {
		m.logger.Err(err).Str("func", "*sesMailer.Send").Str("to", mail.To).Msg("failed to send email via SES")
		return fmt.Errorf("ses send email: %w", err)
	}

	m.logger.Debug().Str("func", "*sesMailer.Send").Str("to", mail.To).Str("subject", mail.Subject).Msg("email sent")
	return nil
}

func buildSESInput(mail models.Mail) *sesv2.SendEmailInput {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(mail.From),
		Destination: &types.Destination{
			ToAddresses: []string{mail.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(mail.HTMLBody),
						Charset: aws.String(charsetUTF8),
					},
				},
				Subject: &types.Content{
					Data:    aws.String(mail.Subject),
					Charset: aws.String(charsetUTF8),
				},
			},
		},
	}
	if mail.ReplyTo != "" {
		input.ReplyToAddresses = []string{mail.ReplyTo}
	}

	return input
}

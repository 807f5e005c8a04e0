package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// NewMailer builds the [Mailer] selected by cfg.Transport.
func NewMailer(ctx context.Context, cfg config.Mail, log *logger.Logger) (Mailer, error) {
	switch cfg.Transport {
	case config.MailTransportSES:
		return NewSESMailer(ctx, cfg, log)
	case config.MailTransportHTTP:
		return NewHTTPMailer(cfg, log), nil
	case config.MailTransportLog, "":
		return NewLogMailer(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMailTransport, cfg.Transport)
	}
}

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a [Mailer] that writes every message to the log and
// never fails. Intended for development.
func NewLogMailer(log *logger.Logger) Mailer {
	return &logMailer{logger: log}
}

func (m *logMailer) Send(ctx context.Context, mail models.Mail) error {
	m.logger.Info().
		Str("func", "*logMailer.Send").
		Str("to", mail.To).
		Str("from", mail.From).
		Str("reply_to", mail.ReplyTo).
		Str("subject", mail.Subject).
		Str("body", mail.HTMLBody).
		Msg("mail delivered to log")

	return nil
}

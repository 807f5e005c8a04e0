package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/models"
)

type httpMailer struct {
	client   *utils.HTTPClient
	relayURL string
	apiKey   string
	logger   *logger.Logger
}

// NewHTTPMailer returns a [Mailer] that POSTs every message as JSON to
// cfg.RelayURL, authenticating with cfg.RelayAPIKey as a bearer token.
// Non-2xx responses are mapped to the sentinel errors of this package.
func NewHTTPMailer(cfg config.Mail, log *logger.Logger) Mailer {
	return &httpMailer{
		client:   utils.NewHTTPClient("", cfg.Timeout),
		relayURL: cfg.RelayURL,
		apiKey:   cfg.RelayAPIKey,
		logger:   log,
	}
}

func (m *httpMailer) Send(ctx context.Context, mail models.Mail) error {
	req := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mail)
	if m.apiKey != "" {
		req.SetAuthToken(m.apiKey)
	}

	resp, err := req.Post(m.relayURL)
	if err != nil {
		m.logger.Err(err).Str("func", "*httpMailer.Send").Msg("relay request failed")
		return fmt.Errorf("mail relay request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		m.logger.Err(err).Str("func", "*httpMailer.Send").Int("status", resp.StatusCode()).Msg("relay rejected mail")
		return err
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/models"
)

func testMail() models.Mail {
	return models.Mail{
		Subject:  "Password reset request",
		HTMLBody: "<h2>Hello Alice</h2>",
		To:       "alice@example.com",
		From:     "no-reply@warehouse.local",
	}
}

// ── NewMailer ───────────────────────────────────────────────────────────────

func TestNewMailer_SelectsTransport(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	m, err := NewMailer(ctx, config.Mail{Transport: config.MailTransportLog}, log)
	require.NoError(t, err)
	assert.IsType(t, &logMailer{}, m)

	m, err = NewMailer(ctx, config.Mail{}, log)
	require.NoError(t, err)
	assert.IsType(t, &logMailer{}, m)

	m, err = NewMailer(ctx, config.Mail{Transport: config.MailTransportHTTP, RelayURL: "http://relay"}, log)
	require.NoError(t, err)
	assert.IsType(t, &httpMailer{}, m)

	m, err = NewMailer(ctx, config.Mail{Transport: config.MailTransportSES, Region: "eu-west-1"}, log)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)

	_, err = NewMailer(ctx, config.Mail{Transport: "pigeon"}, log)
	assert.ErrorIs(t, err, ErrUnknownMailTransport)
}

func TestLogMailer_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogMailer(logger.Nop()).Send(context.Background(), testMail()))
}

// ── HTTP relay ──────────────────────────────────────────────────────────────

func TestHTTPMailer_Success(t *testing.T) {
	mail := testMail()
	mail.ReplyTo = "bob@example.com"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "Bearer relay-key", r.Header.Get("Authorization"))

		var got models.Mail
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, mail, got)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewHTTPMailer(config.Mail{RelayURL: srv.URL + "/send", RelayAPIKey: "relay-key", Timeout: time.Second}, logger.Nop())
	assert.NoError(t, m.Send(context.Background(), mail))
}

func TestHTTPMailer_MapsStatus(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusBadRequest, ErrMailRejected},
		{http.StatusNotFound, ErrMailRejected},
		{http.StatusUnprocessableEntity, ErrMailRejected},
		{http.StatusUnauthorized, ErrRelayAuth},
		{http.StatusForbidden, ErrRelayAuth},
		{http.StatusTooManyRequests, ErrRelayThrottled},
		{http.StatusInternalServerError, ErrRelayUnavailable},
		{http.StatusBadGateway, ErrRelayUnavailable},
		{http.StatusServiceUnavailable, ErrRelayUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("relay says no"))
			}))
			defer srv.Close()

			m := NewHTTPMailer(config.Mail{RelayURL: srv.URL}, logger.Nop())
			err := m.Send(context.Background(), testMail())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "relay says no")
		})
	}
}

func TestHTTPMailer_ErrorBody(t *testing.T) {
	t.Run("empty body uses status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := NewHTTPMailer(config.Mail{RelayURL: srv.URL}, logger.Nop()).Send(context.Background(), testMail())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http 503")
		assert.Contains(t, err.Error(), "Service Unavailable")
	})

	t.Run("long body truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(strings.Repeat("x", 4*maxRelayErrorBody)))
		}))
		defer srv.Close()

		err := NewHTTPMailer(config.Mail{RelayURL: srv.URL}, logger.Nop()).Send(context.Background(), testMail())
		require.Error(t, err)
		assert.Less(t, len(err.Error()), 2*maxRelayErrorBody)
		assert.True(t, strings.HasSuffix(err.Error(), "..."))
	})
}

func TestHTTPMailer_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewHTTPMailer(config.Mail{RelayURL: url, Timeout: time.Second}, logger.Nop()).Send(context.Background(), testMail())
	assert.Error(t, err)
}

// ── SES ─────────────────────────────────────────────────────────────────────

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, timeout: time.Second, logger: logger.Nop()}

	mail := testMail()
	mail.ReplyTo = "bob@example.com"
	require.NoError(t, m.Send(context.Background(), mail))

	require.NotNil(t, fake.input)
	assert.Equal(t, mail.From, *fake.input.FromEmailAddress)
	assert.Equal(t, []string{mail.To}, fake.input.Destination.ToAddresses)
	assert.Equal(t, []string{"bob@example.com"}, fake.input.ReplyToAddresses)
	assert.Equal(t, mail.Subject, *fake.input.Content.Simple.Subject.Data)
	assert.Equal(t, mail.HTMLBody, *fake.input.Content.Simple.Body.Html.Data)
	assert.Equal(t, "UTF-8", *fake.input.Content.Simple.Body.Html.Charset)
}

func TestSESMailer_Error(t *testing.T) {
	sendErr := errors.New("throttled")
	m := &sesMailer{client: &fakeSES{err: sendErr}, logger: logger.Nop()}

	err := m.Send(context.Background(), testMail())
	assert.ErrorIs(t, err, sendErr)
}

func TestBuildSESInput_NoReplyTo(t *testing.T) {
	input := buildSESInput(testMail())
	assert.Empty(t, input.ReplyToAddresses)
}

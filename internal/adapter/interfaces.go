// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides abstractions over the external systems the
// service layer talks to: outbound email and object storage for product
// images.
//
// [Mailer] has three transports selected by configuration: AWS SES v2, a JSON
// HTTP relay and a logging transport for development. [ImageStorage] is
// backed by S3 (or any S3-compatible endpoint such as MinIO).
//
// Error values defined in errors.go are mapped from relay HTTP status codes
// by mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling.
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/warehouse-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer delivers a single HTML email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	// Send delivers mail or returns the transport error. Nothing is retried.
	Send(ctx context.Context, mail models.Mail) error
}

// ImageStorage stores product pictures and returns their public URL.
type ImageStorage interface {
	// Upload stores body under key and returns the URL the object can be
	// fetched from.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

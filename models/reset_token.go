// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ResetToken is a persisted password-reset token.
//
// Only the one-way digest of the raw token is stored; the raw value travels
// exclusively inside the emailed reset link.
type ResetToken struct {
	// ID is the unique identifier of the token row (UUID).
	ID string `json:"id"`

	// UserID references the account whose password may be reset.
	UserID string `json:"user_id"`

	// TokenHash is the hex-encoded SHA-256 digest of the raw token.
	TokenHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the ResetToken model.
func (t ResetToken) TableName() string {
	return "reset_tokens"
}

// IsExpired reports whether the token can no longer be used at moment now.
// A token is usable strictly before ExpiresAt.
func (t ResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

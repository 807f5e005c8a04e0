// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile defaults applied to freshly registered accounts.
const (
	DefaultUserPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultUserPhone = "+880"

	// MaxBioLength is the maximum number of characters allowed in User.Bio.
	MaxBioLength = 250
)

// User represents a warehouse account used for authentication and as the
// owner of products.
type User struct {
	// ID is the server-generated unique identifier of the user (UUID).
	ID string `json:"_id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased login of the user.
	Email string `json:"email"`

	// Password holds the bcrypt digest of the user's password.
	// It is never serialized and never holds plaintext once persisted.
	Password string `json:"-"`

	// Photo is the URL of the user's avatar.
	Photo string `json:"photo"`

	// Phone is the user's contact phone number.
	Phone string `json:"phone"`

	// Bio is a short free-form description (at most MaxBioLength characters).
	Bio string `json:"bio"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// WithDefaults returns a copy of u with empty profile fields replaced by
// their registration defaults.
func (u User) WithDefaults() User {
	if u.Photo == "" {
		u.Photo = DefaultUserPhoto
	}
	if u.Phone == "" {
		u.Phone = DefaultUserPhone
	}
	return u
}

// UserResponse is the public projection of a [User] returned by
// register/login together with the issued session credential.
type UserResponse struct {
	User
	Token string `json:"token,omitempty"`
}

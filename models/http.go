package models

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries profile fields; empty fields keep their
// current value.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

// ChangePasswordRequest is the body of the change-password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	Password    string `json:"password"`
}

// ForgotPasswordRequest is the body of the forgot-password endpoint.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the raw reset token (taken from the URL)
// and the new password (taken from the body).
type ResetPasswordRequest struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}

// ContactRequest is the body of the contact-form endpoint.
type ContactRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

package service

import (
	"context"

	"github.com/MKhiriev/warehouse-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages accounts and sessions.
type AuthService interface {
	// Register creates an account and opens a session for it.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	// Login checks credentials and opens a session.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	// VerifySession reports whether token is a live session credential.
	VerifySession(ctx context.Context, token string) bool
	// Authorize resolves a session credential to its user.
	Authorize(ctx context.Context, token string) (models.User, error)
	// ChangePassword replaces the password of a signed-in user.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
}

// ResetService implements the forgotten-password flow.
type ResetService interface {
	RequestReset(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	// PurgeExpiredTokens removes reset tokens that can no longer be used and
	// returns how many were removed.
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type UserService interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error)
}

// ProductService manages the products of a user. Every operation on a
// single product checks ownership.
type ProductService interface {
	CreateProduct(ctx context.Context, userID string, req models.ProductRequest, image *models.ImageUpload) (models.Product, error)
	ListProducts(ctx context.Context, userID string) ([]models.Product, error)
	GetProduct(ctx context.Context, userID, productID string) (models.Product, error)
	UpdateProduct(ctx context.Context, userID, productID string, req models.ProductRequest, image *models.ImageUpload) (models.Product, error)
	DeleteProduct(ctx context.Context, userID, productID string) error
}

type ContactService interface {
	ContactUs(ctx context.Context, userID string, req models.ContactRequest) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator issues identifiers for new records.
type IDGenerator interface {
	Generate() string
}

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/warehouse-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Email uniqueness is enforced by the
// database; a violating insert returns [ErrEmailAlreadyExists].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateUserProfile(ctx context.Context, user models.User) (models.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error
}

// ResetTokenRepository persists password-reset token digests.
type ResetTokenRepository interface {
	CreateResetToken(ctx context.Context, token models.ResetToken) error
	FindResetTokenByHash(ctx context.Context, tokenHash string) (models.ResetToken, error)
	DeleteResetTokensByUserID(ctx context.Context, userID string) (int64, error)
	DeleteResetToken(ctx context.Context, tokenID string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// ProductRepository persists products. Mutations are scoped to the owner.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	FindProductByID(ctx context.Context, productID string) (models.Product, error)
	ListProductsByUserID(ctx context.Context, userID string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, userID, productID string) error
}

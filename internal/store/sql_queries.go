package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/warehouse-keeper/models"
)

const (
	usersTable       = "users"
	resetTokensTable = "reset_tokens"
	productsTable    = "products"
)

var (
	userColumns = []string{
		"id", "name", "email", "password", "photo", "phone", "bio", "created_at", "updated_at",
	}
	resetTokenColumns = []string{
		"id", "user_id", "token_hash", "created_at", "expires_at",
	}
	productColumns = []string{
		"id", "user_id", "name", "sku", "category", "quantity", "price", "description",
		"image_name", "image_path", "image_type", "image_size", "created_at", "updated_at",
	}
)

// users

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.Password, user.Photo, user.Phone, user.Bio,
			user.CreatedAt.UTC(), user.UpdatedAt.UTC()).
		ToSql()
}

// buildSelectUserQuery selects a single user by an exact column match.
func buildSelectUserQuery(b sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildUpdateUserProfileQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(usersTable).
		SetMap(map[string]any{
			"name":       user.Name,
			"phone":      user.Phone,
			"photo":      user.Photo,
			"bio":        user.Bio,
			"updated_at": user.UpdatedAt.UTC(),
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

func buildUpdateUserPasswordQuery(b sq.StatementBuilderType, userID, passwordHash string, updatedAt time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("password", passwordHash).
		Set("updated_at", updatedAt.UTC()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// reset tokens

func buildInsertResetTokenQuery(b sq.StatementBuilderType, token models.ResetToken) (string, []any, error) {
	return b.Insert(resetTokensTable).
		Columns(resetTokenColumns...).
		Values(token.ID, token.UserID, token.TokenHash, token.CreatedAt.UTC(), token.ExpiresAt.UTC()).
		ToSql()
}

func buildSelectResetTokenByHashQuery(b sq.StatementBuilderType, tokenHash string) (string, []any, error) {
	return b.Select(resetTokenColumns...).
		From(resetTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		Limit(1).
		ToSql()
}

// buildDeleteResetTokensQuery deletes every reset token matching where.
func buildDeleteResetTokensQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Delete(resetTokensTable).
		Where(where).
		ToSql()
}

// products

func buildInsertProductQuery(b sq.StatementBuilderType, product models.Product) (string, []any, error) {
	return b.Insert(productsTable).
		Columns(productColumns...).
		Values(product.ID, product.UserID, product.Name, product.SKU, product.Category,
			product.Quantity, product.Price, product.Description,
			product.Image.FileName, product.Image.FilePath, product.Image.FileType, product.Image.FileSize,
			product.CreatedAt.UTC(), product.UpdatedAt.UTC()).
		ToSql()
}

func buildSelectProductByIDQuery(b sq.StatementBuilderType, productID string) (string, []any, error) {
	return b.Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"id": productID}).
		Limit(1).
		ToSql()
}

// buildSelectProductsByUserIDQuery lists the products of one owner,
// newest first.
func buildSelectProductsByUserIDQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
}

// buildUpdateProductQuery updates the editable fields of a product owned by
// product.UserID. Image columns are left untouched when no image is given.
func buildUpdateProductQuery(b sq.StatementBuilderType, product models.Product) (string, []any, error) {
	fields := map[string]any{
		"name":        product.Name,
		"category":    product.Category,
		"quantity":    product.Quantity,
		"price":       product.Price,
		"description": product.Description,
		"updated_at":  product.UpdatedAt.UTC(),
	}
	if !product.Image.IsEmpty() {
		fields["image_name"] = product.Image.FileName
		fields["image_path"] = product.Image.FilePath
		fields["image_type"] = product.Image.FileType
		fields["image_size"] = product.Image.FileSize
	}

	return b.Update(productsTable).
		SetMap(fields).
		Where(sq.Eq{"id": product.ID, "user_id": product.UserID}).
		ToSql()
}

func buildDeleteProductQuery(b sq.StatementBuilderType, userID, productID string) (string, []any, error) {
	return b.Delete(productsTable).
		Where(sq.Eq{"id": productID, "user_id": userID}).
		ToSql()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (models.User, error) {
	var user models.User
	err := s.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Photo, &user.Phone, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func scanResetToken(s scanner) (models.ResetToken, error) {
	var token models.ResetToken
	err := s.Scan(&token.ID, &token.UserID, &token.TokenHash, &token.CreatedAt, &token.ExpiresAt)
	return token, err
}

func scanProduct(s scanner) (models.Product, error) {
	var product models.Product
	err := s.Scan(&product.ID, &product.UserID, &product.Name, &product.SKU, &product.Category,
		&product.Quantity, &product.Price, &product.Description,
		&product.Image.FileName, &product.Image.FilePath, &product.Image.FileType, &product.Image.FileSize,
		&product.CreatedAt, &product.UpdatedAt)
	return product, err
}

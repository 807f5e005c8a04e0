package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/models"
)

type resetTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResetTokenRepository constructs a [ResetTokenRepository] backed by the
// "reset_tokens" table.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *resetTokenRepository) CreateResetToken(ctx context.Context, token models.ResetToken) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertResetTokenQuery(r.db.builder, token)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.CreateResetToken").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.CreateResetToken").Bool("retryable", r.db.retryable(err)).Msg("error inserting reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindResetTokenByHash looks a token up by its digest only. Expiry is
// decided by the caller.
func (r *resetTokenRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (models.ResetToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectResetTokenByHashQuery(r.db.builder, tokenHash)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.FindResetTokenByHash").Msg("error building select query")
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	token, err := scanResetToken(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResetToken{}, ErrResetTokenNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.FindResetTokenByHash").Bool("retryable", r.db.retryable(err)).Msg("error selecting reset token")
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return token, nil
}

func (r *resetTokenRepository) DeleteResetTokensByUserID(ctx context.Context, userID string) (int64, error) {
	return r.delete(ctx, sq.Eq{"user_id": userID}, "*resetTokenRepository.DeleteResetTokensByUserID")
}

func (r *resetTokenRepository) DeleteResetToken(ctx context.Context, tokenID string) error {
	deleted, err := r.delete(ctx, sq.Eq{"id": tokenID}, "*resetTokenRepository.DeleteResetToken")
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrResetTokenNotFound
	}

	return nil
}

// DeleteExpiredResetTokens removes every token whose expiry is not after now.
func (r *resetTokenRepository) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, sq.LtOrEq{"expires_at": now.UTC()}, "*resetTokenRepository.DeleteExpiredResetTokens")
}

func (r *resetTokenRepository) delete(ctx context.Context, where sq.Sqlizer, funcName string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteResetTokensQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building delete query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Bool("retryable", r.db.retryable(err)).Msg("error deleting reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/adapter"
	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// resetService implements the emailed password-reset flow.
type resetService struct {
	userRepository  store.UserRepository
	tokenRepository store.ResetTokenRepository
	mailer          adapter.Mailer
	validator       validators.Validator
	idGenerator     IDGenerator

	hashCost    int
	ttl         time.Duration
	frontendURL string
	sender      string

	now    func() time.Time
	logger *logger.Logger
}

func NewResetService(
	userRepository store.UserRepository,
	tokenRepository store.ResetTokenRepository,
	mailer adapter.Mailer,
	validator validators.Validator,
	appCfg config.App,
	mailCfg config.Mail,
	logger *logger.Logger,
) ResetService {
	return &resetService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		mailer:          mailer,
		validator:       validator,
		idGenerator:     utils.NewUUIDGenerator(),
		hashCost:        appCfg.PasswordHashCost,
		ttl:             appCfg.ResetTokenTTL,
		frontendURL:     strings.TrimRight(appCfg.FrontendURL, "/"),
		sender:          mailCfg.Sender,
		now:             time.Now,
		logger:          logger,
	}
}

// RequestReset replaces any outstanding reset tokens of the account with a
// fresh one and emails the reset link to its owner.
//
// The new token is persisted before the email is sent, so a delivery
// failure (ErrEmailNotSent) still leaves a usable token behind.
func (s *resetService) RequestReset(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	user, err := s.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*resetService.RequestReset").Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	deleted, err := s.tokenRepository.DeleteResetTokensByUserID(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("func", "*resetService.RequestReset").Msg("removing previous reset tokens failed")
		return fmt.Errorf("removing previous reset tokens failed: %w", err)
	}

	rawToken, err := utils.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	token := models.ResetToken{
		ID:        s.idGenerator.Generate(),
		UserID:    user.ID,
		TokenHash: utils.HashToken(rawToken),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err = s.tokenRepository.CreateResetToken(ctx, token); err != nil {
		log.Err(err).Str("func", "*resetService.RequestReset").Msg("saving reset token failed")
		return fmt.Errorf("saving reset token failed: %w", err)
	}

	body, err := render(resetEmail, resetEmailData{
		Name:      user.Name,
		ResetURL:  s.resetURL(rawToken),
		ExpiresIn: humanizeTTL(s.ttl),
	})
	if err != nil {
		return err
	}

	err = s.mailer.Send(ctx, models.Mail{
		Subject:  resetEmailSubject,
		HTMLBody: body,
		To:       user.Email,
		From:     s.sender,
	})
	if err != nil {
		log.Err(err).Str("func", "*resetService.RequestReset").Str("user_id", user.ID).Msg("reset email was not sent")
		return fmt.Errorf("%w: %w", ErrEmailNotSent, err)
	}

	log.Info().
		Str("func", "*resetService.RequestReset").
		Str("user_id", user.ID).
		Int64("replaced_tokens", deleted).
		Msg("reset email sent")
	return nil
}

// ResetPassword consumes a raw reset token and sets the new password of its
// owner. A token is accepted strictly before its expiry and at most once.
func (s *resetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	token, err := s.tokenRepository.FindResetTokenByHash(ctx, utils.HashToken(req.Token))
	if errors.Is(err, store.ErrResetTokenNotFound) {
		return ErrResetTokenNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*resetService.ResetPassword").Msg("reset token search failed")
		return fmt.Errorf("reset token search failed: %w", err)
	}

	now := s.now().UTC()
	if token.IsExpired(now) {
		log.Debug().Str("func", "*resetService.ResetPassword").Str("token_id", token.ID).Msg("reset token expired")
		return ErrResetTokenExpired
	}

	digest, err := utils.HashPassword(req.Password, s.hashCost)
	if err != nil {
		return err
	}

	if err = s.userRepository.UpdateUserPassword(ctx, token.UserID, digest, now); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*resetService.ResetPassword").Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	err = s.tokenRepository.DeleteResetToken(ctx, token.ID)
	if err != nil && !errors.Is(err, store.ErrResetTokenNotFound) {
		log.Err(err).Str("func", "*resetService.ResetPassword").Str("token_id", token.ID).Msg("consumed reset token was not deleted")
	}

	log.Info().Str("func", "*resetService.ResetPassword").Str("user_id", token.UserID).Msg("password reset")
	return nil
}

func (s *resetService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := s.tokenRepository.DeleteExpiredResetTokens(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purging expired reset tokens failed: %w", err)
	}
	return deleted, nil
}

func (s *resetService) resetURL(rawToken string) string {
	return s.frontendURL + "/resetpassword/" + rawToken
}

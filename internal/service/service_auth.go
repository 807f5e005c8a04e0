package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, password changes
// and the session credential lifecycle using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator   validators.Validator
	idGenerator IDGenerator

	// hashCost is the bcrypt work factor applied to new passwords.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the clock used for issuing and checking session credentials.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		idGenerator:    utils.NewUUIDGenerator(),
		hashCost:       cfg.PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new user account and issues a session credential.
//
// The email is trimmed and lower-cased before validation and persistence.
// Returns:
//   - an ErrValidation error if a field is missing, the email is malformed or
//     the password is shorter than 6 characters.
//   - ErrEmailAlreadyInUse if the email is taken (pre-check or unique index).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "*authService.Register").Msg("invalid registration data")
		return models.User{}, models.Token{}, validationError(err)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return models.User{}, models.Token{}, ErrEmailAlreadyInUse
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	digest, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, models.Token{}, err
	}

	now := a.now().UTC()
	user := models.User{
		ID:        a.idGenerator.Generate(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  digest,
		CreatedAt: now,
		UpdatedAt: now,
	}.WithDefaults()

	createdUser, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, models.Token{}, ErrEmailAlreadyInUse
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.createToken(createdUser.ID, now)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("func", "*authService.Register").Str("user_id", createdUser.ID).Msg("user registered")
	return createdUser, token, nil
}

// Login authenticates an existing user and issues a session credential.
//
// An unknown email and a wrong password are indistinguishable to the caller:
// both return ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, validationError(err)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Login").Str("email", req.Email).Msg("unknown email")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.ComparePassword(foundUser.Password, req.Password) {
		log.Debug().Str("func", "*authService.Login").Str("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.createToken(foundUser.ID, a.now())
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return foundUser, token, nil
}

// VerifySession reports whether token is present, correctly signed, issued
// by this service and not expired. It never fails.
func (a *authService) VerifySession(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	_, err := a.parseToken(token)
	return err == nil
}

// Authorize resolves a session credential to the user it was issued for.
// Any invalid, expired or orphaned credential yields ErrNotAuthorized.
func (a *authService) Authorize(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrNotAuthorized
	}

	parsed, err := a.parseToken(token)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.Authorize").Msg("invalid session credential")
		return models.User{}, ErrNotAuthorized
	}

	userID, err := parsed.GetUserID()
	if err != nil {
		return models.User{}, ErrNotAuthorized
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Authorize").Str("user_id", userID).Msg("session owner no longer exists")
		return models.User{}, ErrNotAuthorized
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authorize").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the old password of userID and stores the bcrypt
// digest of the new one.
func (a *authService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.ComparePassword(user.Password, req.OldPassword) {
		return ErrWrongPassword
	}

	digest, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password hashing failed")
		return err
	}

	if err = a.userRepository.UpdateUserPassword(ctx, userID, digest, a.now().UTC()); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("func", "*authService.ChangePassword").Str("user_id", userID).Msg("password changed")
	return nil
}

// createToken issues a signed JWT for userID valid from issuedAt for
// tokenDuration.
func (a *authService) createToken(userID string, issuedAt time.Time) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, issuedAt, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (a *authService) parseToken(tokenString string) (models.Token, error) {
	return utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
}

// normalizeEmail makes email lookups case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
}

func (u *userService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.GetUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateUser overwrites the profile fields present in req. Email and
// password are never touched here.
func (u *userService) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Photo = strings.TrimSpace(req.Photo)
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	user.UpdatedAt = u.now().UTC()

	updatedUser, err := u.userRepository.UpdateUserProfile(ctx, user)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateUser").Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updatedUser, nil
}

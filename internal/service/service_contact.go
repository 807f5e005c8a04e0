package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/warehouse-keeper/internal/adapter"
	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// contactService forwards contact-form messages to the support mailbox.
type contactService struct {
	users     UserService
	mailer    adapter.Mailer
	validator validators.Validator
	sender    string
	logger    *logger.Logger
}

func NewContactService(users UserService, mailer adapter.Mailer, validator validators.Validator, cfg config.Mail, logger *logger.Logger) ContactService {
	return &contactService{
		users:     users,
		mailer:    mailer,
		validator: validator,
		sender:    cfg.Sender,
		logger:    logger,
	}
}

// ContactUs emails req to the support mailbox with the user's address as
// Reply-To.
func (c *contactService) ContactUs(ctx context.Context, userID string, req models.ContactRequest) error {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := c.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	user, err := c.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	body, err := render(contactEmail, contactEmailData{Name: user.Name, Email: user.Email, Message: req.Message})
	if err != nil {
		return err
	}

	err = c.mailer.Send(ctx, models.Mail{
		Subject:  req.Subject,
		HTMLBody: body,
		To:       c.sender,
		From:     c.sender,
		ReplyTo:  user.Email,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactService.ContactUs").Str("user_id", userID).Msg("contact email was not sent")
		return fmt.Errorf("%w: %w", ErrEmailNotSent, err)
	}

	return nil
}

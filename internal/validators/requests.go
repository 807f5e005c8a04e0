package validators

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MKhiriev/warehouse-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldBio         = "bio"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
	FieldSubject     = "subject"
	FieldMessage     = "message"
	FieldImageType   = "image_type"
	FieldImageSize   = "image_size"
)

// Password bounds. The upper bound is in bytes, the most bcrypt accepts.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// allowedImageTypes lists the accepted MIME types of product pictures.
var allowedImageTypes = []any{"image/png", "image/jpeg", "image/jpg"}

// RequestValidator implements [Validator] for the request records accepted
// by the services: registration, login, password change and reset, profile
// and product updates, contact messages and image uploads.
type RequestValidator struct {
	maxImageSize int64
}

// NewRequestValidator returns a [Validator] rejecting images larger than
// maxImageSize bytes. A non-positive maxImageSize disables the size check.
func NewRequestValidator(maxImageSize int64) Validator {
	return &RequestValidator{maxImageSize: maxImageSize}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. When fields is empty the default set of the type is
// validated. Returns ErrUnsupportedType for unknown types.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.ForgotPasswordRequest:
		return v.validateForgotPassword(value, fields...)
	case *models.ForgotPasswordRequest:
		return v.validateForgotPassword(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUser(value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdateUser(*value, fields...)

	case models.ProductRequest:
		return v.validateProduct(value, fields...)
	case *models.ProductRequest:
		return v.validateProduct(*value, fields...)

	case models.ContactRequest:
		return v.validateContact(value, fields...)
	case *models.ContactRequest:
		return v.validateContact(*value, fields...)

	case models.ImageUpload:
		return v.validateImage(value, fields...)
	case *models.ImageUpload:
		return v.validateImage(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = required(req.Name)
		case FieldEmail:
			err = email(req.Email)
		case FieldPassword:
			err = password(req.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail, FieldPassword:
			// login only checks presence; wrong values are an auth failure
			err = required(req.Email, req.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldOldPassword:
			err = required(req.OldPassword)
		case FieldPassword:
			err = password(req.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateForgotPassword(req models.ForgotPasswordRequest, fields ...string) error {
	for _, f := range orDefault(fields, FieldEmail) {
		if f != FieldEmail {
			return ErrUnknownField
		}
		if err := required(req.Email); err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateResetPassword(req models.ResetPasswordRequest, fields ...string) error {
	for _, f := range orDefault(fields, FieldPassword) {
		if f != FieldPassword {
			return ErrUnknownField
		}
		if err := password(req.Password); err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateUpdateUser(req models.UpdateUserRequest, fields ...string) error {
	for _, f := range orDefault(fields, FieldBio) {
		if f != FieldBio {
			return ErrUnknownField
		}
		if validation.Validate(req.Bio, validation.RuneLength(0, models.MaxBioLength)) != nil {
			return ErrBioTooLong
		}
	}

	return nil
}

func (v *RequestValidator) validateProduct(req models.ProductRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCategory, FieldDescription, FieldQuantity, FieldPrice}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = required(req.Name)
		case FieldCategory:
			err = required(req.Category)
		case FieldDescription:
			err = required(req.Description)
		case FieldQuantity:
			if validation.Validate(req.Quantity, validation.Min(int64(0))) != nil {
				err = ErrNegativeQuantity
			}
		case FieldPrice:
			if validation.Validate(req.Price, validation.Min(float64(0))) != nil {
				err = ErrNegativePrice
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateContact(req models.ContactRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSubject, FieldMessage}
	}

	for _, f := range fields {
		var value string
		switch f {
		case FieldSubject:
			value = req.Subject
		case FieldMessage:
			value = req.Message
		default:
			return ErrUnknownField
		}
		if validation.Validate(value, validation.Required) != nil {
			return ErrMissingSubjectOrBody
		}
	}

	return nil
}

func (v *RequestValidator) validateImage(img models.ImageUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldImageType, FieldImageSize}
	}

	for _, f := range fields {
		switch f {
		case FieldImageType:
			if validation.Validate(img.ContentType, validation.Required, validation.In(allowedImageTypes...)) != nil {
				return ErrUnsupportedImageType
			}
		case FieldImageSize:
			if v.maxImageSize > 0 && img.Size > v.maxImageSize {
				return ErrImageTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func orDefault(fields []string, def string) []string {
	if len(fields) == 0 {
		return []string{def}
	}
	return fields
}

// required reports ErrRequiredFields when any of values is blank.
func required(values ...string) error {
	for _, value := range values {
		if validation.Validate(value, validation.Required) != nil {
			return ErrRequiredFields
		}
	}
	return nil
}

func email(value string) error {
	if err := required(value); err != nil {
		return err
	}
	if validation.Validate(value, is.Email) != nil {
		return ErrInvalidEmail
	}
	return nil
}

func password(value string) error {
	if err := required(value); err != nil {
		return err
	}
	if validation.Validate(value, validation.RuneLength(MinPasswordLength, 0)) != nil {
		return ErrPasswordTooShort
	}
	if len(value) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

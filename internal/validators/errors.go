package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrRequiredFields       = errors.New("please fill in all required fields")
	ErrInvalidEmail         = errors.New("please enter a valid email")
	ErrPasswordTooShort     = errors.New("password must have at least 6 characters")
	ErrPasswordTooLong      = errors.New("password must not exceed 72 bytes")
	ErrBioTooLong           = errors.New("bio exceeds max character length")
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
	ErrNegativePrice        = errors.New("price must not be negative")
	ErrMissingSubjectOrBody = errors.New("please add subject and message")
	ErrUnsupportedImageType = errors.New("only png, jpg and jpeg images are allowed")
	ErrImageTooLarge        = errors.New("image exceeds max upload size")
)

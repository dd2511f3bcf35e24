package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail        = errors.New("email is required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordTooLong   = errors.New("password is too long")
	ErrEmptyPayload      = errors.New("save payload is required")
	ErrInvalidScore      = errors.New("invalid virtual score")
	ErrInvalidAppVersion = errors.New("invalid app version")
	ErrInvalidRevision   = errors.New("invalid expected revision")
)

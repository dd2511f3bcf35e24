package validators

import (
	"context"
	"math"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-save-sync/models"
)

// Field names accepted by [SaveSyncValidator].
const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldPayload          = "payload"
	FieldVirtualScore     = "virtual_score"
	FieldAppVersion       = "app_version"
	FieldExpectedRevision = "expected_revision"
)

const (
	minPasswordLength   = 8
	maxPasswordLength   = 1024
	maxAppVersionLength = 64
)

// SaveSyncValidator validates credentials and save write requests.
type SaveSyncValidator struct{}

// NewSaveSyncValidator returns a [Validator] for models.Credentials and
// models.PutSaveRequest.
func NewSaveSyncValidator() Validator {
	return &SaveSyncValidator{}
}

// Validate dispatches on the dynamic type of obj. It returns
// [ErrUnsupportedType] for anything else.
func (v *SaveSyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.PutSaveRequest:
		return v.validatePutSaveRequest(value, fields...)
	case *models.PutSaveRequest:
		return v.validatePutSaveRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SaveSyncValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			email := strings.TrimSpace(creds.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			addr, err := mail.ParseAddress(email)
			if err != nil || addr.Address != email {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(creds.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
			if len(creds.Password) > maxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePutSaveRequest checks a save write. A nil ExpectedRevision is
// valid and means the client believes no cloud save exists yet.
func (v *SaveSyncValidator) validatePutSaveRequest(req models.PutSaveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPayload, FieldVirtualScore, FieldAppVersion, FieldExpectedRevision}
	}

	for _, f := range fields {
		switch f {
		case FieldPayload:
			if len(req.Payload) == 0 {
				return ErrEmptyPayload
			}
		case FieldVirtualScore:
			if math.IsNaN(req.VirtualScore) || math.IsInf(req.VirtualScore, 0) {
				return ErrInvalidScore
			}
		case FieldAppVersion:
			if len(req.AppVersion) > maxAppVersionLength {
				return ErrInvalidAppVersion
			}
		case FieldExpectedRevision:
			if req.ExpectedRevision != nil && *req.ExpectedRevision < 1 {
				return ErrInvalidRevision
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-sync/models"
)

// Errors returned by [CloudGateway] implementations. HTTP statuses map to
// them in mapHTTPError; transport failures in mapTransportError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")

	// ErrBackendWarming covers 502, 503, 504 and timeouts: the backend is
	// cold-starting and the request may succeed later.
	ErrBackendWarming = errors.New("backend warming up")

	// ErrNetworkUnavailable is returned when the backend cannot be reached
	// at all.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrRevisionConflict is the sentinel behind [RevisionConflictError].
	ErrRevisionConflict = errors.New("save revision conflict")

	ErrMalformedResponse = errors.New("malformed response")
)

// RevisionConflictError is returned by PutLatestSave when the expected
// revision is stale. Meta is the server's current save meta.
type RevisionConflictError struct {
	Meta    models.CloudSaveMeta
	Message string
}

func (e *RevisionConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", ErrRevisionConflict, e.Message)
	}
	return ErrRevisionConflict.Error()
}

func (e *RevisionConflictError) Unwrap() error {
	return ErrRevisionConflict
}

// IsWarming reports whether err means the backend is still starting.
func IsWarming(err error) bool {
	return errors.Is(err, ErrBackendWarming)
}

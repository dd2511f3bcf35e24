package envelope

import "errors"

var (
	// ErrMalformed means the stored text is not JSON.
	ErrMalformed = errors.New("stored save is not valid JSON")
	// ErrChecksumMismatch means the payload does not match its checksum.
	ErrChecksumMismatch = errors.New("save checksum mismatch")
	// ErrUnknownChecksum means the checksum algorithm tag is not supported.
	ErrUnknownChecksum = errors.New("unknown save checksum algorithm")
	// ErrUnrecognizedShape means the value is neither an envelope nor a
	// legacy save.
	ErrUnrecognizedShape = errors.New("unrecognized save shape")
	// ErrMigrationFailed means a migration step rejected the payload.
	ErrMigrationFailed = errors.New("save migration failed")
)

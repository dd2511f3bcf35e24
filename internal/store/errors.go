package store

import "errors"

// Local key-value storage errors. Callers degrade both to "absent".
var (
	// ErrStorageUnavailable is returned when no persistent store can be
	// reached (the database file cannot be opened, the disk is read-only,
	// or the storage was explicitly disabled).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrKeyNotFound is returned by Get for a key that was never written or
	// has been deleted.
	ErrKeyNotFound = errors.New("key not found")
)

// Sentinel errors returned by server repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrEmailAlreadyExists is returned when an account with the same email
	// is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSaveNotFound is returned when the account has never stored a save.
	ErrSaveNotFound = errors.New("save not found")

	// ErrRevisionConflict is returned when the expected revision supplied by
	// the client does not match the stored revision. The repository returns
	// the stored meta alongside it.
	ErrRevisionConflict = errors.New("save revision conflict")

	// ErrSessionNotFound is returned when a refresh token hash is unknown.
	ErrSessionNotFound = errors.New("refresh session not found")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingPayload is returned when a save payload cannot be stored as
	// JSON or read back.
	ErrEncodingPayload = errors.New("failed to encode save payload")
)

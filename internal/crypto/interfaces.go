package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher derives and checks stored password hashes. It knows nothing
// about accounts or storage.
type PasswordHasher interface {
	// Hash returns a self-describing encoded hash of password with a fresh
	// random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// value is an error; a wrong password is (false, nil).
	Verify(password, encoded string) (bool, error)
}

// TokenGenerator produces opaque random tokens for refresh and CSRF cookies.
type TokenGenerator interface {
	Generate() (string, error)
}

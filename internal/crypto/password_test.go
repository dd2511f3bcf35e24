package crypto

import (
	"errors"
	"strings"
	"testing"
)

// fastHasher keeps the test suite quick; the format is the same.
func fastHasher() PasswordHasher {
	return &argon2idHasher{argonTime: 1, argonMemory: 1024, argonThreads: 1, argonKeyLen: 16, saltLen: 8}
}

func TestHash_Format(t *testing.T) {
	encoded, err := NewPasswordHasher().Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := fastHasher()

	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("expected different hashes for two calls, got %q twice", a)
	}
}

func TestVerify(t *testing.T) {
	h := fastHasher()
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("correct horse battery staple", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = h.Verify("wrong", encoded)
	if err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestVerify_UsesStoredParameters(t *testing.T) {
	encoded, err := fastHasher().Hash("pw")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := NewPasswordHasher().Verify("pw", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify with default hasher = %v, %v; want true, nil", ok, err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	h := fastHasher()
	for _, encoded := range []string{
		"",
		"plain-text",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		if _, err := h.Verify("pw", encoded); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformedHash", encoded, err)
		}
	}
}

func TestTokenGenerator(t *testing.T) {
	g := NewTokenGenerator(0)

	a, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(a) != 43 {
		t.Fatalf("token length = %d, want 43", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
}

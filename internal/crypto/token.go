package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

type randomTokenGenerator struct {
	size int
}

// NewTokenGenerator returns a [TokenGenerator] producing size random bytes
// encoded as unpadded URL-safe base64.
func NewTokenGenerator(size int) TokenGenerator {
	if size <= 0 {
		size = 32
	}
	return &randomTokenGenerator{size: size}
}

func (g *randomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

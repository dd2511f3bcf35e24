package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// TokenHasher computes keyed HMAC-SHA256 digests of opaque tokens so only
// digests are ever persisted. Hashers are pooled to avoid an allocation per
// request.
type TokenHasher struct {
	pool sync.Pool
}

// NewTokenHasher creates a hasher keyed with hashKey.
func NewTokenHasher(hashKey string) *TokenHasher {
	key := []byte(hashKey)
	return &TokenHasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Hash returns the hex-encoded digest of token.
func (t *TokenHasher) Hash(token string) string {
	h := t.pool.Get().(hash.Hash)
	h.Reset()

	h.Write([]byte(token))
	sum := h.Sum(nil)

	h.Reset()
	t.pool.Put(h)

	return hex.EncodeToString(sum)
}

// HashString computes a one-off HMAC-SHA256 of data with hashKey and returns
// it hex-encoded.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

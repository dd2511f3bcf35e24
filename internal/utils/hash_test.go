// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenHasher_MatchesHMAC(t *testing.T) {
	h := NewTokenHasher("secret-key")

	mac := hmac.New(sha256.New, []byte("secret-key"))
	mac.Write([]byte("refresh-token"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, h.Hash("refresh-token"))
	assert.Equal(t, want, h.Hash("refresh-token"), "pooled hasher must be reset between uses")
	assert.Equal(t, want, HashString("refresh-token", "secret-key"))
}

func TestTokenHasher_KeyAndInputMatter(t *testing.T) {
	a := NewTokenHasher("k1")
	b := NewTokenHasher("k2")

	assert.NotEqual(t, a.Hash("x"), b.Hash("x"))
	assert.NotEqual(t, a.Hash("x"), a.Hash("y"))
}

func TestTokenHasher_Concurrent(t *testing.T) {
	h := NewTokenHasher("k")
	want := h.Hash("token")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, h.Hash("token"))
		}()
	}
	wg.Wait()
}

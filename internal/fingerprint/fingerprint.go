// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fingerprint computes short deterministic digests of save payloads
// for change detection.
//
// A fingerprint is derived from the canonical JSON form of a value, so two
// values that differ only in object key order fingerprint identically. The
// digest is a 32-bit FNV-1a hash paired with the canonical length:
//
//	fp1-<length hex>-<hash hex>
//
// Fingerprints are not a security primitive. A collision costs at most a
// skipped push, and the server's revision check still guards concurrent
// writes.
package fingerprint

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/MKhiriev/go-save-sync/models"
)

// Tag prefixes every fingerprint produced by this package.
const Tag = "fp1"

// Fingerprint returns the tagged fingerprint of v.
func Fingerprint(v any) (string, error) {
	canonical, err := Canonical(v)
	if err != nil {
		return "", fmt.Errorf("canonicalize value: %w", err)
	}

	return OfCanonical(canonical), nil
}

// OfCanonical fingerprints bytes that are already in canonical form.
func OfCanonical(canonical []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(canonical)

	return fmt.Sprintf("%s-%x-%08x", Tag, len(canonical), h.Sum32())
}

// PayloadFingerprint fingerprints a save payload. An empty payload has the
// empty fingerprint, meaning there is nothing local to sync.
func PayloadFingerprint(payload models.SavePayload) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}

	return Fingerprint(map[string]any(payload))
}

// IsFingerprint reports whether s looks like a fingerprint of this package.
func IsFingerprint(s string) bool {
	parts := strings.Split(s, "-")
	return len(parts) == 3 && parts[0] == Tag && parts[1] != "" && len(parts[2]) == 8
}

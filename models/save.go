// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SavePayload is the game-produced save tree. Values are JSON-like: maps,
// slices, strings, numbers, booleans and nil.
type SavePayload map[string]any

// IntegrityEnvelope is the versioned, checksummed wrapper persisted around a
// save payload in the local store.
type IntegrityEnvelope struct {
	// SchemaVersion is the envelope layout version. Version 1 envelopes carry
	// a fingerprint checksum, version 2 a BLAKE3 checksum.
	SchemaVersion int `json:"schemaVersion"`

	// SavedAt is the wall-clock time the envelope was created.
	SavedAt time.Time `json:"savedAt"`

	// Checksum is an algorithm-tagged digest of the canonical payload.
	Checksum string `json:"checksum"`

	// Payload is the wrapped save.
	Payload SavePayload `json:"payload"`
}

// CloudSaveMeta is the server-authoritative metadata returned with every
// cloud save read and write.
type CloudSaveMeta struct {
	UpdatedAt    *time.Time `json:"updatedAt"`
	VirtualScore float64    `json:"virtualScore"`
	AppVersion   string     `json:"appVersion"`
	Revision     *int64     `json:"revision"`
}

// HasRevision reports whether the server assigned a revision.
func (m CloudSaveMeta) HasRevision() bool {
	return m.Revision != nil
}

// CloudSave is the latest save stored for an account.
type CloudSave struct {
	Payload SavePayload   `json:"payload"`
	Meta    CloudSaveMeta `json:"meta"`
}

// ConflictRecord describes a revision conflict that waits for the user to
// pick a side.
type ConflictRecord struct {
	Meta    CloudSaveMeta `json:"meta"`
	Message string        `json:"message"`
}

// PutSaveRequest is the body of PUT /api/saves/latest.
type PutSaveRequest struct {
	Payload          SavePayload `json:"payload"`
	VirtualScore     float64     `json:"virtualScore"`
	AppVersion       string      `json:"appVersion"`
	ExpectedRevision *int64      `json:"expectedRevision"`
}

// SaveMetaResponse is returned by a successful or conflicting save write.
// Message explains a conflict.
type SaveMetaResponse struct {
	Meta    CloudSaveMeta `json:"meta"`
	Message string        `json:"message,omitempty"`
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/fingerprint"
	"github.com/MKhiriev/go-save-sync/models"
)

// Envelope layout versions.
const (
	SchemaVersionFingerprint = 1
	SchemaVersionCurrent     = 2
)

// Status is the outcome of reading a stored save.
type Status string

const (
	StatusEmpty             Status = "empty"
	StatusOK                Status = "ok"
	StatusMigrated          Status = "migrated"
	StatusRecoveredLastGood Status = "recovered_last_good"
	StatusCorrupt           Status = "corrupt"
)

// Result is what Unwrap and the local store report.
type Result struct {
	Status Status
	Save   models.SavePayload
	// Envelope is the validated envelope, upgraded to the current checksum
	// when the status is migrated.
	Envelope *models.IntegrityEnvelope
	// Raw is the stored text the result was read from.
	Raw string
	// Err explains a corrupt result.
	Err error
}

// Valid reports whether the result carries a usable save.
func (r Result) Valid() bool {
	switch r.Status {
	case StatusOK, StatusMigrated, StatusRecoveredLastGood:
		return true
	default:
		return false
	}
}

// Codec wraps and unwraps envelopes.
type Codec struct {
	migrator Migrator
	now      func() time.Time
}

// NewCodec creates a codec. A nil migrator means [DefaultMigrator], a nil
// clock means time.Now.
func NewCodec(migrator Migrator, now func() time.Time) *Codec {
	if migrator == nil {
		migrator = DefaultMigrator()
	}
	if now == nil {
		now = time.Now
	}

	return &Codec{migrator: migrator, now: now}
}

// wireEnvelope keeps the payload in its canonical bytes so the stored text
// hashes back to the stored checksum.
type wireEnvelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	SavedAt       time.Time       `json:"savedAt"`
	Checksum      string          `json:"checksum"`
	Payload       json.RawMessage `json:"payload"`
}

// Wrap builds a current envelope around payload.
func (c *Codec) Wrap(payload models.SavePayload) (models.IntegrityEnvelope, error) {
	if payload == nil {
		payload = models.SavePayload{}
	}
	canonical, err := fingerprint.Canonical(map[string]any(payload))
	if err != nil {
		return models.IntegrityEnvelope{}, fmt.Errorf("wrap save: %w", err)
	}

	return models.IntegrityEnvelope{
		SchemaVersion: SchemaVersionCurrent,
		SavedAt:       c.now().UTC(),
		Checksum:      Checksum(canonical),
		Payload:       payload,
	}, nil
}

// Encode serializes env for storage.
func (c *Codec) Encode(env models.IntegrityEnvelope) (string, error) {
	canonical, err := fingerprint.Canonical(map[string]any(env.Payload))
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}

	raw, err := json.Marshal(wireEnvelope{
		SchemaVersion: env.SchemaVersion,
		SavedAt:       env.SavedAt,
		Checksum:      env.Checksum,
		Payload:       canonical,
	})
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}

	return string(raw), nil
}

// Seal wraps and encodes payload in one step.
func (c *Codec) Seal(payload models.SavePayload) (string, models.IntegrityEnvelope, error) {
	env, err := c.Wrap(payload)
	if err != nil {
		return "", models.IntegrityEnvelope{}, err
	}
	raw, err := c.Encode(env)
	if err != nil {
		return "", models.IntegrityEnvelope{}, err
	}

	return raw, env, nil
}

// Unwrap validates stored text.
func (c *Codec) Unwrap(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Status: StatusEmpty}
	}

	value, err := DecodeJSON([]byte(raw))
	if err != nil {
		return corrupt(raw, fmt.Errorf("%w: %w", ErrMalformed, err))
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return corrupt(raw, ErrUnrecognizedShape)
	}

	if isEnvelope(obj) {
		return c.unwrapEnvelope(raw, obj)
	}
	if looksLikeLegacySave(obj) {
		return c.unwrapLegacy(raw, models.SavePayload(obj))
	}

	return corrupt(raw, ErrUnrecognizedShape)
}

func (c *Codec) unwrapEnvelope(raw string, obj map[string]any) Result {
	payload := models.SavePayload(obj["payload"].(map[string]any))
	checksum := obj["checksum"].(string)

	canonical, err := fingerprint.Canonical(map[string]any(payload))
	if err != nil {
		return corrupt(raw, err)
	}

	legacy, err := verifyChecksum(checksum, canonical)
	if err != nil {
		return corrupt(raw, err)
	}

	migrated, changed, err := c.migrator.Migrate(payload)
	if err != nil {
		return corrupt(raw, err)
	}

	if !legacy && !changed {
		schemaVersion, _ := toInt(obj["schemaVersion"])
		env := &models.IntegrityEnvelope{
			SchemaVersion: schemaVersion,
			SavedAt:       parseSavedAt(obj["savedAt"]),
			Checksum:      checksum,
			Payload:       payload,
		}
		return Result{Status: StatusOK, Save: payload, Envelope: env, Raw: raw}
	}

	return c.upgraded(raw, migrated)
}

func (c *Codec) unwrapLegacy(raw string, payload models.SavePayload) Result {
	migrated, _, err := c.migrator.Migrate(payload)
	if err != nil {
		return corrupt(raw, err)
	}

	return c.upgraded(raw, migrated)
}

// upgraded re-wraps a migrated payload with the current checksum.
func (c *Codec) upgraded(raw string, payload models.SavePayload) Result {
	env, err := c.Wrap(payload)
	if err != nil {
		return corrupt(raw, fmt.Errorf("%w: %w", ErrMigrationFailed, err))
	}

	return Result{Status: StatusMigrated, Save: payload, Envelope: &env, Raw: raw}
}

func corrupt(raw string, err error) Result {
	return Result{Status: StatusCorrupt, Raw: raw, Err: err}
}

func isEnvelope(obj map[string]any) bool {
	if _, ok := obj["schemaVersion"]; !ok {
		return false
	}
	if _, ok := obj["checksum"].(string); !ok {
		return false
	}
	_, ok := obj["payload"].(map[string]any)

	return ok
}

// parseSavedAt accepts RFC 3339 strings and Unix milliseconds.
func parseSavedAt(v any) time.Time {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}

	return time.Time{}
}

// DecodeJSON decodes one JSON value keeping numbers as json.Number so large
// integers survive a round trip.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}

	return value, nil
}

// DecodePayload decodes a JSON object into a save payload.
func DecodePayload(data []byte) (models.SavePayload, error) {
	value, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrUnrecognizedShape
	}

	return models.SavePayload(obj), nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gamehost adapts a game's on-disk save file to the sync
// controller's host interface.
package gamehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// LockSuffix names the sidecar file a game creates while an irreversible
// activity (a battle, a trade) is in progress.
const LockSuffix = ".lock"

// scoreKeys are the payload fields read as the virtual score, in order.
var scoreKeys = []string{"virtualScore", "score"}

var ErrSaveFileNotConfigured = errors.New("save file is not configured")

// FileHost keeps the save payload in a JSON file.
type FileHost struct {
	path   string
	logger *logger.Logger
}

// NewFileHost returns a host over the save file at path.
func NewFileHost(path string, logger *logger.Logger) (*FileHost, error) {
	if path == "" {
		return nil, ErrSaveFileNotConfigured
	}
	return &FileHost{path: path, logger: logger}, nil
}

// Path returns the save file location.
func (h *FileHost) Path() string {
	return h.path
}

// Snapshot reads the save file. A missing or empty file is no save.
func (h *FileHost) Snapshot(_ context.Context) (models.SavePayload, error) {
	raw, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload models.SavePayload
	if err = dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode save file: %w", err)
	}
	return payload, nil
}

// Apply replaces the save file. The new content is written to a temporary
// file in the same directory and renamed over the old one.
func (h *FileHost) Apply(_ context.Context, payload models.SavePayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(h.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(h.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp save: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}

	if err = os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}

	h.logger.Info().Str("path", h.path).Int("bytes", len(data)).Msg("save file replaced")
	return nil
}

// HasIrreversibleActivity reports whether the lock sidecar exists.
func (h *FileHost) HasIrreversibleActivity(_ context.Context) bool {
	_, err := os.Stat(h.path + LockSuffix)
	return err == nil
}

// VirtualScore returns the first numeric score field of payload, or 0.
func (h *FileHost) VirtualScore(payload models.SavePayload) float64 {
	for _, key := range scoreKeys {
		if score, ok := toFloat(payload[key]); ok {
			return score
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

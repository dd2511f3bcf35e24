package envelope

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"

	"github.com/MKhiriev/go-save-sync/models"
)

// CurrentSaveVersion is the save layout version produced by the game.
const CurrentSaveVersion = 2

// Key names recognised in legacy bare saves.
var (
	versionKeys = []string{"version", "saveVersion"}
	playersKeys = []string{"players", "roster"}
)

// Migrator upgrades a save payload to the current layout.
type Migrator interface {
	// Migrate returns the upgraded payload and whether anything changed.
	// The input payload is never modified.
	Migrate(payload models.SavePayload) (models.SavePayload, bool, error)
}

// Step upgrades a payload from one version to the next. It receives a
// shallow copy it may modify.
type Step func(payload models.SavePayload) (models.SavePayload, error)

// VersionedMigrator applies ordered steps keyed by the version they upgrade
// from.
type VersionedMigrator struct {
	current int
	steps   map[int]Step
}

// NewMigrator creates a migrator targeting current with the given steps.
func NewMigrator(current int, steps map[int]Step) *VersionedMigrator {
	return &VersionedMigrator{current: current, steps: steps}
}

// DefaultMigrator returns the migration pipeline of the shipped save layout.
func DefaultMigrator() *VersionedMigrator {
	return NewMigrator(CurrentSaveVersion, map[int]Step{
		1: renameLegacyKeys,
	})
}

// Migrate implements [Migrator]. Payloads without a version field are left
// untouched.
func (m *VersionedMigrator) Migrate(payload models.SavePayload) (models.SavePayload, bool, error) {
	version, ok := payloadVersion(payload)
	if !ok || version >= m.current {
		return payload, false, nil
	}

	out := maps.Clone(payload)
	for v := version; v < m.current; v++ {
		step, ok := m.steps[v]
		if !ok {
			continue
		}
		next, err := step(out)
		if err != nil {
			return payload, false, fmt.Errorf("%w: step %d->%d: %w", ErrMigrationFailed, v, v+1, err)
		}
		out = next
	}
	delete(out, "saveVersion")
	out["version"] = m.current

	return out, true, nil
}

// renameLegacyKeys moves the version 1 key names to their current ones.
func renameLegacyKeys(payload models.SavePayload) (models.SavePayload, error) {
	if roster, ok := payload["roster"]; ok {
		if _, taken := payload["players"]; !taken {
			payload["players"] = roster
		}
		delete(payload, "roster")
	}
	if v, ok := payload["saveVersion"]; ok {
		payload["version"] = v
		delete(payload, "saveVersion")
	}

	return payload, nil
}

// payloadVersion reads the first version-like field. A legacy save with a
// non-numeric version counts as version 1.
func payloadVersion(payload models.SavePayload) (int, bool) {
	for _, key := range versionKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if v, ok := toInt(raw); ok {
			return v, true
		}
		return 1, true
	}

	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// looksLikeLegacySave reports whether obj is a bare save written before
// envelopes: a version-like field plus a players-like container.
func looksLikeLegacySave(obj map[string]any) bool {
	hasVersion := false
	for _, key := range versionKeys {
		if _, ok := obj[key]; ok {
			hasVersion = true
			break
		}
	}
	if !hasVersion {
		return false
	}

	for _, key := range playersKeys {
		switch obj[key].(type) {
		case []any, map[string]any:
			return true
		}
	}

	return false
}

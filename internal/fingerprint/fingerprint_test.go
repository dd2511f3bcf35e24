package fingerprint

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func samplePayload() map[string]any {
	return map[string]any{
		"version": 3,
		"players": []any{
			map[string]any{"tags": []any{"a", "b"}, "score": 12.5, "name": "Ann <&>"},
			map[string]any{"score": 1e21, "name": "Bo", "active": true},
		},
		"settings": map[string]any{
			"zeta":   nil,
			"volume": 0.000001,
			"ratio":  math.NaN(),
			"alpha":  math.Copysign(0, -1),
		},
	}
}

// ── Canonical ─────────────────────────────────────────────────────────────────

func TestCanonical_Golden(t *testing.T) {
	got, err := Canonical(samplePayload())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "save_payload", got)
}

func TestCanonical_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "null"},
		{name: "true", in: true, want: "true"},
		{name: "int", in: 42, want: "42"},
		{name: "uint", in: uint8(7), want: "7"},
		{name: "integral float", in: 2.0, want: "2"},
		{name: "small float", in: 1e-7, want: "1e-7"},
		{name: "float32", in: float32(0.1), want: "0.1"},
		{name: "positive infinity", in: math.Inf(1), want: "null"},
		{name: "negative infinity", in: math.Inf(-1), want: "null"},
		{name: "json number int", in: json.Number("10"), want: "10"},
		{name: "json number float", in: json.Number("1.50"), want: "1.5"},
		{name: "html is not escaped", in: "<a&b>", want: `"<a&b>"`},
		{name: "control chars escaped", in: "a\nb", want: `"a\nb"`},
		{name: "nil slice", in: []any(nil), want: "null"},
		{name: "empty object", in: map[string]any{}, want: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCanonical_StructsGoThroughJSONTags(t *testing.T) {
	type player struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}
	got, err := Canonical(map[string]any{"p": player{Name: "x", Level: 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"p":{"level":2,"name":"x"}}`, string(got))
}

func TestCanonical_TimeUsesItsJSONForm(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := Canonical(map[string]any{"at": ts})
	require.NoError(t, err)
	assert.Equal(t, `{"at":"2026-01-02T03:04:05Z"}`, string(got))
}

func TestCanonical_UnsupportedKeyType(t *testing.T) {
	_, err := Canonical(map[int]string{1: "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestCanonical_UnsupportedKind(t *testing.T) {
	_, err := Canonical(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

// ── cycles ────────────────────────────────────────────────────────────────────

func TestCanonical_MapCycleFailsFast(t *testing.T) {
	root := map[string]any{"name": "root"}
	child := map[string]any{"parent": root}
	root["child"] = child

	_, err := Canonical(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicValue)
}

func TestCanonical_SliceCycleFailsFast(t *testing.T) {
	s := make([]any, 1)
	s[0] = s

	_, err := Canonical(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicValue)
}

func TestCanonical_SharedSubtreeIsNotACycle(t *testing.T) {
	shared := map[string]any{"hp": 10}
	got, err := Canonical(map[string]any{"a": shared, "b": shared, "list": []any{shared, shared}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"hp":10},"b":{"hp":10},"list":[{"hp":10},{"hp":10}]}`, string(got))
}

// ── Fingerprint ───────────────────────────────────────────────────────────────

func TestFingerprint_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "object", in: map[string]any{"a": 1, "b": 2}, want: "fp1-d-5314055b"},
		{name: "empty array", in: []any{}, want: "fp1-2-741638a5"},
		{name: "null", in: nil, want: "fp1-4-77074ba4"},
		{name: "sample payload", in: samplePayload(), want: "fp1-b6-78c5483d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fingerprint(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsFingerprint(got))
		})
	}
}

func TestFingerprint_KeyOrderIndependent(t *testing.T) {
	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":{"y":[1,2],"x":"s"}}`), &first))
	require.NoError(t, json.Unmarshal([]byte(`{"b":{"x":"s","y":[1,2]},"a":1}`), &second))

	fp1, err := Fingerprint(first)
	require.NoError(t, err)
	fp2, err := Fingerprint(second)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
}

func TestFingerprint_LeafChangeChangesFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]any{"name": "A"})
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{"name": "B"})
	require.NoError(t, err)

	assert.Equal(t, "fp1-c-d2713b33", a)
	assert.Equal(t, "fp1-c-698a45ca", b)
	assert.NotEqual(t, a, b)
}

func TestFingerprint_ArrayOrderMatters(t *testing.T) {
	a, err := Fingerprint([]any{1, 2})
	require.NoError(t, err)
	b, err := Fingerprint([]any{2, 1})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFingerprint_Cycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	got, err := Fingerprint(m)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrCyclicValue)
}

// ── PayloadFingerprint ────────────────────────────────────────────────────────

func TestPayloadFingerprint_EmptyIsEmpty(t *testing.T) {
	got, err := PayloadFingerprint(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = PayloadFingerprint(models.SavePayload{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPayloadFingerprint_MatchesFingerprint(t *testing.T) {
	payload := models.SavePayload{"version": 1, "players": []any{}}

	got, err := PayloadFingerprint(payload)
	require.NoError(t, err)
	assert.Equal(t, "fp1-1a-8c27f026", got)
}

func TestIsFingerprint(t *testing.T) {
	assert.True(t, IsFingerprint("fp1-d-5314055b"))
	assert.False(t, IsFingerprint(""))
	assert.False(t, IsFingerprint("fp2-d-5314055b"))
	assert.False(t, IsFingerprint("fp1-d-53"))
	assert.False(t, IsFingerprint("b3-abc"))
}

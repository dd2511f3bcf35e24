package utils

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		value    any
		wantBody string
	}{
		{
			name:     "token",
			status:   http.StatusOK,
			value:    models.CSRFResponse{CSRFToken: "csrf"},
			wantBody: `{"csrfToken":"csrf"}`,
		},
		{
			name:     "conflict keeps status",
			status:   http.StatusConflict,
			value:    map[string]string{"message": "save revision conflict"},
			wantBody: `{"message":"save revision conflict"}`,
		},
		{
			name:     "nil",
			status:   http.StatusOK,
			wantBody: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			require.NoError(t, WriteJSON(rec, tt.status, tt.value))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusOK, models.SavePayload{"bad": make(chan int)})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "chan")
}

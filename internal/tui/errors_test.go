package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/service"
)

func TestHumanizeActionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "no conflict", err: service.ErrNoConflict, want: "There is no conflict to resolve."},
		{name: "no cloud save", err: fmt.Errorf("pull: %w", service.ErrNoCloudSave), want: "The cloud has no save yet."},
		{name: "not authenticated", err: service.ErrNotAuthenticated, want: app.MsgPleaseLogInAgain},
		{name: "bad credentials", err: fmt.Errorf("login: %w", adapter.ErrUnauthorized), want: app.MsgInvalidLoginPassword},
		{name: "email taken", err: adapter.ErrConflict, want: app.MsgEmailAlreadyExists},
		{name: "offline", err: fmt.Errorf("get save: %w", adapter.ErrNetworkUnavailable), want: app.MsgOffline},
		{name: "warming", err: fmt.Errorf("get save: %w", adapter.ErrBackendWarming), want: app.MsgBackendUnavailable},
		{name: "other", err: errors.New("disk full"), want: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeActionError(tt.err))
		})
	}
}

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

var ErrUserQuit = errors.New("user quit")

// Controller is the sync surface driven by the status screen.
type Controller interface {
	State() models.SyncState
	Subscribe(fn func(models.SyncState)) (unsubscribe func())

	OnVisibilityChange(ctx context.Context, visible bool)
	SetAutoSyncEnabled(ctx context.Context, enabled bool)

	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context)

	ForceLoadCloud(ctx context.Context) error
	ForceOverwriteCloud(ctx context.Context) error
	ResolveConflictByLoading(ctx context.Context) error
	ResolveConflictByOverwriting(ctx context.Context) error
}

type TUI struct {
	controller Controller
	buildInfo  models.AppBuildInfo
	saveFile   string
	logger     *logger.Logger
}

func New(controller Controller, saveFile string, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{controller: controller, buildInfo: buildInfo, saveFile: saveFile, logger: logger}
}

// Run shows the status screen until the user quits or ctx is done.
// Terminal focus and blur are reported to the controller as the host
// becoming visible or hidden.
func (t *TUI) Run(ctx context.Context) error {
	p := tea.NewProgram(
		newModel(ctx, t.controller, t.saveFile, t.buildInfo),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	unsubscribe := t.controller.Subscribe(func(s models.SyncState) {
		p.Send(stateMsg{state: s})
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if m, ok := finalModel.(model); ok && m.quitByUser {
		t.logger.Info().Msg("status screen closed by user")
	}
	return nil
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-save-sync/models"
)

type screen int

const (
	screenStatus screen = iota
	screenLogin
	screenRegister
)

// pendingAction is the destructive action waiting for confirmation.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingPull
	pendingTakeCloud
	pendingTakeLocal
)

// Action names shown in the footer once they complete.
const (
	actionLogin     = "login"
	actionRegister  = "register"
	actionLogout    = "logout"
	actionAutoSync  = "auto-sync"
	actionPush      = "upload"
	actionPull      = "download"
	actionTakeCloud = "take cloud copy"
	actionTakeLocal = "keep local copy"
)

type model struct {
	ctx        context.Context
	controller Controller
	saveFile   string
	buildInfo  models.AppBuildInfo

	screen screen
	state  models.SyncState
	form   credentialsForm
	sync   syncModel
	busy   bool
	status string

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pending       pendingAction
	showBuildInfo bool

	quitByUser bool
}

func newModel(ctx context.Context, controller Controller, saveFile string, buildInfo models.AppBuildInfo) model {
	return model{
		ctx:        ctx,
		controller: controller,
		saveFile:   saveFile,
		buildInfo:  buildInfo,
		state:      controller.State(),
		sync:       newSyncModel(),
	}
}

func (m model) Init() tea.Cmd {
	return m.sync.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		return m, nil

	case actionDoneMsg:
		return m.actionDone(msg)

	case copiedMsg:
		m.status = "save file path copied"
		return m, clearStatusLater()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sync.spinner, cmd = m.sync.spinner.Update(msg)
		return m, cmd

	case tea.FocusMsg:
		return m, m.cmdVisibility(true)

	case tea.BlurMsg:
		return m, m.cmdVisibility(false)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.screen != screenStatus {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) actionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		if m.screen != screenStatus {
			m.form.errMsg = humanizeActionError(msg.err)
			return m, nil
		}
		m.showError = true
		m.errorOverlay.message = humanizeActionError(msg.err)
		return m, nil
	}

	m.screen = screenStatus
	m.status = msg.action + " done"
	return m, clearStatusLater()
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitByUser = true
		return m, tea.Quit
	}

	switch {
	case m.showError:
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil

	case m.showConfirm:
		return m.updateConfirm(msg)

	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil

	case m.screen != screenStatus:
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(msg, keys.version):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(msg, keys.copy):
		return m, cmdCopy(m.saveFile)
	}

	if !m.state.Authenticated {
		switch {
		case key.Matches(msg, keys.login):
			m.screen = screenLogin
			m.form = newCredentialsForm("LOG IN")
			return m, textinput.Blink
		case key.Matches(msg, keys.register):
			m.screen = screenRegister
			m.form = newCredentialsForm("REGISTER")
			return m, textinput.Blink
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	inConflict := m.state.AutoSync == models.AutoSyncConflict
	switch {
	case key.Matches(msg, keys.logout):
		return m.start(actionLogout, func(ctx context.Context) error {
			m.controller.Logout(ctx)
			return nil
		})
	case key.Matches(msg, keys.autoSync):
		enabled := !m.state.AutoSyncEnabled
		return m.start(actionAutoSync, func(ctx context.Context) error {
			m.controller.SetAutoSyncEnabled(ctx, enabled)
			return nil
		})
	case key.Matches(msg, keys.push):
		return m.start(actionPush, m.controller.ForceOverwriteCloud)
	case key.Matches(msg, keys.pull):
		return m.ask(pendingPull, "Replace the local save with the cloud save?")
	case inConflict && key.Matches(msg, keys.takeCloud):
		return m.ask(pendingTakeCloud, "Load the cloud save and discard local changes?")
	case inConflict && key.Matches(msg, keys.takeLocal):
		return m.ask(pendingTakeLocal, "Overwrite the cloud save with the local save?")
	}

	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		pending := m.pending
		m.showConfirm = false
		m.pending = pendingNone

		switch pending {
		case pendingPull:
			return m.start(actionPull, m.controller.ForceLoadCloud)
		case pendingTakeCloud:
			return m.start(actionTakeCloud, m.controller.ResolveConflictByLoading)
		case pendingTakeLocal:
			return m.start(actionTakeLocal, m.controller.ResolveConflictByOverwriting)
		}
		return m, nil

	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.pending = pendingNone
	}
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenStatus
		m.form.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.tab):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.form.focusPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.busy {
			return m, nil
		}
		creds, ok := m.form.credentials()
		if !ok {
			return m, nil
		}

		if m.screen == screenRegister {
			return m.start(actionRegister, func(ctx context.Context) error {
				return m.controller.Register(ctx, creds)
			})
		}
		return m.start(actionLogin, func(ctx context.Context) error {
			return m.controller.Login(ctx, creds)
		})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m model) ask(action pendingAction, question string) (tea.Model, tea.Cmd) {
	m.showConfirm = true
	m.pending = action
	m.confirm = confirmModel{message: question}
	return m, nil
}

// start runs fn off the UI goroutine. The controller publishes state
// changes into the program, so it must never be called from Update.
func (m model) start(action string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

func (m model) cmdVisibility(visible bool) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		controller.OnVisibilityChange(ctx, visible)
		return nil
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return actionDoneMsg{action: "copy", err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m model) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.screen {
	case screenLogin, screenRegister:
		body = m.form.View(m.busy)
	default:
		body = m.statusView()
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	return appStyle.Render(body)
}

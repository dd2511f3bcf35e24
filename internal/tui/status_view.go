package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-save-sync/models"
)

const saveFileWidth = 44

func (m model) statusView() string {
	s := m.state
	var b strings.Builder

	row := func(name, value string) {
		fmt.Fprintf(&b, "%-11s │ %s\n", name, value)
	}

	account := "not logged in"
	if s.Authenticated {
		account = s.Email
		if account == "" {
			account = "logged in"
		}
	}
	row("Account", account)
	row("Status", renderStatus(s.Status))
	row("Auto-sync", renderAutoSync(s))
	row("Cloud save", renderMeta(s.CloudMeta))
	row("Last sync", timeOrDash(s.LastSync))
	row("Synced rev", renderWatermark(s.Watermark))
	row("Save file", fitText(valueOrDash(m.saveFile), saveFileWidth))
	if s.RetryAt != nil {
		row("Retry at", timeOrDash(s.RetryAt))
	}
	if s.Message != "" {
		row("Message", s.Message)
	}

	if s.AutoSync == models.AutoSyncSyncing || m.busy {
		b.WriteString("\n")
		b.WriteString(m.sync.View())
		b.WriteString("\n")
	}

	if s.Conflict != nil {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Conflict: " + valueOrDash(s.Conflict.Message)))
		b.WriteString("\n")
		b.WriteString("Cloud copy: ")
		b.WriteString(renderMeta(&s.Conflict.Meta))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage("SAVE SYNC", strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m model) hotKeys() string {
	if !m.state.Authenticated {
		return "i: log in │ r: register │ y: copy path │ v: about"
	}

	hints := []string{"a: auto-sync", "p: upload", "g: download"}
	if m.state.AutoSync == models.AutoSyncConflict {
		hints = append(hints, "c: take cloud", "l: keep local")
	}
	hints = append(hints, "o: log out", "y: copy path", "v: about")
	return strings.Join(hints, " │ ")
}

func renderStatus(status models.SyncStatus) string {
	switch status {
	case models.SyncStatusReady:
		return okStyle.Render(string(status))
	case models.SyncStatusError:
		return errorStyle.Render(string(status))
	case models.SyncStatusOffline, models.SyncStatusWarming:
		return warnStyle.Render(string(status))
	default:
		return string(status)
	}
}

func renderAutoSync(s models.SyncState) string {
	if !s.AutoSyncEnabled {
		return "off"
	}
	return "on, " + string(s.AutoSync)
}

func renderMeta(meta *models.CloudSaveMeta) string {
	if meta == nil {
		return "-"
	}

	parts := []string{"rev " + revisionOrDash(meta.Revision)}
	parts = append(parts, "score "+strconv.FormatFloat(meta.VirtualScore, 'f', -1, 64))
	if meta.AppVersion != "" {
		parts = append(parts, "v"+meta.AppVersion)
	}
	parts = append(parts, timeOrDash(meta.UpdatedAt))
	return strings.Join(parts, " · ")
}

func renderWatermark(w *models.SyncWatermark) string {
	if w == nil {
		return "never synced"
	}
	return revisionOrDash(w.CloudRevision)
}

func revisionOrDash(rev *int64) string {
	if rev == nil {
		return "-"
	}
	return strconv.FormatInt(*rev, 10)
}

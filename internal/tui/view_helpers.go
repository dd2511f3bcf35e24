package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const uiDivider = "──────────────────────────────────────────────────────"

var indent = lipgloss.NewStyle().PaddingLeft(2)

// renderPage lays out a titled screen with its hot keys below the body.
// Quit is always offered.
func renderPage(title, body, hotKeys string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	footer := "q: quit"
	if hotKeys != "" {
		footer = hotKeys + " │ " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		indent.Render(uiDivider),
		"",
		indent.Render(body),
		"",
		indent.Render(uiDivider),
		indent.Render(helpStyle.Render(footer)),
	)
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func timeOrDash(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

// fitText keeps the tail of a long path, which is the part that tells
// save files apart.
func fitText(v string, width int) string {
	r := []rune(v)
	if width <= 0 || len(r) <= width {
		return v
	}
	if width == 1 {
		return "…"
	}
	return "…" + string(r[len(r)-width+1:])
}

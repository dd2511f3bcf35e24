package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFitText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "save.json", width: 20, want: "save.json"},
		{name: "keeps tail", in: "/home/player/games/save.json", width: 10, want: "…save.json"},
		{name: "multibyte", in: "/saves/игрок/save.json", width: 11, want: "…/save.json"},
		{name: "unbounded", in: "/a/b", width: 0, want: "/a/b"},
		{name: "one", in: "/a/b", width: 1, want: "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitText(tt.in, tt.width))
		})
	}
}

func TestRenderPage(t *testing.T) {
	page := renderPage("SAVE SYNC", "", "p: upload")

	assert.Contains(t, page, "SAVE SYNC")
	assert.Contains(t, page, "  -")
	assert.Contains(t, page, "p: upload │ q: quit")
}

func TestTimeOrDash(t *testing.T) {
	assert.Equal(t, "-", timeOrDash(nil))
	assert.Equal(t, "-", timeOrDash(&time.Time{}))

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-03-01 12:00:00", timeOrDash(&ts))
}

package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   OutputMode
	}{
		{"json", "json", OutputModeJSON},
		{"terminal to buffer", "terminal", OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := New(&bytes.Buffer{}, &bytes.Buffer{}, tt.format)
			if u.Mode != tt.want {
				t.Errorf("Mode = %v, want %v", u.Mode, tt.want)
			}
			if u.Styles.Enabled() {
				t.Error("styles should be disabled off a terminal")
			}
		})
	}
}

func TestStartProgressNonInteractive(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, "terminal")
	pc := u.StartProgress()
	if pc != nil {
		t.Fatal("expected nil controller for plain output")
	}
	// nil controllers are no-ops
	pc.SetStage(StageAnalyze)
	pc.SetFileCount(2)
	pc.FileStart("a.md")
	pc.FileDone()
	pc.Done(nil)
}

func TestBand(t *testing.T) {
	s := NewStyles(false)
	tests := []struct {
		color string
		icon  string
	}{
		{"red", "POOR:"},
		{"orange", "FAIR:"},
		{"green", "GOOD:"},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			style, icon := s.Band(tt.color)
			if icon != tt.icon {
				t.Errorf("icon = %q, want %q", icon, tt.icon)
			}
			if got := style.Render("x"); got != "x" {
				t.Errorf("disabled style rendered %q", got)
			}
		})
	}
}

func TestModel(t *testing.T) {
	var m Model = NewModel()
	steps := []any{StageMsg(StageAnalyze), FileCountMsg(2), FileStartMsg("guide.md"), FileDoneMsg{}}
	for _, msg := range steps {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if m.filesDone != 1 || m.fileCount != 2 {
		t.Errorf("filesDone = %d, fileCount = %d", m.filesDone, m.fileCount)
	}
	if view := m.View(); !strings.Contains(view, "Analyzing guide.md") {
		t.Errorf("View() = %q", view)
	}

	next, cmd := m.Update(DoneMsg{})
	m = next.(Model)
	if cmd == nil || m.View() != "" {
		t.Error("DoneMsg should quit and clear the view")
	}
}

func TestNoColorForcesPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if mode := detectMode(&bytes.Buffer{}, "terminal"); mode != OutputModePlain {
		t.Errorf("mode = %v, want plain", mode)
	}
	if mode := detectMode(&bytes.Buffer{}, "json"); mode != OutputModeJSON {
		t.Errorf("json format should win over NO_COLOR, got %v", mode)
	}
}

func TestWarn(t *testing.T) {
	var errBuf bytes.Buffer
	u := New(&bytes.Buffer{}, &errBuf, "terminal")
	u.Warn("rule %s failed", "css-terms")
	if got := errBuf.String(); got != "WARN: Warning: rule css-terms failed\n" {
		t.Errorf("Warn() wrote %q", got)
	}
}

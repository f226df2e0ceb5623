// Package ui detects the output mode and renders progress for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables colors and the progress display
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (for piped output)
	OutputModePlain
	// OutputModeJSON outputs raw JSON only
	OutputModeJSON
)

// UI bundles the writers and styles used by one command invocation.
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a UI, detecting whether w is a terminal.
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

// detectMode picks JSON when asked for, plain output when NO_COLOR is set or
// w is not a terminal, and interactive output otherwise.
func detectMode(w io.Writer, format string) OutputMode {
	if format == "json" {
		return OutputModeJSON
	}
	if os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

// IsInteractive reports whether output goes to a terminal.
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON reports whether JSON output was requested.
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}

// Warn prints a styled warning line to ErrWriter.
func (ui *UI) Warn(format string, args ...any) {
	msg := fmt.Sprintf("%s Warning: %s", ui.Styles.IconWarning, fmt.Sprintf(format, args...))
	fmt.Fprintln(ui.ErrWriter, ui.Styles.Warning.Render(msg))
}

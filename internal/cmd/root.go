// Package cmd implements the doclint command line.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/doclint/internal/ui"
)

var (
	// Global flags
	verbose bool
	format  string
)

// RootCmd is the doclint entry point.
var RootCmd = &cobra.Command{
	Use:   "doclint",
	Short: "A style linter and quality scorer for prose documents",
	Long: `doclint splits documents into paragraphs, checks each one against a
catalog of style rules, scores its readability and reports what to fix.

It reads plain text, markdown, AsciiDoc, HTML, PDF and Word files, and can
also run as an HTTP service.`,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
}

// GetUI returns the UI for the current invocation.
func GetUI() *ui.UI {
	return ui.New(os.Stdout, os.Stderr, format)
}

// newLogger returns a text logger for CLI diagnostics. Rule failures are
// logged at warn level, so they show up without --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

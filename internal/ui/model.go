package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of a lint run
type Stage int

const (
	StageLoadRules Stage = iota
	StageAnalyze
	StageDone
)

// Message types for updating the model
type (
	StageMsg     Stage
	FileStartMsg string
	FileDoneMsg  struct{}
	FileCountMsg int
	DoneMsg      struct{ Err error }
)

// Model is the bubbletea model for progress display
type Model struct {
	stage     Stage
	spinner   spinner.Model
	progress  progress.Model
	current   string
	fileCount int
	filesDone int
	quitting  bool
	err       error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		stage:    StageLoadRules,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		return m, nil

	case FileCountMsg:
		m.fileCount = int(msg)
		return m, nil

	case FileStartMsg:
		m.current = string(msg)
		return m, nil

	case FileDoneMsg:
		m.filesDone++
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.stage = StageDone
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	switch m.stage {
	case StageLoadRules:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading rule catalog...")

	case StageAnalyze:
		if m.fileCount > 1 {
			sb.WriteString(m.progress.ViewAs(float64(m.filesDone) / float64(m.fileCount)))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		if m.current != "" {
			sb.WriteString(fmt.Sprintf(" Analyzing %s", m.current))
		} else {
			sb.WriteString(" Analyzing...")
		}
	}
	return sb.String()
}

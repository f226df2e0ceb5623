package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display in interactive mode. It returns
// nil otherwise; every method is safe to call on a nil controller.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(NewModel(), tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))
	pc := &ProgressController{program: p, done: make(chan struct{})}
	go func() {
		defer close(pc.done)
		_, _ = p.Run()
	}()
	return pc
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	pc.send(StageMsg(stage))
}

// SetFileCount sets the number of files to analyze
func (pc *ProgressController) SetFileCount(n int) {
	pc.send(FileCountMsg(n))
}

// FileStart indicates a file is being analyzed
func (pc *ProgressController) FileStart(name string) {
	pc.send(FileStartMsg(name))
}

// FileDone indicates a file has been analyzed
func (pc *ProgressController) FileDone() {
	pc.send(FileDoneMsg{})
}

// Done stops the display and waits for the terminal to be restored.
func (pc *ProgressController) Done(err error) {
	if pc == nil || pc.program == nil {
		return
	}
	pc.program.Send(DoneMsg{Err: err})
	<-pc.done
}

func (pc *ProgressController) send(msg tea.Msg) {
	if pc != nil && pc.program != nil {
		pc.program.Send(msg)
	}
}

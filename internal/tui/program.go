package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"grantdocs/internal/wizard"
)

// NewProgram builds a Machine around sub and a Program showing it. Every
// machine change reaches the Model as a ChangedMsg.
//
// The machine notifies on the goroutine that changed it, which is usually
// the event loop inside Update. Program.Send blocks until that loop reads
// the message, so the forward happens on its own goroutine.
func NewProgram(ctx context.Context, sub wizard.Submitter, wopts []wizard.Option, popts ...tea.ProgramOption) (*tea.Program, *wizard.Machine) {
	var prog atomic.Pointer[tea.Program]

	opts := append([]wizard.Option{}, wopts...)
	opts = append(opts, wizard.WithOnChange(func(wizard.State) {
		if p := prog.Load(); p != nil {
			go p.Send(ChangedMsg{})
		}
	}))
	machine := wizard.New(sub, opts...)

	p := tea.NewProgram(New(ctx, machine), popts...)
	prog.Store(p)
	return p, machine
}

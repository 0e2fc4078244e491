package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/tui"
)

// progress runs the fetch view on a terminal stderr while a command works.
type progress struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// interactive reports whether w is a terminal that can host the progress view.
func interactive(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// startProgress wraps provider so every fetch is reported to a running
// program. Interrupting the program cancels the returned context. When out is
// not a terminal the provider and context are returned untouched.
func startProgress(ctx context.Context, out io.Writer, title string, provider ports.SourceProvider) (*progress, ports.SourceProvider, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	if !interactive(out) {
		return nil, provider, ctx, cancel
	}

	p := &progress{
		program: tea.NewProgram(tui.NewModel(title), tea.WithOutput(out), tea.WithContext(ctx)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		final, err := p.program.Run()
		p.err = err
		if m, ok := final.(tui.Model); ok && m.Cancelled() {
			cancel()
		}
	}()

	return p, tui.NewReporter(provider, p.program.Send), ctx, cancel
}

// finish ends the view with the outcome of the run and waits for it to exit.
func (p *progress) finish(runErr error) {
	if p == nil {
		return
	}
	p.program.Send(tui.DoneMsg{Err: runErr})
	<-p.done
}

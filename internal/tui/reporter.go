package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// Reporter forwards every fetch of the wrapped provider to a running
// program as FetchStartMsg and FetchDoneMsg.
type Reporter struct {
	next ports.SourceProvider
	send func(tea.Msg)
}

// NewReporter wraps next. send is usually (*tea.Program).Send.
func NewReporter(next ports.SourceProvider, send func(tea.Msg)) *Reporter {
	return &Reporter{next: next, send: send}
}

// Fetch implements ports.SourceProvider.
func (r *Reporter) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.Source, error) {
	r.send(FetchStartMsg{Locator: req.Locator})

	src, err := r.next.Fetch(ctx, req)
	done := FetchDoneMsg{Locator: req.Locator, Err: err}
	if src != nil {
		done.Status = src.Status
	}
	r.send(done)
	return src, err
}

var _ ports.SourceProvider = (*Reporter)(nil)

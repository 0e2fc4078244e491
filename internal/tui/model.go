// Package tui shows live progress while scheme and template sources are
// cloned or pulled.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// FetchStartMsg reports that a locator is being fetched.
type FetchStartMsg struct {
	Locator string
}

// FetchDoneMsg reports the outcome of a fetch.
type FetchDoneMsg struct {
	Locator string
	Status  ports.FetchStatus
	Err     error
}

// DoneMsg ends the program once the whole run has finished.
type DoneMsg struct {
	Err error
}

type fetchState struct {
	running bool
	status  ports.FetchStatus
	err     error
}

// Model tracks every fetch of a run in the order it started.
type Model struct {
	title     string
	spinner   spinner.Model
	order     []string
	fetches   map[string]fetchState
	finished  bool
	cancelled bool
	err       error
}

// NewModel creates a progress model with the given heading.
func NewModel(title string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		title:   title,
		spinner: s,
		fetches: make(map[string]fetchState),
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Finished reports whether the run has completed.
func (m Model) Finished() bool {
	return m.finished
}

// Cancelled reports whether the user interrupted the run.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Counts returns how many fetches completed and how many of them changed
// something on disk.
func (m Model) Counts() (done, changed int) {
	for _, f := range m.fetches {
		if f.running {
			continue
		}
		done++
		if f.err == nil && f.status.Changed() {
			changed++
		}
	}
	return done, changed
}

func (m *Model) ensure(locator string) fetchState {
	state, ok := m.fetches[locator]
	if !ok {
		m.order = append(m.order, locator)
	}
	return state
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the model.
func (m Model) View() string {
	sections := []string{titleStyle.Render("base16-builder • " + m.title)}

	if len(m.order) > 0 {
		lines := make([]string, 0, len(m.order))
		for _, locator := range m.order {
			lines = append(lines, fmt.Sprintf(" %s %s", m.icon(m.fetches[locator]), locator))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	done, changed := m.Counts()
	summary := fmt.Sprintf("%d fetched, %d changed", done, changed)
	switch {
	case m.cancelled:
		summary += " (cancelled)"
	case m.err != nil:
		summary += " " + failureStyle.Render("failed: "+m.err.Error())
	}
	sections = append(sections, summaryStyle.Render(summary))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) icon(state fetchState) string {
	switch {
	case state.running:
		return m.spinner.View()
	case state.err != nil:
		return failureStyle.Render("✗")
	case state.status.Changed():
		return successStyle.Render("✓")
	default:
		return skippedStyle.Render("·")
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loader is the loading indicator shared by the pages. The spinner only
// ticks while a fetch is in flight.
type loader struct {
	spinner spinner.Model
	active  bool
}

func newLoader() loader {
	return loader{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorPink)),
		),
	}
}

// start marks a fetch in flight and returns the first spinner tick.
func (l *loader) start() tea.Cmd {
	l.active = true
	return l.spinner.Tick
}

func (l *loader) stop() { l.active = false }

// update advances the spinner; ticks are dropped once loading is over.
func (l *loader) update(msg spinner.TickMsg) tea.Cmd {
	if !l.active {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// renderLoadingPlaceholder renders the spinner centered in the area.
func (l *loader) renderLoadingPlaceholder(label string, width, height int) string {
	text := l.spinner.View() + " " + helpStyle.Italic(true).Render(label)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpModal struct {
	vp   viewport.Model
	keys KeyMap
}

func newHelpModal(keys KeyMap) *helpModal {
	return &helpModal{vp: viewport.New(0, 0), keys: keys}
}

func (m *helpModal) ID() string { return "help" }

func (m *helpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(km, m.keys.Back) || key.Matches(km, m.keys.Help) || key.Matches(km, m.keys.Quit) {
			return true, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return false, cmd
}

func (m *helpModal) View(width, height int) string {
	modalWidth := max(20, width-8)  // 4 chars margin on each side
	modalHeight := max(8, height-4) // 2 lines margin top and bottom

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	m.vp.Width = contentWidth
	m.vp.Height = contentHeight
	m.vp.SetContent(m.content())

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(m.vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render("Help")

	statusBar := helpStyle.Render("up/down/Wheel: Scroll | PgUp/PgDn: Page | ?/ESC: Close")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

func (m *helpModal) content() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"GLOBAL", []key.Binding{m.keys.Help, m.keys.Back, m.keys.Quit, m.keys.ForceQuit}},
		{"NAVIGATION", []key.Binding{m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown, m.keys.Home, m.keys.End, m.keys.Enter, m.keys.NextTab, m.keys.PrevTab}},
		{"HOME", []key.Binding{m.keys.StepBack, m.keys.StepForward, m.keys.Search, m.keys.Top, m.keys.Reload}},
		{"LISTS & DETAILS", []key.Binding{m.keys.LoadMore, m.keys.VoiceActor, m.keys.OpenAnime}},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionTitleStyle.Render(s.title) + "\n")
		for _, kb := range s.bindings {
			h := kb.Help()
			b.WriteString("  " + padRight(h.Key, 14) + helpStyle.Render(h.Desc) + "\n")
		}
	}
	b.WriteString("\n" + sectionTitleStyle.Render("CAROUSEL") + "\n")
	b.WriteString("  Drag the strip with the mouse to scroll it; it resumes on its own\n")
	b.WriteString("  shortly after you let go. Click ‹ › to step, click a card to open it.\n")
	return b.String()
}

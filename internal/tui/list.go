package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// listView tracks a cursor over n rows and the scroll offset that keeps it
// visible.
type listView struct {
	cursor int
	offset int
}

func (l *listView) reset() { l.cursor, l.offset = 0, 0 }

func (l *listView) clamp(n int) {
	if n <= 0 {
		l.reset()
		return
	}
	l.cursor = max(0, min(l.cursor, n-1))
}

// handleKey moves the cursor for navigation keys and reports whether the
// key was consumed.
func (l *listView) handleKey(msg tea.KeyMsg, keys KeyMap, n, page int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		l.cursor--
	case key.Matches(msg, keys.Down):
		l.cursor++
	case key.Matches(msg, keys.PageUp):
		l.cursor -= max(1, page)
	case key.Matches(msg, keys.PageDown):
		l.cursor += max(1, page)
	case key.Matches(msg, keys.Home):
		l.cursor = 0
	case key.Matches(msg, keys.End):
		l.cursor = n - 1
	default:
		return false
	}
	l.clamp(n)
	return true
}

// handleWheel scrolls the cursor with the mouse wheel.
func (l *listView) handleWheel(msg tea.MouseMsg, n int, reverse bool) bool {
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return false
	}
	if reverse {
		delta = -delta
	}
	l.cursor += delta
	l.clamp(n)
	return true
}

// render draws the visible slice of rows, highlighting the cursor row.
func (l *listView) render(rows []string, width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(rows) == 0 {
		return helpStyle.Render("Nothing here.")
	}
	l.clamp(len(rows))
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	l.offset = max(0, min(l.offset, len(rows)-height))

	end := min(len(rows), l.offset+height)
	out := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		line := padRight(truncate(rows[i], width-2), width-2)
		if i == l.cursor {
			out = append(out, selectedRowStyle.Render("▸ "+line))
		} else {
			out = append(out, "  "+line)
		}
	}
	return strings.Join(out, "\n")
}

// renderTabs draws a tab bar with the active tab highlighted.
func renderTabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = activeTabStyle.Render(l)
		} else {
			parts[i] = tabStyle.Render(l)
		}
	}
	return strings.Join(parts, " ")
}

// cycleTab returns the next tab index for NextTab/PrevTab keys, or -1.
func cycleTab(msg tea.KeyMsg, keys KeyMap, active, n int) int {
	switch {
	case key.Matches(msg, keys.NextTab):
		return (active + 1) % n
	case key.Matches(msg, keys.PrevTab):
		return (active - 1 + n) % n
	}
	return -1
}

package tui

import (
	"html"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// truncate cuts s to width display columns, adding an ellipsis when cut.
// Wide runes (CJK titles) count as two columns; styled strings are cut
// without breaking their escape sequences.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if strings.Contains(s, "\x1b") {
		return ansi.Truncate(s, width, "…")
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// sanitize strips any markup from upstream free text.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// proseRenderer renders synopsis-like text with glamour, reusing the
// renderer until the wrap width changes.
type proseRenderer struct {
	width int
	r     *glamour.TermRenderer
}

func (p *proseRenderer) render(raw string, width int) string {
	text := sanitize(raw)
	if text == "" {
		return helpStyle.Render("No information available.")
	}
	width = max(20, width)
	if p.r == nil || p.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return lipgloss.NewStyle().Width(width).Render(text)
		}
		p.r, p.width = r, width
	}
	out, err := p.r.Render(text)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(text)
	}
	return strings.Trim(out, "\n")
}

// field renders "label value" with the shared label style.
func field(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

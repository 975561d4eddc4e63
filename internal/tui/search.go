package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// SearchPage shows title search results.
type SearchPage struct {
	cat     model.AnimeLister
	keys    KeyMap
	reverse bool

	query   string
	items   []model.Anime
	pageNum int
	hasNext bool
	more    bool
	seq     int

	input textinput.Model
	list  listView
	load  loader

	height int
}

// NewSearchPage creates the search results page.
func NewSearchPage(cat model.AnimeLister, reverseWheel bool) *SearchPage {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.PromptStyle = searchPromptStyle
	ti.Placeholder = "Search anime…"
	ti.CharLimit = 100
	return &SearchPage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		input:   ti,
		load:    newLoader(),
	}
}

func (p *SearchPage) ID() string { return searchPageID }

func (p *SearchPage) Title() string {
	if p.query == "" {
		return "Search"
	}
	return fmt.Sprintf("Search %q", truncate(p.query, 24))
}

func (p *SearchPage) Init() tea.Cmd { return nil }

// Enter runs the search given as params (a string) unless it is the query
// already shown.
func (p *SearchPage) Enter(params interface{}) tea.Cmd {
	q, _ := params.(string)
	q = strings.TrimSpace(q)
	if q == "" || (q == p.query && len(p.items) > 0) {
		return nil
	}
	return p.run(q)
}

func (p *SearchPage) Leave() { p.input.Blur() }

func (p *SearchPage) CapturingInput() bool { return p.input.Focused() }

func (p *SearchPage) run(query string) tea.Cmd {
	p.query = query
	p.items = nil
	p.hasNext = false
	p.list.reset()
	return p.fetch(1, false)
}

func (p *SearchPage) fetch(page int, more bool) tea.Cmd {
	p.seq++
	p.more = more
	seq, query, cat := p.seq, p.query, p.cat
	load := fetch(func(ctx context.Context) tea.Msg {
		res, err := cat.SearchAnime(ctx, query, page)
		return searchLoadedMsg{seq: seq, query: query, page: res, err: err}
	})
	p.pageNum = page
	return tea.Batch(p.load.start(), load)
}

func (p *SearchPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		p.input.Width = max(10, msg.Width/2)
		return nil, nil

	case searchLoadedMsg:
		if msg.seq != p.seq {
			return nil, nil
		}
		p.load.stop()
		if msg.err != nil {
			return reportError("search", msg.err), nil
		}
		if p.more {
			p.items = model.MergeUnique(p.items, msg.page.Items)
		} else {
			p.items = model.MergeUnique(nil, msg.page.Items)
		}
		p.hasNext = msg.page.Pagination.HasNextPage
		return nil, nil

	case spinner.TickMsg:
		return p.load.update(msg), nil

	case tea.MouseMsg:
		p.list.handleWheel(msg, len(p.items), p.reverse)
		return nil, nil

	case tea.KeyMsg:
		if p.input.Focused() {
			switch msg.Type {
			case tea.KeyEnter:
				p.input.Blur()
				if q := strings.TrimSpace(p.input.Value()); q != "" {
					return p.run(q), nil
				}
				return nil, nil
			case tea.KeyEsc:
				p.input.Blur()
				return nil, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return cmd, nil
		}
		switch {
		case key.Matches(msg, p.keys.Search):
			p.input.SetValue(p.query)
			p.input.CursorEnd()
			return p.input.Focus(), nil
		case key.Matches(msg, p.keys.LoadMore):
			if p.hasNext && !p.load.active {
				return p.fetch(p.pageNum+1, true), nil
			}
			return nil, nil
		case key.Matches(msg, p.keys.Enter):
			if len(p.items) > 0 {
				return nil, navTo(animePageID, p.items[p.list.cursor].MalID)
			}
			return nil, nil
		}
		p.list.handleKey(msg, p.keys, len(p.items), max(1, p.height-4))
	}
	return nil, nil
}

func (p *SearchPage) View(width, height int) string {
	var header string
	if p.input.Focused() {
		header = p.input.View()
	} else {
		header = sectionTitleStyle.Render("Results for ") + valueStyle.Render(truncate(p.query, max(10, width-20)))
	}

	bodyHeight := max(1, height-3)
	var body string
	switch {
	case p.load.active && !p.more:
		body = p.load.renderLoadingPlaceholder("Searching…", width, bodyHeight)
	case len(p.items) == 0 && p.query != "":
		body = helpStyle.Render("No anime matched. Press / to search again.")
	default:
		titleWidth := max(10, width-30)
		rows := make([]string, len(p.items))
		for i, a := range p.items {
			rows[i] = padRight(truncate(a.DisplayTitle(), titleWidth), titleWidth) +
				fmt.Sprintf("  ★ %-5s %-6s %s", a.ScoreLabel(), a.Type, a.SeasonLabel())
		}
		body = p.list.render(rows, width, bodyHeight)
	}

	footer := helpStyle.Render(fmt.Sprintf("%d results", len(p.items)))
	if p.hasNext {
		footer += helpStyle.Render(" · m load more")
	}
	out := lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

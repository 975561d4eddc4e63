package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/jikan"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// TopPage lists the top anime rankings with one tab per listing and
// incremental "load more" paging.
type TopPage struct {
	cat     model.AnimeLister
	keys    KeyMap
	reverse bool

	tab         int
	items       []model.Anime
	pageNum     int
	hasNext     bool
	loadingMore bool
	seq         int

	list listView
	load loader

	height int
}

// NewTopPage creates the rankings page.
func NewTopPage(cat model.AnimeLister, reverseWheel bool) *TopPage {
	return &TopPage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		load:    newLoader(),
	}
}

func (p *TopPage) ID() string    { return topPageID }
func (p *TopPage) Title() string { return "Top Anime" }

func (p *TopPage) Init() tea.Cmd {
	if len(p.items) > 0 {
		return nil
	}
	return p.fetch(1, false)
}

func (p *TopPage) Enter(interface{}) tea.Cmd { return p.Init() }

func (p *TopPage) currentTab() jikan.TopTab { return jikan.TopTabs[p.tab] }

// fetch requests one page of the current tab. Results of an earlier request
// are discarded once a newer one is issued.
func (p *TopPage) fetch(page int, more bool) tea.Cmd {
	p.seq++
	p.loadingMore = more
	seq, tab, cat := p.seq, p.currentTab(), p.cat
	load := fetch(func(ctx context.Context) tea.Msg {
		res, err := tab.Fetch(ctx, cat, page)
		return topLoadedMsg{seq: seq, more: more, pageNum: page, page: res, err: err}
	})
	return tea.Batch(p.load.start(), load)
}

func (p *TopPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		return nil, nil

	case topLoadedMsg:
		if msg.seq != p.seq {
			return nil, nil
		}
		p.load.stop()
		p.loadingMore = false
		if msg.err != nil {
			return reportError("top anime", msg.err), nil
		}
		if msg.more {
			p.items = model.MergeUnique(p.items, msg.page.Items)
		} else {
			p.items = model.MergeUnique(nil, msg.page.Items)
			p.list.reset()
		}
		p.pageNum = msg.pageNum
		p.hasNext = msg.page.Pagination.HasNextPage
		return nil, nil

	case spinner.TickMsg:
		return p.load.update(msg), nil

	case tea.MouseMsg:
		p.list.handleWheel(msg, len(p.items), p.reverse)
		return nil, nil

	case tea.KeyMsg:
		if next := cycleTab(msg, p.keys, p.tab, len(jikan.TopTabs)); next >= 0 {
			p.tab = next
			p.items = nil
			p.hasNext = false
			p.list.reset()
			return p.fetch(1, false), nil
		}
		switch {
		case key.Matches(msg, p.keys.LoadMore):
			if p.hasNext && !p.load.active {
				return p.fetch(p.pageNum+1, true), nil
			}
			return nil, nil
		case key.Matches(msg, p.keys.Reload):
			return p.fetch(1, false), nil
		case key.Matches(msg, p.keys.Enter):
			if len(p.items) > 0 {
				return nil, navTo(animePageID, p.items[p.list.cursor].MalID)
			}
			return nil, nil
		}
		p.list.handleKey(msg, p.keys, len(p.items), p.listHeight())
	}
	return nil, nil
}

func (p *TopPage) listHeight() int { return max(1, p.height-4) }

func (p *TopPage) View(width, height int) string {
	labels := make([]string, len(jikan.TopTabs))
	for i, t := range jikan.TopTabs {
		labels[i] = t.Label()
	}
	header := sectionTitleStyle.Render("Top Anime") + "  " + renderTabs(labels, p.tab)

	bodyHeight := max(1, height-3)
	var body string
	if p.load.active && !p.loadingMore {
		body = p.load.renderLoadingPlaceholder("Loading "+p.currentTab().Label()+"…", width, bodyHeight)
	} else {
		titleWidth := max(10, width-36)
		rows := make([]string, len(p.items))
		for i, a := range p.items {
			rank := "-"
			if a.Rank > 0 {
				rank = fmt.Sprintf("#%d", a.Rank)
			}
			rows[i] = fmt.Sprintf("%-6s", rank) +
				padRight(truncate(a.DisplayTitle(), titleWidth), titleWidth) +
				fmt.Sprintf("  ★ %-5s %-6s %3s ep", a.ScoreLabel(), a.Type, a.EpisodesLabel())
		}
		body = p.list.render(rows, width, bodyHeight)
	}

	var footer string
	switch {
	case p.loadingMore:
		footer = p.load.spinner.View() + helpStyle.Render(" Loading more…")
	case p.hasNext:
		footer = helpStyle.Render(fmt.Sprintf("m load more · page %d · %d titles", p.pageNum, len(p.items)))
	default:
		footer = helpStyle.Render(fmt.Sprintf("%d titles", len(p.items)))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

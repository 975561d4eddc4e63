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
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// Screen rows: navbar, strip title, strip, blank, list header, list.
const (
	homeStripTop     = 2
	homeListHeaderAt = homeStripTop + carouselCardHeight + 1
)

// HomePage is the landing page: the current season as a looping carousel
// and as a list below it.
type HomePage struct {
	cat     model.Catalog
	keys    KeyMap
	reverse bool

	strip  *carouselStrip
	season []model.Anime
	list   listView
	load   loader
	search textinput.Model

	// hidden is set between Leave and Enter; the strip stays stopped.
	hidden bool

	width  int
	height int
}

// NewHomePage creates the landing page.
func NewHomePage(cat model.Catalog, cfg carousel.Config, reverseWheel bool) *HomePage {
	ti := textinput.New()
	ti.Placeholder = "Search anime…"
	ti.Prompt = "/ "
	ti.PromptStyle = searchPromptStyle
	ti.CharLimit = 100
	return &HomePage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		strip:   newCarouselStrip(cfg),
		load:    newLoader(),
		search:  ti,
	}
}

func (p *HomePage) ID() string    { return homePageID }
func (p *HomePage) Title() string { return "Home" }

func (p *HomePage) Init() tea.Cmd {
	return tea.Batch(p.load.start(), p.fetchSeason())
}

// Enter restarts the carousel from the loaded season when coming back.
func (p *HomePage) Enter(interface{}) tea.Cmd {
	p.hidden = false
	if len(p.season) == 0 {
		return p.Init()
	}
	return p.strip.setItems(p.season)
}

// Leave stops the carousel so no timers run while the page is hidden.
func (p *HomePage) Leave() {
	p.hidden = true
	p.strip.stop()
	p.search.Blur()
}

func (p *HomePage) CapturingInput() bool { return p.search.Focused() }

func (p *HomePage) fetchSeason() tea.Cmd {
	cat := p.cat
	return fetch(func(ctx context.Context) tea.Msg {
		page, err := cat.SeasonNow(ctx, 1)
		return seasonLoadedMsg{page: page, err: err}
	})
}

func (p *HomePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.strip.layout(homeStripTop, msg.Width)
		p.search.Width = max(10, msg.Width/3)
		return nil, nil

	case seasonLoadedMsg:
		p.load.stop()
		if msg.err != nil {
			return reportError("season", msg.err), nil
		}
		p.season = model.MergeUnique(nil, msg.page.Items)
		p.list.clamp(len(p.season))
		if p.hidden {
			// Enter restarts the strip from p.season.
			return nil, nil
		}
		return p.strip.setItems(p.season), nil

	case carouselFireMsg:
		return p.strip.handleFire(msg), nil

	case spinner.TickMsg:
		return p.load.update(msg), nil

	case tea.MouseMsg:
		cmd, clicked := p.strip.handleMouse(msg)
		if clicked != nil {
			return cmd, navTo(animePageID, clicked.MalID)
		}
		if msg.Y >= homeListHeaderAt {
			p.list.handleWheel(msg, len(p.season), p.reverse)
		}
		return cmd, nil

	case tea.KeyMsg:
		if p.search.Focused() {
			return p.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, p.keys.Search):
			p.search.SetValue("")
			return p.search.Focus(), nil
		case key.Matches(msg, p.keys.StepBack):
			return p.strip.step(carousel.Backward), nil
		case key.Matches(msg, p.keys.StepForward):
			return p.strip.step(carousel.Forward), nil
		case key.Matches(msg, p.keys.Top):
			return nil, navTo(topPageID, nil)
		case key.Matches(msg, p.keys.Reload):
			return tea.Batch(p.load.start(), p.fetchSeason()), nil
		case key.Matches(msg, p.keys.Enter):
			if len(p.season) > 0 {
				return nil, navTo(animePageID, p.season[p.list.cursor].MalID)
			}
			return nil, nil
		}
		p.list.handleKey(msg, p.keys, len(p.season), p.listHeight())
	}
	return nil, nil
}

func (p *HomePage) updateSearch(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(p.search.Value())
		p.search.Blur()
		if query == "" {
			return nil, nil
		}
		return nil, navTo(searchPageID, query)
	case tea.KeyEsc:
		p.search.Blur()
		return nil, nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return cmd, nil
}

func (p *HomePage) listHeight() int {
	return max(1, p.height-homeListHeaderAt-1)
}

func (p *HomePage) View(width, height int) string {
	navbar := p.renderNavbar(width)

	if p.load.active && len(p.season) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, navbar,
			p.load.renderLoadingPlaceholder("Loading current season…", width, max(1, height-1)))
	}

	stripTitle := sectionTitleStyle.Render("Current Season")
	if len(p.season) > 0 {
		if label := p.season[0].SeasonLabel(); label != "" {
			stripTitle += helpStyle.Render("  " + label)
		}
	}

	listHeader := sectionTitleStyle.Render("This Season") +
		helpStyle.Render(fmt.Sprintf("  %d titles", len(p.season)))

	listHeight := max(0, height-homeListHeaderAt-1)
	rows := make([]string, len(p.season))
	titleWidth := max(10, width-30)
	for i, a := range p.season {
		rows[i] = padRight(truncate(a.DisplayTitle(), titleWidth), titleWidth) +
			fmt.Sprintf("  ★ %-5s %3s ep  %s", a.ScoreLabel(), a.EpisodesLabel(), a.Type)
	}

	parts := []string{
		navbar,
		stripTitle,
		p.strip.view(),
		"",
		listHeader,
	}
	if listHeight > 0 {
		parts = append(parts, p.list.render(rows, width, listHeight))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

func (p *HomePage) renderNavbar(width int) string {
	left := brandStyle.Render(" ✦ aetheris ")
	var right string
	if p.search.Focused() {
		right = p.search.View()
	} else {
		right = navbarStyle.Render("/ search   t top anime   ? help ")
	}
	gap := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + navbarStyle.Render(strings.Repeat(" ", gap)) + right
}

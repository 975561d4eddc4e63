package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/model"
)

const (
	animeTabOverview = iota
	animeTabCharacters
	animeTabEpisodes
)

var animeTabLabels = []string{"Overview", "Characters", "Episodes"}

// AnimePage shows one anime: overview with the score chart, the cast and
// the episode list.
type AnimePage struct {
	cat     model.DetailFetcher
	keys    KeyMap
	reverse bool

	id     int
	seq    int
	detail *model.AnimeDetail

	tab   int
	vp    viewport.Model
	chars listView
	eps   listView
	prose proseRenderer
	load  loader

	width  int
	height int
}

// NewAnimePage creates the anime detail page.
func NewAnimePage(cat model.DetailFetcher, reverseWheel bool) *AnimePage {
	return &AnimePage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		vp:      viewport.New(0, 0),
		load:    newLoader(),
	}
}

func (p *AnimePage) ID() string { return animePageID }

func (p *AnimePage) Title() string {
	if p.detail == nil {
		return "Anime"
	}
	return truncate(p.detail.Anime.DisplayTitle(), 28)
}

func (p *AnimePage) Init() tea.Cmd { return nil }

// Enter loads the anime whose MAL id is given as params (an int).
func (p *AnimePage) Enter(params interface{}) tea.Cmd {
	id, ok := params.(int)
	if !ok || id <= 0 {
		return nil
	}
	if id == p.id && p.detail != nil {
		return nil
	}
	p.id = id
	p.detail = nil
	p.tab = animeTabOverview
	p.chars.reset()
	p.eps.reset()
	p.vp.GotoTop()
	p.seq++
	seq, cat := p.seq, p.cat
	load := fetch(func(ctx context.Context) tea.Msg {
		d, err := cat.AnimeDetail(ctx, id)
		return animeLoadedMsg{seq: seq, detail: d, err: err}
	})
	return tea.Batch(p.load.start(), load)
}

func (p *AnimePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.resizeViewport()
		return nil, nil

	case animeLoadedMsg:
		if msg.seq != p.seq {
			return nil, nil
		}
		p.load.stop()
		if msg.err != nil {
			return reportError(fmt.Sprintf("anime %d", p.id), msg.err), nil
		}
		d := msg.detail
		p.detail = &d
		p.resizeViewport()
		return nil, nil

	case spinner.TickMsg:
		return p.load.update(msg), nil

	case tea.MouseMsg:
		return p.handleMouse(msg), nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, nil
}

func (p *AnimePage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	if next := cycleTab(msg, p.keys, p.tab, len(animeTabLabels)); next >= 0 {
		p.tab = next
		return nil, nil
	}
	if p.detail == nil {
		return nil, nil
	}

	switch p.tab {
	case animeTabOverview:
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return cmd, nil

	case animeTabCharacters:
		roles := p.detail.Characters
		switch {
		case key.Matches(msg, p.keys.Enter):
			if len(roles) > 0 {
				return nil, navTo(characterPageID, roles[p.chars.cursor].Character.MalID)
			}
		case key.Matches(msg, p.keys.VoiceActor):
			if len(roles) > 0 {
				if va, ok := roles[p.chars.cursor].LeadVoiceActor(); ok {
					return nil, navTo(personPageID, va.Person.MalID)
				}
			}
		default:
			p.chars.handleKey(msg, p.keys, len(roles), p.bodyHeight())
		}

	case animeTabEpisodes:
		p.eps.handleKey(msg, p.keys, len(p.detail.Episodes), p.bodyHeight())
	}
	return nil, nil
}

func (p *AnimePage) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if p.detail == nil {
		return nil
	}
	switch p.tab {
	case animeTabOverview:
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return cmd
	case animeTabCharacters:
		p.chars.handleWheel(msg, len(p.detail.Characters), p.reverse)
	case animeTabEpisodes:
		p.eps.handleWheel(msg, len(p.detail.Episodes), p.reverse)
	}
	return nil
}

func (p *AnimePage) bodyHeight() int { return max(1, p.height-4) }

func (p *AnimePage) resizeViewport() {
	p.vp.Width = max(1, p.width)
	p.vp.Height = p.bodyHeight()
	if p.detail != nil {
		p.vp.SetContent(p.renderOverview(max(20, p.width-2)))
	}
}

func (p *AnimePage) View(width, height int) string {
	if p.detail == nil {
		if p.load.active {
			return p.load.renderLoadingPlaceholder("Loading anime…", width, height)
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpStyle.Render("Anime unavailable. Press esc to go back."))
	}

	a := p.detail.Anime
	header := sectionTitleStyle.Render(truncate(a.DisplayTitle(), max(10, width-30))) +
		"  " + scoreStyle.Render("★ "+a.ScoreLabel())
	tabs := renderTabs(animeTabLabels, p.tab)

	bodyHeight := max(1, height-3)
	var body string
	switch p.tab {
	case animeTabOverview:
		body = p.vp.View()
	case animeTabCharacters:
		body = p.chars.render(p.characterRows(), width, bodyHeight)
	case animeTabEpisodes:
		body = p.eps.render(p.episodeRows(), width, bodyHeight)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", body)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

func (p *AnimePage) renderOverview(width int) string {
	a := p.detail.Anime
	var b strings.Builder

	if a.TitleJapanese != "" {
		b.WriteString(helpStyle.Render(a.TitleJapanese) + "\n")
	}
	if a.Title != a.DisplayTitle() {
		b.WriteString(helpStyle.Render(a.Title) + "\n")
	}
	b.WriteString("\n")

	scored := a.ScoreLabel()
	if a.ScoredBy > 0 {
		scored += fmt.Sprintf(" (%s users)", model.FormatCount(a.ScoredBy))
	}
	lines := [][2]string{
		{"Score", scored},
		{"Ranked", rankLabel(a.Rank)},
		{"Popularity", rankLabel(a.Popularity)},
		{"Members", model.FormatCount(a.Members)},
		{"Favorites", model.FormatCount(a.Favorites)},
		{"Type", orDash(a.Type)},
		{"Episodes", a.EpisodesLabel()},
		{"Duration", a.DurationMinutes() + " min"},
		{"Status", orDash(a.Status)},
		{"Released", a.ReleaseDate()},
		{"Aired", orDash(a.Aired.String)},
		{"Season", orDash(a.SeasonLabel())},
		{"Broadcast", orDash(a.Broadcast.String)},
		{"Rating", orDash(a.Rating)},
		{"Source", orDash(a.Source)},
		{"Studios", orDash(a.StudioNames())},
		{"Producers", orDash(a.ProducerNames())},
		{"Genres", orDash(strings.Join(a.GenreNames(), ", "))},
	}
	for _, l := range lines {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", l[0])) + valueStyle.Render(truncate(l[1], max(10, width-12))) + "\n")
	}

	b.WriteString("\n" + chartTitleStyle.Render("Score Distribution") + "\n")
	b.WriteString(renderScoreChart(p.detail.Statistics, width) + "\n")

	b.WriteString("\n" + chartTitleStyle.Render("Synopsis") + "\n")
	b.WriteString(p.prose.render(a.Synopsis, width) + "\n")

	if strings.TrimSpace(a.Background) != "" {
		b.WriteString("\n" + chartTitleStyle.Render("Background") + "\n")
		b.WriteString(p.prose.render(a.Background, width) + "\n")
	}

	if len(a.Theme.Openings)+len(a.Theme.Endings) > 0 {
		b.WriteString("\n" + chartTitleStyle.Render("Themes") + "\n")
		for _, op := range a.Theme.Openings {
			b.WriteString(field("OP", truncate(sanitize(op), width-4)) + "\n")
		}
		for _, ed := range a.Theme.Endings {
			b.WriteString(field("ED", truncate(sanitize(ed), width-4)) + "\n")
		}
	}

	if len(a.Streaming) > 0 || a.Trailer.URL != "" {
		b.WriteString("\n" + chartTitleStyle.Render("Watch") + "\n")
		for _, s := range a.Streaming {
			b.WriteString(field(s.Name, s.URL) + "\n")
		}
		if a.Trailer.URL != "" {
			b.WriteString(field("Trailer", a.Trailer.URL) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *AnimePage) characterRows() []string {
	rows := make([]string, len(p.detail.Characters))
	for i, r := range p.detail.Characters {
		row := padRight(truncate(r.Character.Name, 28), 28) + "  " + padRight(r.Role, 10)
		if va, ok := r.LeadVoiceActor(); ok {
			c := model.CountryForLanguage(va.Language)
			row += "  " + va.Person.Name + " " + c.Flag
		}
		rows[i] = row
	}
	return rows
}

func (p *AnimePage) episodeRows() []string {
	rows := make([]string, len(p.detail.Episodes))
	for i, e := range p.detail.Episodes {
		title := e.Title
		if title == "" {
			title = fmt.Sprintf("Episode %d", e.MalID)
		}
		row := fmt.Sprintf("%4d  ", e.MalID) + padRight(truncate(title, 40), 40) +
			"  " + padRight(model.FormatLongDate(e.Aired), 18)
		if e.Filler {
			row += " " + badgeFillerStyle.Render("Filler")
		}
		if e.Recap {
			row += " " + badgeRecapStyle.Render("Recap")
		}
		rows[i] = row
	}
	return rows
}

func rankLabel(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("#%d", n)
}

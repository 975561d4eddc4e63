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
	characterTabAbout = iota
	characterTabAnime
	characterTabVoices
)

var characterTabLabels = []string{"About", "Animeography", "Voice Actors"}

// CharacterPage shows a character profile, the anime it appears in and
// who voices it in each language.
type CharacterPage struct {
	cat     model.DetailFetcher
	keys    KeyMap
	reverse bool

	id     int
	seq    int
	detail *model.CharacterDetail

	tab    int
	vp     viewport.Model
	anime  listView
	voices listView
	prose  proseRenderer
	load   loader

	width  int
	height int
}

// NewCharacterPage creates the character page.
func NewCharacterPage(cat model.DetailFetcher, reverseWheel bool) *CharacterPage {
	return &CharacterPage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		vp:      viewport.New(0, 0),
		load:    newLoader(),
	}
}

func (p *CharacterPage) ID() string { return characterPageID }

func (p *CharacterPage) Title() string {
	if p.detail == nil {
		return "Character"
	}
	return truncate(p.detail.Character.Name, 28)
}

func (p *CharacterPage) Init() tea.Cmd { return nil }

// Enter loads the character whose MAL id is given as params (an int).
func (p *CharacterPage) Enter(params interface{}) tea.Cmd {
	id, ok := params.(int)
	if !ok || id <= 0 {
		return nil
	}
	if id == p.id && p.detail != nil {
		return nil
	}
	p.id = id
	p.detail = nil
	p.tab = characterTabAbout
	p.anime.reset()
	p.voices.reset()
	p.vp.GotoTop()
	p.seq++
	seq, cat := p.seq, p.cat
	load := fetch(func(ctx context.Context) tea.Msg {
		d, err := cat.CharacterDetail(ctx, id)
		return characterLoadedMsg{seq: seq, detail: d, err: err}
	})
	return tea.Batch(p.load.start(), load)
}

func (p *CharacterPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.resizeViewport()
		return nil, nil

	case characterLoadedMsg:
		if msg.seq != p.seq {
			return nil, nil
		}
		p.load.stop()
		if msg.err != nil {
			return reportError(fmt.Sprintf("character %d", p.id), msg.err), nil
		}
		d := msg.detail
		p.detail = &d
		p.resizeViewport()
		return nil, nil

	case spinner.TickMsg:
		return p.load.update(msg), nil

	case tea.MouseMsg:
		if p.detail == nil {
			return nil, nil
		}
		switch p.tab {
		case characterTabAbout:
			var cmd tea.Cmd
			p.vp, cmd = p.vp.Update(msg)
			return cmd, nil
		case characterTabAnime:
			p.anime.handleWheel(msg, len(p.detail.Anime), p.reverse)
		case characterTabVoices:
			p.voices.handleWheel(msg, len(p.detail.Voices), p.reverse)
		}
		return nil, nil

	case tea.KeyMsg:
		if next := cycleTab(msg, p.keys, p.tab, len(characterTabLabels)); next >= 0 {
			p.tab = next
			return nil, nil
		}
		if p.detail == nil {
			return nil, nil
		}
		switch p.tab {
		case characterTabAbout:
			var cmd tea.Cmd
			p.vp, cmd = p.vp.Update(msg)
			return cmd, nil
		case characterTabAnime:
			if key.Matches(msg, p.keys.Enter) && len(p.detail.Anime) > 0 {
				return nil, navTo(animePageID, p.detail.Anime[p.anime.cursor].Anime.MalID)
			}
			p.anime.handleKey(msg, p.keys, len(p.detail.Anime), p.bodyHeight())
		case characterTabVoices:
			if key.Matches(msg, p.keys.Enter) && len(p.detail.Voices) > 0 {
				return nil, navTo(personPageID, p.detail.Voices[p.voices.cursor].Person.MalID)
			}
			p.voices.handleKey(msg, p.keys, len(p.detail.Voices), p.bodyHeight())
		}
	}
	return nil, nil
}

func (p *CharacterPage) bodyHeight() int { return max(1, p.height-4) }

func (p *CharacterPage) resizeViewport() {
	p.vp.Width = max(1, p.width)
	p.vp.Height = p.bodyHeight()
	if p.detail != nil {
		p.vp.SetContent(p.renderAbout(max(20, p.width-2)))
	}
}

func (p *CharacterPage) renderAbout(width int) string {
	c := p.detail.Character
	var b strings.Builder
	if c.NameKanji != "" {
		b.WriteString(helpStyle.Render(c.NameKanji) + "\n")
	}
	b.WriteString(field("Favorites", model.FormatCount(c.Favorites)) + "\n")
	if len(c.Nicknames) > 0 {
		b.WriteString(field("Nicknames", truncate(strings.Join(c.Nicknames, ", "), width-10)) + "\n")
	}
	b.WriteString("\n" + p.prose.render(c.About, width))
	return b.String()
}

func (p *CharacterPage) View(width, height int) string {
	if p.detail == nil {
		if p.load.active {
			return p.load.renderLoadingPlaceholder("Loading character…", width, height)
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpStyle.Render("Character unavailable. Press esc to go back."))
	}

	header := sectionTitleStyle.Render(truncate(p.detail.Character.Name, max(10, width-4)))
	tabs := renderTabs(characterTabLabels, p.tab)

	bodyHeight := max(1, height-3)
	var body string
	switch p.tab {
	case characterTabAbout:
		body = p.vp.View()
	case characterTabAnime:
		rows := make([]string, len(p.detail.Anime))
		for i, r := range p.detail.Anime {
			rows[i] = padRight(truncate(r.Anime.Title, max(10, width-16)), max(10, width-16)) + "  " + r.Role
		}
		body = p.anime.render(rows, width, bodyHeight)
	case characterTabVoices:
		body = p.voices.render(voiceActorRows(p.detail.Voices), width, bodyHeight)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", body)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

// voiceActorRows lists each voice actor with the country of the dub.
func voiceActorRows(voices []model.VoiceActor) []string {
	rows := make([]string, len(voices))
	for i, v := range voices {
		c := model.CountryForLanguage(v.Language)
		country := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Flag + " " + c.Name)
		rows[i] = padRight(truncate(v.Person.Name, 28), 28) + "  " + padRight(v.Language, 16) + "  " + country
	}
	return rows
}

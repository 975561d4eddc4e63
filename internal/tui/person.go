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
	personTabAbout = iota
	personTabRoles
)

var personTabLabels = []string{"About", "Roles"}

// PersonPage shows a voice actor and the characters they voiced.
type PersonPage struct {
	cat     model.DetailFetcher
	keys    KeyMap
	reverse bool

	id     int
	seq    int
	detail *model.PersonDetail

	tab   int
	vp    viewport.Model
	roles listView
	prose proseRenderer
	load  loader

	width  int
	height int
}

// NewPersonPage creates the voice actor page.
func NewPersonPage(cat model.DetailFetcher, reverseWheel bool) *PersonPage {
	return &PersonPage{
		cat:     cat,
		keys:    DefaultKeyMap(),
		reverse: reverseWheel,
		vp:      viewport.New(0, 0),
		load:    newLoader(),
	}
}

func (p *PersonPage) ID() string { return personPageID }

func (p *PersonPage) Title() string {
	if p.detail == nil {
		return "Voice Actor"
	}
	return truncate(p.detail.Person.Name, 28)
}

func (p *PersonPage) Init() tea.Cmd { return nil }

// Enter loads the person whose MAL id is given as params (an int).
func (p *PersonPage) Enter(params interface{}) tea.Cmd {
	id, ok := params.(int)
	if !ok || id <= 0 {
		return nil
	}
	if id == p.id && p.detail != nil {
		return nil
	}
	p.id = id
	p.detail = nil
	p.tab = personTabAbout
	p.roles.reset()
	p.vp.GotoTop()
	p.seq++
	seq, cat := p.seq, p.cat
	load := fetch(func(ctx context.Context) tea.Msg {
		d, err := cat.PersonDetail(ctx, id)
		return personLoadedMsg{seq: seq, detail: d, err: err}
	})
	return tea.Batch(p.load.start(), load)
}

func (p *PersonPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.resizeViewport()
		return nil, nil

	case personLoadedMsg:
		if msg.seq != p.seq {
			return nil, nil
		}
		p.load.stop()
		if msg.err != nil {
			return reportError(fmt.Sprintf("person %d", p.id), msg.err), nil
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
		if p.tab == personTabRoles {
			p.roles.handleWheel(msg, len(p.detail.Roles), p.reverse)
			return nil, nil
		}
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return cmd, nil

	case tea.KeyMsg:
		if next := cycleTab(msg, p.keys, p.tab, len(personTabLabels)); next >= 0 {
			p.tab = next
			return nil, nil
		}
		if p.detail == nil {
			return nil, nil
		}
		if p.tab == personTabAbout {
			var cmd tea.Cmd
			p.vp, cmd = p.vp.Update(msg)
			return cmd, nil
		}
		roles := p.detail.Roles
		switch {
		case key.Matches(msg, p.keys.Enter) && len(roles) > 0:
			return nil, navTo(characterPageID, roles[p.roles.cursor].Character.MalID)
		case key.Matches(msg, p.keys.OpenAnime) && len(roles) > 0:
			return nil, navTo(animePageID, roles[p.roles.cursor].Anime.MalID)
		}
		p.roles.handleKey(msg, p.keys, len(roles), p.bodyHeight())
	}
	return nil, nil
}

func (p *PersonPage) bodyHeight() int { return max(1, p.height-4) }

func (p *PersonPage) resizeViewport() {
	p.vp.Width = max(1, p.width)
	p.vp.Height = p.bodyHeight()
	if p.detail != nil {
		p.vp.SetContent(p.renderAbout(max(20, p.width-2)))
	}
}

func (p *PersonPage) renderAbout(width int) string {
	person := p.detail.Person
	var b strings.Builder
	if person.GivenName != "" || person.FamilyName != "" {
		b.WriteString(helpStyle.Render(strings.TrimSpace(person.FamilyName+" "+person.GivenName)) + "\n")
	}
	b.WriteString(field("Birthday", model.FormatLongDate(person.Birthday)) + "\n")
	b.WriteString(field("Favorites", model.FormatCount(person.Favorites)) + "\n")
	if len(person.AlternateNames) > 0 {
		b.WriteString(field("Also known as", truncate(strings.Join(person.AlternateNames, ", "), width-14)) + "\n")
	}
	if person.WebsiteURL != "" {
		b.WriteString(field("Website", person.WebsiteURL) + "\n")
	}
	b.WriteString("\n" + p.prose.render(person.About, width))
	return b.String()
}

func (p *PersonPage) View(width, height int) string {
	if p.detail == nil {
		if p.load.active {
			return p.load.renderLoadingPlaceholder("Loading voice actor…", width, height)
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpStyle.Render("Voice actor unavailable. Press esc to go back."))
	}

	header := sectionTitleStyle.Render(truncate(p.detail.Person.Name, max(10, width-4)))
	tabs := renderTabs(personTabLabels, p.tab)

	bodyHeight := max(1, height-3)
	var body string
	if p.tab == personTabAbout {
		body = p.vp.View()
	} else {
		rows := make([]string, len(p.detail.Roles))
		for i, r := range p.detail.Roles {
			rows[i] = padRight(truncate(r.Character.Name, 28), 28) + "  " +
				padRight(r.Role, 10) + "  " + truncate(r.Anime.Title, max(10, width-46))
		}
		body = p.roles.render(rows, width, bodyHeight) + "\n" + helpStyle.Render("enter character · a anime")
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", body)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
	"go.uber.org/zap"
)

const errorDisplayDuration = 30 * time.Second

type historyEntry struct {
	pageID string
	params interface{}
}

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages        map[string]Page
	activePage   string
	activeParams interface{}
	history      []historyEntry

	modals []Modal
	keys   KeyMap
	log    *zap.Logger

	lastError   string
	lastErrorAt time.Time
	now         func() time.Time

	width  int
	height int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(log *zap.Logger, pages ...Page) *App {
	if log == nil {
		log = zap.NewNop()
	}
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
		keys:       DefaultKeyMap(),
		log:        log,
		now:        time.Now,
	}
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every page tracks the size so layout-dependent state (the carousel
		// viewport) is correct before the page is shown.
		sized := tea.WindowSizeMsg{Width: msg.Width, Height: a.pageHeight()}
		var cmds []tea.Cmd
		for _, p := range a.pages {
			cmd, _ := p.Update(sized)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case ErrorMsg:
		a.lastError = msg.Err.Error()
		a.lastErrorAt = a.now()
		a.log.Warn("fetch failed", zap.String("source", msg.Source), zap.Error(msg.Err))
		return a, nil

	case targetedMsg:
		p, ok := a.pages[msg.targetPage()]
		if !ok {
			return a, nil
		}
		cmd, nav := p.Update(msg)
		if nav != nil && p.ID() == a.activePage {
			return a, tea.Batch(cmd, a.navigate(*nav))
		}
		return a, cmd
	}

	if len(a.modals) > 0 {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.keys.ForceQuit) {
				return a, tea.Quit
			}
			top := a.modals[len(a.modals)-1]
			pop, cmd := top.Update(msg)
			if pop {
				a.modals = a.modals[:len(a.modals)-1]
			}
			return a, cmd
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	if km, isKey := msg.(tea.KeyMsg); isKey {
		if key.Matches(km, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if !a.capturing(p) {
			switch {
			case key.Matches(km, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(km, a.keys.Help):
				a.pushModal(newHelpModal(a.keys))
				return a, nil
			case key.Matches(km, a.keys.Back) && len(a.history) > 0:
				return a, a.navigate(*navBack)
			}
		}
	}

	cmd, nav := p.Update(msg)
	if nav != nil {
		return a, tea.Batch(cmd, a.navigate(*nav))
	}
	return a, cmd
}

func (a *App) capturing(p Page) bool {
	ic, ok := p.(InputCapturer)
	return ok && ic.CapturingInput()
}

func (a *App) pushModal(m Modal) {
	for _, existing := range a.modals {
		if existing.ID() == m.ID() {
			return
		}
	}
	a.modals = append(a.modals, m)
}

// navigate applies a PageNav: either push the target page or pop back.
func (a *App) navigate(nav PageNav) tea.Cmd {
	if nav.Back {
		if len(a.history) == 0 {
			return nil
		}
		prev := a.history[len(a.history)-1]
		a.history = a.history[:len(a.history)-1]
		return a.activate(prev.pageID, prev.params)
	}
	if _, exists := a.pages[nav.PageID]; !exists {
		return nil
	}
	a.history = append(a.history, historyEntry{pageID: a.activePage, params: a.activeParams})
	return a.activate(nav.PageID, nav.Params)
}

func (a *App) activate(pageID string, params interface{}) tea.Cmd {
	if cur, ok := a.pages[a.activePage].(Leaver); ok {
		cur.Leave()
	}
	a.activePage = pageID
	a.activeParams = params

	p := a.pages[pageID]
	if n, ok := p.(Navigable); ok {
		return n.Enter(params)
	}
	return p.Init()
}

// ActivePage returns the id of the visible page.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) pageHeight() int {
	return max(0, a.height-1)
}

func (a *App) View() string {
	if len(a.modals) > 0 {
		return a.modals[len(a.modals)-1].View(a.width, a.height)
	}
	p, ok := a.pages[a.activePage]
	if !ok {
		return "No active page"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.View(a.width, a.pageHeight()),
		a.renderStatusBar(a.width),
	)
}

// renderStatusBar shows the breadcrumb trail on the left and the last fetch
// error (auto-clears after 30s) and key hints on the right.
func (a *App) renderStatusBar(w int) string {
	var crumbs []string
	for _, h := range a.history {
		crumbs = append(crumbs, a.pageTitle(h.pageID))
	}
	crumbs = append(crumbs, a.pageTitle(a.activePage))
	leftText := " " + strings.Join(crumbs, " › ")

	var rightParts []string
	if a.lastError != "" && a.now().Sub(a.lastErrorAt) < errorDisplayDuration {
		rightParts = append(rightParts, statusErrorStyle.Render("⚠ "+truncate(a.lastError, max(10, w/2))))
	}
	hint := "? help  q quit"
	if len(a.history) > 0 {
		hint = "esc back  " + hint
	}
	rightParts = append(rightParts, statusBarStyle.Render(hint+" "))
	rightText := strings.Join(rightParts, statusBarStyle.Render("  "))

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	if leftWidth+rightWidth >= w {
		leftText = truncate(leftText, max(0, w-rightWidth-1))
		leftWidth = lipgloss.Width(leftText)
	}
	gap := max(0, w-leftWidth-rightWidth)
	return statusBarStyle.Render(leftText+strings.Repeat(" ", gap)) + rightText
}

func (a *App) pageTitle(id string) string {
	if t, ok := a.pages[id].(Titled); ok {
		if title := t.Title(); title != "" {
			return title
		}
	}
	return id
}

// Options wires the pages of the catalog browser.
type Options struct {
	Catalog            model.Catalog
	Carousel           carousel.Config
	ReverseScrollWheel bool
	Logger             *zap.Logger
}

// New builds the App with every page registered; the home page is first.
func New(opts Options) *App {
	return NewApp(opts.Logger,
		NewHomePage(opts.Catalog, opts.Carousel, opts.ReverseScrollWheel),
		NewTopPage(opts.Catalog, opts.ReverseScrollWheel),
		NewSearchPage(opts.Catalog, opts.ReverseScrollWheel),
		NewAnimePage(opts.Catalog, opts.ReverseScrollWheel),
		NewCharacterPage(opts.Catalog, opts.ReverseScrollWheel),
		NewPersonPage(opts.Catalog, opts.ReverseScrollWheel),
	)
}

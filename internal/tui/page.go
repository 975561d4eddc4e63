package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (home, top, anime, ...).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
	// Back pops the navigation stack instead of pushing PageID.
	Back bool
}

// Navigable is implemented by pages that take parameters (an anime id, a
// search query). Enter is called every time the page becomes active.
type Navigable interface {
	Enter(params interface{}) tea.Cmd
}

// Leaver is implemented by pages that hold resources while visible.
type Leaver interface {
	Leave()
}

// Titled pages contribute a crumb to the status bar.
type Titled interface {
	Title() string
}

// InputCapturer is implemented by pages with a text input. While it reports
// true, global single-key shortcuts are delivered to the page instead.
type InputCapturer interface {
	CapturingInput() bool
}

// targetedMsg is an async result addressed to a specific page. The App
// delivers it even when that page is not active.
type targetedMsg interface {
	targetPage() string
}

const (
	homePageID      = "home"
	topPageID       = "top"
	searchPageID    = "search"
	animePageID     = "anime"
	characterPageID = "character"
	personPageID    = "person"
)

func navTo(pageID string, params interface{}) *PageNav {
	return &PageNav{PageID: pageID, Params: params}
}

var navBack = &PageNav{Back: true}

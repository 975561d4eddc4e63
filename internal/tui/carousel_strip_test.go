package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// newTestStrip lays out five 10-column cards behind a 20-column viewport
// starting at column 2, with the strip on rows 2..7.
func newTestStrip(t *testing.T) *carouselStrip {
	t.Helper()
	cfg := carousel.DefaultConfig()
	cfg.CardWidth = 10
	cfg.CardGap = 0
	s := newCarouselStrip(cfg)
	s.layout(2, 24)
	if cmd := s.setItems(animeList(1, 2, 3, 4, 5)); cmd == nil {
		t.Fatal("setItems should schedule the settle timer")
	}
	return s
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestCarouselStrip_DragScrollsAndReleases(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	s.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	if got := s.ctrl.Mode(); got != carousel.Dragging {
		t.Fatalf("mode after press = %v, want dragging", got)
	}

	s.handleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 5, 3))
	if got := s.ctrl.Offset(); got != 10 {
		t.Fatalf("offset after dragging 5 columns left = %d, want 10", got)
	}

	cmd, clicked := s.handleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonNone, 5, 3))
	if clicked != nil {
		t.Fatalf("drag release reported a click on %d", clicked.MalID)
	}
	if cmd == nil {
		t.Fatal("release should schedule the cooldown")
	}
	if got := s.ctrl.IdleReason(); got != carousel.ReasonDrag {
		t.Fatalf("idle reason = %v, want drag", got)
	}
}

func TestCarouselStrip_ReloadWhileHeldKeepsDragging(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	s.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 15, 3))
	if cmd := s.setItems(animeList(6, 7, 8, 9)); cmd != nil {
		t.Fatal("a held drag should not schedule the marquee")
	}
	if got := s.ctrl.Mode(); got != carousel.Dragging {
		t.Fatalf("mode after reload = %v, want dragging", got)
	}

	cmd, clicked := s.handleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonNone, 15, 3))
	if clicked != nil {
		t.Fatalf("release after reload opened %d", clicked.MalID)
	}
	if cmd == nil || s.ctrl.IdleReason() != carousel.ReasonDrag {
		t.Fatalf("release should end the drag and schedule the cooldown, reason = %v", s.ctrl.IdleReason())
	}
}

func TestCarouselStrip_ClickWithoutTravelOpensCard(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	s.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 15, 4))
	_, clicked := s.handleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonNone, 15, 4))
	if clicked == nil {
		t.Fatal("click did not report a card")
	}
	if clicked.MalID != 2 {
		t.Fatalf("clicked card = %d, want 2", clicked.MalID)
	}
}

func TestCarouselStrip_ArrowsStep(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	if cmd, _ := s.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 23, 4)); cmd == nil {
		t.Fatal("right arrow should schedule an animation frame")
	}
	if !s.ctrl.Animating() {
		t.Fatal("right arrow did not start a step animation")
	}
	if got := s.ctrl.IdleReason(); got != carousel.ReasonStep {
		t.Fatalf("idle reason = %v, want step", got)
	}

	// Presses outside the strip rows are ignored.
	s2 := newTestStrip(t)
	s2.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 0, 20))
	if s2.ctrl.Animating() || s2.ctrl.Mode() != carousel.Idle {
		t.Fatal("press below the strip changed the carousel")
	}
}

func TestCarouselStrip_LeavingDuringDragReleases(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	s.handleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 3))
	cmd, _ := s.handleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 10, 20))
	if cmd == nil {
		t.Fatal("leaving the strip should schedule the cooldown")
	}
	if got := s.ctrl.Mode(); got != carousel.Idle {
		t.Fatalf("mode after leaving = %v, want idle", got)
	}
	if got := s.ctrl.IdleReason(); got != carousel.ReasonDrag {
		t.Fatalf("idle reason = %v, want drag", got)
	}
}

func TestCarouselStrip_Hover(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	s.handleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 10, 3))
	if !s.ctrl.Hovering() {
		t.Fatal("motion over the strip should hover")
	}
	if s.hoverCard != 0 {
		t.Fatalf("hover card = %d, want 0", s.hoverCard)
	}
	s.handleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 10, 20))
	if s.ctrl.Hovering() {
		t.Fatal("motion below the strip should end the hover")
	}
}

func TestCarouselStrip_Fire(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	if cmd := s.handleFire(carouselFireMsg{fire: carousel.Fire{Kind: carousel.TimerSettle, Gen: 99}}); cmd != nil {
		t.Fatal("stale fire scheduled a timer")
	}
	if got := s.ctrl.Mode(); got != carousel.Idle {
		t.Fatalf("mode after stale fire = %v, want idle", got)
	}

	items := make([]carousel.Item, len(s.anime))
	for i := range s.anime {
		items[i] = s.anime[i]
	}
	timers := s.ctrl.OnItemsChanged(items)
	if len(timers) != 1 {
		t.Fatalf("timers = %d, want 1", len(timers))
	}
	if cmd := s.handleFire(carouselFireMsg{fire: timers[0].Fire()}); cmd == nil {
		t.Fatal("settle fire should arm the first auto tick")
	}
	if got := s.ctrl.Mode(); got != carousel.AutoAdvancing {
		t.Fatalf("mode after settle = %v, want auto", got)
	}
}

func TestCarouselStrip_ViewKeepsWidth(t *testing.T) {
	t.Parallel()
	s := newTestStrip(t)

	check := func(name string) {
		t.Helper()
		lines := strings.Split(s.view(), "\n")
		if len(lines) != carouselCardHeight {
			t.Fatalf("%s: rows = %d, want %d", name, len(lines), carouselCardHeight)
		}
		for i, l := range lines {
			if w := lipgloss.Width(l); w != 24 {
				t.Fatalf("%s: row %d width = %d, want 24: %q", name, i, w, l)
			}
		}
	}

	check("start")
	s.ctrl.OnDragStart(20)
	s.ctrl.OnDragMove(18)
	s.ctrl.OnDragEnd()
	check("mid card")
	if !strings.Contains(s.view(), "‹") || !strings.Contains(s.view(), "›") {
		t.Fatal("arrows missing")
	}

	s.setItems(nil)
	check("empty")
	if !strings.Contains(s.view(), "No anime") {
		t.Fatal("empty strip should say so")
	}
}

func TestCarouselTimerCmd_Empty(t *testing.T) {
	t.Parallel()
	if carouselTimerCmd(nil) != nil {
		t.Fatal("no timers should produce no command")
	}
}

func TestRenderCard_Size(t *testing.T) {
	t.Parallel()
	a := model.Anime{MalID: 1, Title: "葬送のフリーレン 第二期 とても長いタイトル", Score: 9.1, Episodes: 28, Type: "TV"}
	card := renderCard(a, 24, true)
	lines := strings.Split(card, "\n")
	if len(lines) != carouselCardHeight {
		t.Fatalf("card rows = %d, want %d", len(lines), carouselCardHeight)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 24 {
			t.Fatalf("card row %d width = %d, want 24", i, w)
		}
	}
}

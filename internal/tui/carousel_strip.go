package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
)

const (
	carouselArrowWidth = 2
	carouselCardHeight = 6
)

// carouselStrip binds a carousel.Controller to Bubble Tea: timer requests
// become tea.Tick commands and mouse events become drag, hover and step
// operations.
type carouselStrip struct {
	ctrl  *carousel.Controller
	anime []model.Anime

	top   int // first screen row of the strip
	width int

	pressed   bool
	moved     bool
	pressX    int
	pressCard int
	hoverCard int
}

func newCarouselStrip(cfg carousel.Config) *carouselStrip {
	return &carouselStrip{ctrl: carousel.New(cfg), pressCard: -1, hoverCard: -1}
}

// carouselTimerCmd schedules the controller's timer requests.
func carouselTimerCmd(timers []carousel.Timer) tea.Cmd {
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		fire := t.Fire()
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return carouselFireMsg{fire: fire}
		}))
	}
	return tea.Batch(cmds...)
}

func (s *carouselStrip) setItems(list []model.Anime) tea.Cmd {
	s.anime = list
	s.hoverCard = -1
	items := make([]carousel.Item, len(list))
	for i := range list {
		items[i] = list[i]
	}
	cmd := carouselTimerCmd(s.ctrl.OnItemsChanged(items))
	// A held button keeps dragging the new list, but the release is no
	// longer a click on the card it was pressed on.
	s.pressed = s.ctrl.Mode() == carousel.Dragging
	s.pressCard = -1
	return cmd
}

// layout places the strip at screen row top and sizes the viewport between
// the two arrow columns.
func (s *carouselStrip) layout(top, width int) {
	s.top = top
	s.width = width
	s.ctrl.SetViewport(carouselArrowWidth, width-2*carouselArrowWidth)
}

func (s *carouselStrip) handleFire(msg carouselFireMsg) tea.Cmd {
	return carouselTimerCmd(s.ctrl.HandleTimer(msg.fire))
}

func (s *carouselStrip) step(dir carousel.Direction) tea.Cmd {
	return carouselTimerCmd(s.ctrl.OnStepButton(dir))
}

func (s *carouselStrip) stop() {
	s.pressed = false
	s.ctrl.Stop()
}

func (s *carouselStrip) inRows(y int) bool {
	return y >= s.top && y < s.top+carouselCardHeight
}

func (s *carouselStrip) inViewport(x, y int) bool {
	left := s.ctrl.ViewportLeft()
	return s.inRows(y) && x >= left && x < left+s.ctrl.State().ViewportWidthPx
}

// handleMouse routes a mouse event. A press and release without pointer
// travel on a card is a click and returns that card.
func (s *carouselStrip) handleMouse(msg tea.MouseMsg) (tea.Cmd, *model.Anime) {
	left := s.ctrl.ViewportLeft()
	right := left + s.ctrl.State().ViewportWidthPx

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !s.inRows(msg.Y) {
			return nil, nil
		}
		switch {
		case msg.X < left:
			return s.step(carousel.Backward), nil
		case msg.X >= right:
			return s.step(carousel.Forward), nil
		}
		s.pressed = true
		s.moved = false
		s.pressX = msg.X
		s.pressCard = s.ctrl.CardAt(msg.X - left)
		s.ctrl.OnDragStart(msg.X)
		return nil, nil

	case tea.MouseActionMotion:
		inside := s.inViewport(msg.X, msg.Y)
		if s.pressed {
			if !inside {
				s.pressed = false
				return carouselTimerCmd(s.ctrl.OnPointerLeaveViewport()), nil
			}
			if msg.X != s.pressX {
				s.moved = true
			}
			s.ctrl.OnDragMove(msg.X)
			return nil, nil
		}
		if inside {
			s.hoverCard = s.ctrl.CardAt(msg.X - left)
			s.ctrl.OnHover()
			return nil, nil
		}
		s.hoverCard = -1
		if s.ctrl.Hovering() {
			return carouselTimerCmd(s.ctrl.OnPointerLeaveViewport()), nil
		}
		return nil, nil

	case tea.MouseActionRelease:
		if !s.pressed {
			return nil, nil
		}
		s.pressed = false
		cmd := carouselTimerCmd(s.ctrl.OnDragEnd())
		if !s.moved && s.pressCard >= 0 && s.pressCard < len(s.anime) {
			a := s.anime[s.pressCard]
			return cmd, &a
		}
		return cmd, nil
	}
	return nil, nil
}

// view renders the arrows and the visible slice of the strip.
func (s *carouselStrip) view() string {
	vpWidth := s.ctrl.State().ViewportWidthPx
	rows := make([]string, carouselCardHeight)

	win := s.ctrl.Window()
	if win.Empty() {
		for i := range rows {
			rows[i] = strings.Repeat(" ", vpWidth)
		}
		rows[carouselCardHeight/2] = padRight(helpStyle.Render(truncate("No anime this season.", vpWidth)), vpWidth)
	} else {
		cfg := s.ctrl.Config()
		gap := strings.Repeat(" ", cfg.CardGap)
		for i := win.First; i <= win.Last; i++ {
			card := strings.Split(renderCard(s.anime[i], cfg.CardWidth, i == s.hoverCard), "\n")
			for r := range rows {
				line := ""
				if r < len(card) {
					line = card[r]
				}
				if i > win.First {
					rows[r] += gap
				}
				rows[r] += padRight(line, cfg.CardWidth)
			}
		}
		for r := range rows {
			rows[r] = padRight(ansi.Cut(rows[r], win.Skip, win.Skip+vpWidth), vpWidth)
		}
	}

	mid := carouselCardHeight / 2
	for r := range rows {
		leftArrow, rightArrow := "  ", "  "
		if r == mid {
			leftArrow, rightArrow = arrowStyle.Render("‹ "), arrowStyle.Render(" ›")
		}
		rows[r] = leftArrow + rows[r] + rightArrow
	}
	return strings.Join(rows, "\n")
}

func renderCard(a model.Anime, width int, active bool) string {
	inner := max(1, width-2)
	genres := strings.Join(a.GenreNames(), ", ")
	kind := a.Type
	if season := a.SeasonLabel(); season != "" {
		kind = strings.TrimSpace(kind + " · " + season)
	}
	lines := []string{
		valueStyle.Bold(true).Render(truncate(a.DisplayTitle(), inner)),
		scoreStyle.Render(truncate("★ "+a.ScoreLabel(), inner/2)) + helpStyle.Render(truncate("  "+a.EpisodesLabel()+" ep", inner-inner/2)),
		helpStyle.Render(truncate(orDash(kind), inner)),
		labelStyle.Render(truncate(genres, inner)),
	}
	for i, l := range lines {
		lines[i] = padRight(l, inner)
	}
	style := cardStyle
	if active {
		style = activeCardStyle
	}
	return style.Width(inner).Height(carouselCardHeight - 2).Render(strings.Join(lines, "\n"))
}

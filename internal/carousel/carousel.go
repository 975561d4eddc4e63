// Package carousel implements the scroll controller behind the landing page
// marquee: a horizontal strip of fixed-width cards that advances on its own,
// yields to pointer drags and step buttons, and resumes after a cooldown.
//
// Three writers compete for the scroll offset (the auto-advance timer, pointer
// drags and step buttons). The controller resolves them with a single Mode:
// only the writer that owns the current mode may move the offset, and every
// manual interaction goes back through Idle and a cooldown before the marquee
// takes over again.
package carousel

import "math"

// Mode is the input mode that currently owns the scroll offset.
type Mode int

const (
	Idle Mode = iota
	AutoAdvancing
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case AutoAdvancing:
		return "auto"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// IdleReason records which event put the controller in Idle.
type IdleReason int

const (
	ReasonNone IdleReason = iota
	ReasonDrag
	ReasonStep
	ReasonHover
	ReasonEmpty
	ReasonStopped
)

func (r IdleReason) String() string {
	switch r {
	case ReasonDrag:
		return "drag"
	case ReasonStep:
		return "step"
	case ReasonHover:
		return "hover"
	case ReasonEmpty:
		return "empty"
	case ReasonStopped:
		return "stopped"
	default:
		return ""
	}
}

// Direction of a step button.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Item is an opaque card. The controller only needs a stable key.
type Item interface {
	Key() string
}

// ScrollState is the numeric geometry exposed to the render surface.
type ScrollState struct {
	OffsetPx        int
	ContentWidthPx  int
	ViewportWidthPx int
}

// MaxOffset is the largest offset that still fills the viewport.
func (s ScrollState) MaxOffset() int {
	return max(0, s.ContentWidthPx-s.ViewportWidthPx)
}

type animation struct {
	from, to int
	frame    int
	frames   int
}

// Controller owns the scroll state of one carousel. It is not safe for
// concurrent use; hosts call it from their single event loop.
type Controller struct {
	cfg Config

	items        []Item
	state        ScrollState
	viewportLeft int

	mode     Mode
	reason   IdleReason
	hovering bool
	stopped  bool

	dragAnchorX      float64
	dragAnchorOffset int
	dragLastX        float64

	anim   *animation
	timers timers
}

// New creates an idle controller with no items.
func New(cfg Config) *Controller {
	return &Controller{
		cfg:    cfg.withDefaults(),
		reason: ReasonEmpty,
	}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// Mode returns the current input mode.
func (c *Controller) Mode() Mode { return c.mode }

// IdleReason returns why the controller is idle, or ReasonNone.
func (c *Controller) IdleReason() IdleReason {
	if c.mode != Idle {
		return ReasonNone
	}
	return c.reason
}

// State returns a copy of the scroll geometry.
func (c *Controller) State() ScrollState { return c.state }

// Offset returns the current scroll offset.
func (c *Controller) Offset() int { return c.state.OffsetPx }

// MaxOffset returns the current upper bound of the offset.
func (c *Controller) MaxOffset() int { return c.state.MaxOffset() }

// Items returns the current item list.
func (c *Controller) Items() []Item { return c.items }

// Len returns the number of items.
func (c *Controller) Len() int { return len(c.items) }

// Animating reports whether a step animation is running.
func (c *Controller) Animating() bool { return c.anim != nil }

// Hovering reports whether the pointer is resting over the viewport.
func (c *Controller) Hovering() bool { return c.hovering }

// ViewportLeft returns the column where the viewport starts.
func (c *Controller) ViewportLeft() int { return c.viewportLeft }

// SetViewport records where the render surface placed the viewport and how
// wide it is. The offset is re-clamped to the new geometry.
func (c *Controller) SetViewport(left, width int) {
	c.viewportLeft = left
	c.state.ViewportWidthPx = max(0, width)
	c.clampOffset()
}

// OnItemsChanged replaces the item list and restarts the strip from the
// beginning. Auto-advance starts once the settle timer fires; an empty list
// leaves the controller idle with nothing scheduled. A drag in progress keeps
// the strip: it is re-anchored at the start and OnDragEnd schedules the resume.
func (c *Controller) OnItemsChanged(items []Item) []Timer {
	c.timers.cancelAll()
	c.anim = nil
	c.stopped = false

	if len(items) == 0 {
		c.items = nil
	} else {
		c.items = append([]Item(nil), items...)
	}
	c.state.OffsetPx = 0
	c.state.ContentWidthPx = c.contentWidth()

	if len(c.items) == 0 {
		c.mode = Idle
		c.reason = ReasonEmpty
		return nil
	}
	if c.mode == Dragging {
		c.dragAnchorX = c.dragLastX
		c.dragAnchorOffset = 0
		return nil
	}
	c.mode = Idle
	c.reason = ReasonNone
	return c.timers.arm(TimerSettle, c.cfg.SettleDelay)
}

// Stop tears the controller down. Every pending timer is invalidated and
// later fires are ignored until OnItemsChanged is called again.
func (c *Controller) Stop() {
	c.timers.cancelAll()
	c.anim = nil
	c.stopped = true
	c.mode = Idle
	c.reason = ReasonStopped
}

// HandleTimer delivers an expired timer. Stale fires are dropped.
func (c *Controller) HandleTimer(f Fire) []Timer {
	if c.stopped || !c.timers.consume(f) {
		return nil
	}
	switch f.Kind {
	case TimerAuto:
		c.OnAutoTick()
		if c.mode == AutoAdvancing {
			return c.armAuto()
		}
	case TimerResume, TimerSettle:
		return c.resume()
	case TimerFrame:
		return c.advanceFrame()
	}
	return nil
}

// OnAutoTick advances the marquee by one step, wrapping to the start once
// the end is reached. It does nothing unless the controller is auto-advancing.
func (c *Controller) OnAutoTick() {
	if c.mode != AutoAdvancing {
		return
	}
	next := c.state.OffsetPx + c.cfg.Step
	if next >= c.state.MaxOffset() {
		next = 0
	}
	c.state.OffsetPx = next
}

// OnDragStart hands the offset to the pointer.
func (c *Controller) OnDragStart(pointerX int) {
	if c.stopped || len(c.items) == 0 {
		return
	}
	c.timers.cancelAll()
	c.anim = nil
	c.mode = Dragging
	c.reason = ReasonNone
	c.dragAnchorX = float64(pointerX) - float64(c.viewportLeft)
	c.dragLastX = c.dragAnchorX
	c.dragAnchorOffset = c.state.OffsetPx
}

// OnDragMove scrolls by the pointer travel since OnDragStart. Dragging past
// either edge stops hard at the edge.
func (c *Controller) OnDragMove(pointerX int) {
	if c.mode != Dragging {
		return
	}
	c.dragLastX = float64(pointerX) - float64(c.viewportLeft)
	delta := c.dragLastX - c.dragAnchorX
	target := float64(c.dragAnchorOffset) - delta*c.cfg.Sensitivity
	c.state.OffsetPx = clampFloat(target, c.state.MaxOffset())
}

// OnDragEnd releases the pointer and schedules the cooldown resume.
func (c *Controller) OnDragEnd() []Timer {
	if c.mode != Dragging {
		return nil
	}
	c.mode = Idle
	c.reason = ReasonDrag
	return c.timers.arm(TimerResume, c.cfg.Cooldown)
}

// OnPointerLeaveViewport treats leaving the strip during a drag as a release.
// It also ends a hover pause.
func (c *Controller) OnPointerLeaveViewport() []Timer {
	c.hovering = false
	if c.mode == Dragging {
		return c.OnDragEnd()
	}
	if c.mode == Idle && c.reason == ReasonHover && len(c.items) > 0 && !c.stopped {
		return c.timers.arm(TimerResume, c.cfg.Cooldown)
	}
	return nil
}

// OnHover records that the pointer rests on the strip. With PauseOnHover the
// marquee stops until the pointer leaves.
func (c *Controller) OnHover() {
	c.hovering = true
	if !c.cfg.PauseOnHover || c.stopped {
		return
	}
	if c.mode == AutoAdvancing {
		c.suspendAuto(ReasonHover)
		return
	}
	if c.mode == Idle && c.reason == ReasonHover {
		c.timers.cancel(TimerResume)
	}
}

// OnStepButton animates the strip one StepDistance in dir and schedules the
// cooldown resume once the animation completes. Presses during an animation
// step from the animation's target.
func (c *Controller) OnStepButton(dir Direction) []Timer {
	if c.stopped || len(c.items) == 0 || c.mode == Dragging {
		return nil
	}
	c.suspendAuto(ReasonStep)
	c.timers.cancel(TimerResume)
	c.timers.cancel(TimerSettle)
	c.timers.cancel(TimerFrame)

	base := c.state.OffsetPx
	if c.anim != nil {
		base = c.anim.to
	}
	target := clampInt(base+int(dir)*c.cfg.StepDistance, c.state.MaxOffset())

	frames := int(math.Ceil(float64(c.cfg.StepDuration) / float64(c.cfg.FrameInterval)))
	c.anim = &animation{
		from:   c.state.OffsetPx,
		to:     target,
		frames: max(1, frames),
	}
	return c.timers.arm(TimerFrame, c.cfg.FrameInterval)
}

func (c *Controller) advanceFrame() []Timer {
	a := c.anim
	if a == nil {
		return nil
	}
	a.frame++
	if a.frame >= a.frames {
		c.state.OffsetPx = clampInt(a.to, c.state.MaxOffset())
		c.anim = nil
		return c.timers.arm(TimerResume, c.cfg.Cooldown)
	}
	t := easeInOut(float64(a.frame) / float64(a.frames))
	pos := float64(a.from) + float64(a.to-a.from)*t
	c.state.OffsetPx = clampFloat(pos, c.state.MaxOffset())
	return c.timers.arm(TimerFrame, c.cfg.FrameInterval)
}

// resume starts auto-advance unless a manual interaction still owns the strip.
func (c *Controller) resume() []Timer {
	if len(c.items) == 0 || c.mode != Idle || c.anim != nil {
		return nil
	}
	if c.timers.isPending(TimerResume) || c.timers.isPending(TimerSettle) {
		return nil
	}
	if c.cfg.PauseOnHover && c.hovering {
		c.reason = ReasonHover
		return nil
	}
	c.mode = AutoAdvancing
	c.reason = ReasonNone
	return c.armAuto()
}

// armAuto schedules the next auto tick unless one is already outstanding.
func (c *Controller) armAuto() []Timer {
	if c.timers.isPending(TimerAuto) {
		return nil
	}
	return c.timers.arm(TimerAuto, c.cfg.TickInterval)
}

func (c *Controller) suspendAuto(reason IdleReason) {
	c.timers.cancel(TimerAuto)
	if c.mode == AutoAdvancing {
		c.mode = Idle
	}
	if c.mode == Idle {
		c.reason = reason
	}
}

func (c *Controller) contentWidth() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}
	return n*c.cfg.CardWidth + (n-1)*c.cfg.CardGap
}

func (c *Controller) clampOffset() {
	maxOff := c.state.MaxOffset()
	c.state.OffsetPx = clampInt(c.state.OffsetPx, maxOff)
	if c.anim != nil {
		c.anim.to = clampInt(c.anim.to, maxOff)
	}
}

func clampInt(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v float64, hi int) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= float64(hi) {
		return hi
	}
	return int(math.Round(v))
}

// easeInOut is a cubic ease-in-out curve on [0,1].
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

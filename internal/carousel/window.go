package carousel

// Window describes which cards intersect the viewport.
type Window struct {
	// First and Last are inclusive item indexes. Last < First means nothing
	// is visible.
	First, Last int
	// Skip is how many columns of the strip built from First onwards lie
	// left of the viewport.
	Skip int
}

// Empty reports whether no card is visible.
func (w Window) Empty() bool { return w.Last < w.First }

// Window returns the cards the render surface has to draw for the current
// offset, so it never lays out the whole strip.
func (c *Controller) Window() Window {
	n := len(c.items)
	if n == 0 || c.state.ViewportWidthPx <= 0 {
		return Window{First: 0, Last: -1}
	}
	stride := c.cfg.CardWidth + c.cfg.CardGap
	off := c.state.OffsetPx

	first := min(off/stride, n-1)
	end := off + c.state.ViewportWidthPx
	last := min((end-1)/stride, n-1)
	return Window{
		First: first,
		Last:  last,
		Skip:  off - first*stride,
	}
}

// CardAt returns the index of the card under a viewport-relative column, or
// -1 when the column falls on a gap or past the last card.
func (c *Controller) CardAt(col int) int {
	if col < 0 || col >= c.state.ViewportWidthPx || len(c.items) == 0 {
		return -1
	}
	stride := c.cfg.CardWidth + c.cfg.CardGap
	abs := c.state.OffsetPx + col
	idx := abs / stride
	if idx >= len(c.items) || abs-idx*stride >= c.cfg.CardWidth {
		return -1
	}
	return idx
}

// Package cursor tracks the highlighted row of a menu and the window of
// rows that fits on screen.
package cursor

// Cursor holds a position in a list of fixed length. Moves clamp at both
// ends; the position never wraps around.
type Cursor struct {
	pos    int
	offset int // first visible row
	margin int // rows kept visible above/below pos when scrolling
}

// New creates a cursor at the top of the list.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// At creates a cursor on pos, clamped to a list of listLen items.
func At(pos, listLen, margin int) Cursor {
	c := New(margin)
	c.Jump(pos, listLen)
	return c
}

// Pos returns the highlighted index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the index of the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the cursor by delta, staying within [0, listLen-1].
// It reports whether the position changed.
func (c *Cursor) Move(delta, listLen int) bool {
	if listLen == 0 {
		return false
	}
	old := c.pos
	c.pos = clamp(c.pos+delta, listLen-1)
	return c.pos != old
}

// Jump places the cursor at pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen int) {
	if listLen == 0 {
		c.pos = 0
		return
	}
	c.pos = clamp(pos, listLen-1)
}

// EnsureVisible scrolls so the cursor sits inside a viewport of height rows.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}

	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}

	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the rows to draw, [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

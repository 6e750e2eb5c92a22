package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(2)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("New() = pos %d offset %d, want 0 0", c.Pos(), c.Offset())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name        string
		initial     int
		delta       int
		len         int
		wantPos     int
		wantChanged bool
	}{
		{"down within bounds", 0, 1, 3, 1, true},
		{"up within bounds", 2, -1, 3, 1, true},
		{"up at top stays", 0, -1, 3, 0, false},
		{"down at bottom stays", 2, 1, 3, 2, false},
		{"large jump clamps high", 1, 10, 3, 2, true},
		{"large jump clamps low", 1, -10, 3, 0, true},
		{"single item never moves", 0, 1, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := At(tt.initial, tt.len, 0)
			changed := c.Move(tt.delta, tt.len)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestMoveEmptyList(t *testing.T) {
	c := New(0)
	if c.Move(1, 0) {
		t.Error("Move on empty list reported a change")
	}
	if c.Pos() != 0 {
		t.Errorf("pos = %d, want 0", c.Pos())
	}
}

func TestAt_Clamps(t *testing.T) {
	tests := []struct {
		pos, len, want int
	}{
		{1, 3, 1},
		{7, 3, 2},
		{-4, 3, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := At(tt.pos, tt.len, 0).Pos(); got != tt.want {
			t.Errorf("At(%d, %d) = %d, want %d", tt.pos, tt.len, got, tt.want)
		}
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		pos        int
		len        int
		height     int
		wantOffset int
	}{
		{"fits on screen", 0, 2, 3, 10, 0},
		{"scrolls down to cursor", 0, 7, 10, 5, 3},
		{"scrolls with margin", 1, 4, 10, 5, 1},
		{"last row clamps offset", 2, 9, 10, 5, 5},
		{"zero height is ignored", 0, 5, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := At(tt.pos, tt.len, tt.margin)
			c.EnsureVisible(tt.len, tt.height)
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestEnsureVisible_ScrollsBackUp(t *testing.T) {
	c := At(9, 10, 0)
	c.EnsureVisible(10, 4)
	c.Jump(0, 10)
	c.EnsureVisible(10, 4)
	if c.Offset() != 0 {
		t.Errorf("offset = %d, want 0", c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := At(8, 10, 0)
	c.EnsureVisible(10, 4)

	start, end := c.VisibleRange(10, 4)
	if start != 5 || end != 9 {
		t.Errorf("VisibleRange = [%d, %d), want [5, 9)", start, end)
	}
	if start, end := c.VisibleRange(0, 4); start != 0 || end != 0 {
		t.Errorf("empty VisibleRange = [%d, %d)", start, end)
	}
}

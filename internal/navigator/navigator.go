// Package navigator implements the menu screens: a cursor over a list of
// names driven by menu commands, and the two-level browse flow built on it.
package navigator

import (
	"context"
	"errors"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/ui/cursor"
)

// ErrBack is returned by Run when the user leaves the screen with back.
var ErrBack = errors.New("navigator: back")

// Listener delivers menu commands.
type Listener interface {
	Next(ctx context.Context) (input.Command, error)
}

// Sink draws a menu.
type Sink interface {
	Render(title string, items []string, highlighted int)
}

// Model is one menu screen.
type Model struct {
	title    string
	items    []string
	cursor   cursor.Cursor
	backable bool
}

// Option configures a Model.
type Option func(*Model)

// WithCursor starts the cursor on index i, clamped to the items.
func WithCursor(i int) Option {
	return func(m *Model) {
		m.cursor.Jump(i, len(m.items))
	}
}

// WithoutBack makes back a no-op, for the top-level screen.
func WithoutBack() Option {
	return func(m *Model) {
		m.backable = false
	}
}

// New creates a screen over items. Items must not be empty.
func New(title string, items []string, opts ...Option) *Model {
	m := &Model{
		title:    title,
		items:    items,
		cursor:   cursor.New(0),
		backable: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cursor returns the highlighted index.
func (m *Model) Cursor() int {
	return m.cursor.Pos()
}

// Update applies one command. It returns true when the screen is done: on
// select with a nil error, on back with ErrBack.
func (m *Model) Update(cmd input.Command) (bool, error) {
	switch cmd {
	case input.CommandUp:
		m.cursor.Move(-1, len(m.items))
	case input.CommandDown:
		m.cursor.Move(1, len(m.items))
	case input.CommandSelect:
		return true, nil
	case input.CommandBack:
		if m.backable {
			return true, ErrBack
		}
	}
	return false, nil
}

// Run draws the screen and applies commands until one ends it. It returns
// the selected index, ErrBack, or the listener's error (input.ErrQuit or a
// context error) without drawing again.
func (m *Model) Run(ctx context.Context, l Listener, s Sink) (int, error) {
	for {
		s.Render(m.title, m.items, m.cursor.Pos())

		cmd, err := l.Next(ctx)
		if err != nil {
			return 0, err
		}

		done, err := m.Update(cmd)
		if err != nil {
			return 0, err
		}
		if done {
			return m.cursor.Pos(), nil
		}
	}
}

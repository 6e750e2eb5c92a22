package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/navigator"
	"github.com/llehouerou/cdplay/internal/playback"
	"github.com/llehouerou/cdplay/internal/state"
)

// Player runs playback sessions.
type Player interface {
	Play(ctx context.Context, s playback.Session) error
	Position() (index, total int)
}

// Sink draws the menus and the one-shot status line.
type Sink interface {
	navigator.Sink
	Report(msg string)
}

// Option configures an App.
type Option func(*App)

// WithTrackChanges saves the navigation state on every track change read
// from events.
func WithTrackChanges(events <-chan playback.TrackChange) Option {
	return func(a *App) { a.events = events }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// App alternates between browsing and playing until the user quits.
type App struct {
	lib    library.Library
	menu   navigator.Listener
	sink   Sink
	player Player
	state  state.Interface
	log    zerolog.Logger
	events <-chan playback.TrackChange
	now    func() time.Time
}

// New creates the application.
func New(
	lib library.Library,
	menu navigator.Listener,
	sink Sink,
	player Player,
	st state.Interface,
	log zerolog.Logger,
	opts ...Option,
) *App {
	a := &App{
		lib:    lib,
		menu:   menu,
		sink:   sink,
		player: player,
		state:  st,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run browses, plays the chosen collection, and browses again when the
// session stops or fails. It returns nil on quit and when ctx ends, and any
// other error unchanged.
func (a *App) Run(ctx context.Context) error {
	pos, greeting := a.restore()
	if greeting != "" {
		a.sink.Report(greeting)
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if a.events != nil {
		wg.Go(func() { a.watch(watchCtx) })
	}
	defer func() {
		stopWatch()
		wg.Wait()
	}()

	for {
		sel, p, err := navigator.Browse(ctx, a.lib, a.menu, a.sink, pos)
		pos = p
		if err != nil {
			return a.finish(ctx, err)
		}

		err = a.player.Play(ctx, playback.Session{Collection: sel.Collection, Start: sel.Start})
		if index, total := a.player.Position(); total == sel.Collection.Len() {
			pos.Track = index
		}
		if err == nil {
			continue
		}
		if isExit(ctx, err) {
			return a.finish(ctx, err)
		}
		a.report(sel.Collection.Name, err)
	}
}

func (a *App) finish(ctx context.Context, err error) error {
	if isExit(ctx, err) {
		a.log.Info().Msg("quit")
		return nil
	}
	return err
}

// isExit reports whether err ends the program: quit, or the root context
// ending (signals).
func isExit(ctx context.Context, err error) bool {
	if errors.Is(err, input.ErrQuit) {
		return true
	}
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

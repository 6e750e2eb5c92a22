// Package playback plays a collection, one player process per track, and
// applies transport commands at track boundaries.
package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/player"
)

// commandBuffer is the capacity of a session's transport channel.
const commandBuffer = 16

var (
	// ErrAllTracksFailed ends a session when every track of the collection
	// failed to play, one after the other.
	ErrAllTracksFailed = errors.New("every track failed to play")

	ErrEmptyCollection = errors.New("collection has no tracks")
)

// Listener delivers transport commands typed by the user.
type Listener interface {
	NextTransport(ctx context.Context) (input.Transport, error)
}

// Sink shows the now-playing line.
type Sink interface {
	Announce(text string)
}

// Session is what the user picked: a collection and where to start.
type Session struct {
	Collection library.Collection
	Start      int
}

// Option configures a Controller.
type Option func(*Controller)

// WithTrackInfo replaces the tag reader used for the now-playing line.
func WithTrackInfo(fn func(location string) (*player.TrackInfo, error)) Option {
	return func(c *Controller) { c.trackInfo = fn }
}

// Controller runs playback sessions. One session runs at a time; Dispatch,
// Current and State may be called from any goroutine.
type Controller struct {
	spawner   player.Spawner
	listener  Listener
	sink      Sink
	log       zerolog.Logger
	trackInfo func(string) (*player.TrackInfo, error)

	mu         sync.Mutex
	commands   chan input.Transport // nil outside a session
	proc       player.Process
	collection string
	current    library.Track
	index      int
	total      int
	state      State
	subs       []*Subscription
}

// New creates a controller.
func New(spawner player.Spawner, listener Listener, sink Sink, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		spawner:   spawner,
		listener:  listener,
		sink:      sink,
		log:       log,
		trackInfo: player.ReadTrackInfo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play plays the session until it is stopped. It returns nil on Stop,
// input.ErrQuit on quit, a *player.SpawnError when a player cannot be
// started, ErrAllTracksFailed, or the context's cause when ctx ends.
//
// Every process exit is a track boundary: the transport channel is read
// once without blocking. Previous moves back one track (staying on the
// first), Next moves forward, Stop ends the session, and an empty channel
// means the track ended by itself, which moves forward too. Forward wraps
// to the first track after the last.
func (c *Controller) Play(ctx context.Context, s Session) error {
	n := s.Collection.Len()
	if n == 0 {
		return ErrEmptyCollection
	}

	ctx, cancel := context.WithCancelCause(ctx)
	commands := make(chan input.Transport, commandBuffer)

	c.begin(s.Collection.Name, n, commands)
	stopOnCancel := context.AfterFunc(ctx, func() { c.control(player.ControlStop) })

	var wg sync.WaitGroup
	wg.Go(func() { c.listen(ctx, cancel, commands) })

	defer func() {
		stopOnCancel()
		cancel(nil)
		wg.Wait()
		c.end()
	}()

	c.log.Info().Str("collection", s.Collection.Name).Int("start", s.Start).Msg("session started")

	i := min(max(s.Start, 0), n-1)
	failures := 0
	for {
		track := s.Collection.Tracks[i]

		proc, err := c.spawner.Spawn(ctx, track)
		if err != nil {
			if ctx.Err() != nil {
				return context.Cause(ctx)
			}
			c.log.Error().Err(err).Str("track", track.Name).Msg("spawn player")
			return err
		}
		c.started(proc, track, i)
		c.sink.Announce(c.nowPlaying(track, i, n))

		waitErr := proc.Wait()
		c.setProcess(nil)

		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		select {
		case cmd := <-commands:
			failures = 0
			c.log.Debug().Stringer("command", cmd).Int("index", i).Msg("track boundary")
			switch cmd {
			case input.TransportPrevious:
				i = library.Previous(i)
			case input.TransportNext:
				i = library.Next(i, n)
			case input.TransportStop:
				c.log.Info().Str("collection", s.Collection.Name).Msg("session stopped")
				return nil
			case input.TransportPause:
				// never queued
			}
		default:
			if waitErr != nil {
				failures++
				c.log.Warn().Err(waitErr).Str("track", track.Name).Int("failures", failures).Msg("player exited with error")
				if failures >= n {
					return fmt.Errorf("%w: %w", ErrAllTracksFailed, waitErr)
				}
			} else {
				failures = 0
			}
			i = library.Next(i, n)
		}
	}
}

// listen forwards the user's transport keys until the session ends. Quit
// cancels the session with input.ErrQuit before stopping the player, so the
// exit is not taken for the end of the track.
func (c *Controller) listen(ctx context.Context, cancel context.CancelCauseFunc, commands chan input.Transport) {
	for {
		t, err := c.listener.NextTransport(ctx)
		if err != nil {
			if errors.Is(err, input.ErrQuit) {
				cancel(input.ErrQuit)
				c.control(player.ControlStop)
			}
			return
		}

		c.dispatch(commands, t)
		if t == input.TransportStop {
			return
		}
	}
}

// Dispatch applies a transport command to the running session, exactly as
// if it had been typed. It is a no-op when nothing is playing.
func (c *Controller) Dispatch(t input.Transport) {
	c.mu.Lock()
	commands := c.commands
	c.mu.Unlock()

	if commands == nil {
		c.log.Debug().Stringer("command", t).Msg("no session, command ignored")
		return
	}
	c.dispatch(commands, t)
}

// dispatch queues t for the next track boundary and stops the player so
// the boundary comes now. Pause is only sent to the player.
func (c *Controller) dispatch(commands chan<- input.Transport, t input.Transport) {
	c.log.Debug().Stringer("command", t).Msg("transport")

	if t == input.TransportPause {
		c.control(player.ControlPause)
		c.togglePause()
		return
	}

	select {
	case commands <- t:
	default:
		c.log.Warn().Stringer("command", t).Msg("transport queue full, command dropped")
	}
	c.control(player.ControlStop)
}

func (c *Controller) control(ctl player.Control) {
	c.mu.Lock()
	proc := c.proc
	c.mu.Unlock()

	if proc == nil {
		return
	}
	if err := proc.Control(ctl); err != nil && !errors.Is(err, player.ErrExited) {
		c.log.Warn().Err(err).Str("control", string(ctl)).Msg("control player")
	}
}

// Current returns the track being played.
func (c *Controller) Current() (library.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsActive() {
		return library.Track{}, false
	}
	return c.current, true
}

// Position returns the index of the current track and the collection size.
func (c *Controller) Position() (index, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, c.total
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a subscription to playback events.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := newSubscription()
	c.subs = append(c.subs, s)
	return s
}

// Close ends all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subs {
		s.close()
	}
	c.subs = nil
}

func (c *Controller) begin(collection string, total int, commands chan input.Transport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = commands
	c.collection = collection
	c.total = total
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = nil
	c.proc = nil
	c.setStateLocked(StateStopped)
}

func (c *Controller) started(proc player.Process, track library.Track, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proc = proc
	c.current = track
	c.index = index
	c.setStateLocked(StatePlaying)

	e := TrackChange{Collection: c.collection, Track: track, Index: index, Total: c.total}
	for _, s := range c.subs {
		s.sendTrack(e)
	}
}

func (c *Controller) setProcess(proc player.Process) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proc = proc
}

func (c *Controller) togglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StatePlaying:
		c.setStateLocked(StatePaused)
	case StatePaused:
		c.setStateLocked(StatePlaying)
	case StateStopped:
	}
}

func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	e := StateChange{Previous: c.state, Current: s}
	c.state = s
	for _, sub := range c.subs {
		sub.sendState(e)
	}
}

// nowPlaying builds "Playing <name> - <artist> · <album> (i/n)". Tags are
// only shown when the location is a readable local file.
func (c *Controller) nowPlaying(track library.Track, index, total int) string {
	var b strings.Builder
	b.WriteString("Playing ")
	b.WriteString(track.Name)

	if info, err := c.trackInfo(track.Location); err == nil {
		var parts []string
		if info.Artist != "" {
			parts = append(parts, info.Artist)
		}
		if info.Album != "" {
			parts = append(parts, info.Album)
		}
		if len(parts) > 0 {
			b.WriteString(" - ")
			b.WriteString(strings.Join(parts, " · "))
		}
	} else if !errors.Is(err, player.ErrRemote) {
		c.log.Debug().Err(err).Str("location", track.Location).Msg("read tags")
	}

	fmt.Fprintf(&b, " (%d/%d)", index+1, total)
	return b.String()
}

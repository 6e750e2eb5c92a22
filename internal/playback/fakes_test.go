package playback

import (
	"context"
	"errors"
	"sync"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/player"
)

var errNoTags = errors.New("no tags")

func noTags(string) (*player.TrackInfo, error) {
	return nil, errNoTags
}

// fakeProcess runs until finish or a stop control.
type fakeProcess struct {
	name string
	done chan struct{}
	once sync.Once
	err  error

	mu       sync.Mutex
	controls []player.Control
}

func (p *fakeProcess) Wait() error {
	<-p.done
	return p.err
}

func (p *fakeProcess) Control(c player.Control) error {
	select {
	case <-p.done:
		return player.ErrExited
	default:
	}

	p.mu.Lock()
	p.controls = append(p.controls, c)
	p.mu.Unlock()

	if c == player.ControlStop {
		p.finish()
	}
	return nil
}

// finish ends the process as if the track played to the end.
func (p *fakeProcess) finish() {
	p.once.Do(func() { close(p.done) })
}

func (p *fakeProcess) received() []player.Control {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]player.Control(nil), p.controls...)
}

type fakeSpawner struct {
	procs chan *fakeProcess

	mu      sync.Mutex
	spawned []string

	failOn  string // track name that cannot be spawned
	exitErr error  // every process exits with this error right away
}

func newFakeSpawner() *fakeSpawner {
	return &fakeSpawner{procs: make(chan *fakeProcess, 64)}
}

func (s *fakeSpawner) Spawn(_ context.Context, track library.Track) (player.Process, error) {
	if track.Name == s.failOn {
		return nil, &player.SpawnError{Binary: "mpv", Err: errors.New("exec: not found")}
	}

	s.mu.Lock()
	s.spawned = append(s.spawned, track.Name)
	s.mu.Unlock()

	p := &fakeProcess{name: track.Name, done: make(chan struct{}), err: s.exitErr}
	if s.exitErr != nil {
		p.finish()
	}
	s.procs <- p
	return p, nil
}

func (s *fakeSpawner) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spawned...)
}

type keyPress struct {
	t   input.Transport
	err error
}

// fakeListener hands out key presses sent on keys and blocks otherwise.
type fakeListener struct {
	keys chan keyPress
}

func newFakeListener() *fakeListener {
	return &fakeListener{keys: make(chan keyPress)}
}

func (l *fakeListener) NextTransport(ctx context.Context) (input.Transport, error) {
	select {
	case k := <-l.keys:
		return k.t, k.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (l *fakeListener) press(t input.Transport) {
	l.keys <- keyPress{t: t}
}

func (l *fakeListener) quit() {
	l.keys <- keyPress{err: input.ErrQuit}
}

type fakeSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *fakeSink) Announce(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func (s *fakeSink) announced() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func abc() library.Collection {
	return library.Collection{
		Name: "First",
		Tracks: []library.Track{
			{Name: "A", Location: "/music/a.mp3"},
			{Name: "B", Location: "/music/b.mp3"},
			{Name: "C", Location: "/music/c.mp3"},
		},
	}
}

package app

import (
	"context"
	"sync"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/playback"
)

// fakeMenu replays commands, then quits.
type fakeMenu struct {
	mu   sync.Mutex
	cmds []input.Command
}

func (f *fakeMenu) Next(ctx context.Context) (input.Command, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cmds) == 0 {
		return 0, input.ErrQuit
	}
	c := f.cmds[0]
	f.cmds = f.cmds[1:]
	return c, nil
}

type frame struct {
	title       string
	items       []string
	highlighted int
}

type fakeSink struct {
	mu      sync.Mutex
	frames  []frame
	reports []string
}

func (f *fakeSink) Render(title string, items []string, highlighted int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame{title, items, highlighted})
}

func (f *fakeSink) Report(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, msg)
}

// fakePlayer plays nothing: each session returns the next queued error
// and reports a track change for the starting track.
type fakePlayer struct {
	events   chan playback.TrackChange
	results  []error
	sessions []playback.Session
	index    int
	total    int
}

func newFakePlayer(results ...error) *fakePlayer {
	return &fakePlayer{events: make(chan playback.TrackChange, 16), results: results}
}

func (p *fakePlayer) Play(_ context.Context, s playback.Session) error {
	p.sessions = append(p.sessions, s)
	p.index, p.total = s.Start, s.Collection.Len()
	p.events <- playback.TrackChange{
		Collection: s.Collection.Name,
		Track:      s.Collection.Tracks[s.Start],
		Index:      s.Start,
		Total:      s.Collection.Len(),
	}

	if len(p.results) == 0 {
		return nil
	}
	err := p.results[0]
	p.results = p.results[1:]
	return err
}

func (p *fakePlayer) Position() (int, int) {
	return p.index, p.total
}

func testLibrary() library.Library {
	return library.Library{Collections: []library.Collection{
		{Name: "First", Tracks: []library.Track{
			{Name: "A", Location: "/music/a.mp3"},
			{Name: "B", Location: "/music/b.mp3"},
			{Name: "C", Location: "/music/c.mp3"},
		}},
		{Name: "Second", Tracks: []library.Track{
			{Name: "Radio", Location: "https://example.com/stream"},
		}},
	}}
}

const (
	up   = input.CommandUp
	down = input.CommandDown
	sel  = input.CommandSelect
	back = input.CommandBack
)

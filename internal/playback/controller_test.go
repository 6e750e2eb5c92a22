package playback

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/player"
)

type harness struct {
	ctrl     *Controller
	spawner  *fakeSpawner
	listener *fakeListener
	sink     *fakeSink
	result   chan error
}

// start runs Play in the background.
func start(ctx context.Context, s Session) *harness {
	h := &harness{
		spawner:  newFakeSpawner(),
		listener: newFakeListener(),
		sink:     &fakeSink{},
		result:   make(chan error, 1),
	}
	h.ctrl = New(h.spawner, h.listener, h.sink, zerolog.Nop(), WithTrackInfo(noTags))
	go func() { h.result <- h.ctrl.Play(ctx, s) }()
	return h
}

// next returns the next spawned process once the controller is waiting on it.
func (h *harness) next() *fakeProcess {
	p := <-h.spawner.procs
	synctest.Wait()
	return p
}

func TestPlay_NaturalEndWrapsAround(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := start(t.Context(), Session{Collection: abc(), Start: 2})

		for range 3 {
			h.next().finish()
		}
		h.next()
		h.listener.press(input.TransportStop)

		require.NoError(t, <-h.result)
		assert.Equal(t, []string{"C", "A", "B", "C"}, h.spawner.names())
	})
}

func TestPlay_CyclesFromAnyStart(t *testing.T) {
	for from := range 3 {
		synctest.Test(t, func(t *testing.T) {
			h := startAt(t.Context(), from)

			for range 7 {
				h.next().finish()
			}
			h.next()
			h.listener.press(input.TransportStop)
			require.NoError(t, <-h.result)

			names := h.spawner.names()
			for i, name := range names {
				want := abc().Tracks[(from+i)%3].Name
				assert.Equal(t, want, name, "step %d from %d", i, from)
			}
		})
	}
}

func startAt(ctx context.Context, i int) *harness {
	return start(ctx, Session{Collection: abc(), Start: i})
}

func TestPlay_PreviousClampsAtFirstTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 1)

		b := h.next()
		h.listener.press(input.TransportPrevious)
		a1 := h.next()
		h.listener.press(input.TransportPrevious)
		a2 := h.next()
		h.listener.press(input.TransportStop)

		require.NoError(t, <-h.result)
		assert.Equal(t, []string{"B", "A", "A"}, h.spawner.names())
		assert.Equal(t, []player.Control{player.ControlStop}, b.received())
		assert.Equal(t, []player.Control{player.ControlStop}, a1.received())
		assert.Equal(t, []player.Control{player.ControlStop}, a2.received())
	})
}

func TestPlay_NextWrapsFromLastTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 2)

		h.next()
		h.listener.press(input.TransportNext)
		h.next()
		h.listener.press(input.TransportStop)

		require.NoError(t, <-h.result)
		assert.Equal(t, []string{"C", "A"}, h.spawner.names())
	})
}

func TestPlay_StopEndsSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 0)

		p := h.next()
		h.listener.press(input.TransportStop)

		require.NoError(t, <-h.result)
		assert.Equal(t, []player.Control{player.ControlStop}, p.received())
		assert.Equal(t, StateStopped, h.ctrl.State())
		_, ok := h.ctrl.Current()
		assert.False(t, ok)
	})
}

func TestPlay_PauseIsNotQueued(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 0)

		p := h.next()
		h.listener.press(input.TransportPause)
		synctest.Wait()

		assert.Equal(t, []player.Control{player.ControlPause}, p.received())
		assert.Equal(t, StatePaused, h.ctrl.State())
		assert.Equal(t, []string{"A"}, h.spawner.names())

		// The track ends by itself: pause left nothing queued, so playback
		// moves on to B.
		p.finish()
		h.next()
		h.listener.press(input.TransportStop)

		require.NoError(t, <-h.result)
		assert.Equal(t, []string{"A", "B"}, h.spawner.names())
	})
}

func TestPlay_QuitStopsPlayerAndReturnsErrQuit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 0)

		p := h.next()
		h.listener.quit()

		err := <-h.result
		assert.ErrorIs(t, err, input.ErrQuit)
		assert.Contains(t, p.received(), player.ControlStop)
		assert.Equal(t, []string{"A"}, h.spawner.names())
	})
}

func TestPlay_ParentCancelStopsPlayer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		h := start(ctx, Session{Collection: abc()})

		p := h.next()
		cancel()

		assert.ErrorIs(t, <-h.result, context.Canceled)
		assert.Equal(t, []player.Control{player.ControlStop}, p.received())
	})
}

func TestPlay_SpawnFailureEndsSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		spawner := newFakeSpawner()
		spawner.failOn = "B"
		ctrl := New(spawner, newFakeListener(), &fakeSink{}, zerolog.Nop(), WithTrackInfo(noTags))

		result := make(chan error, 1)
		go func() { result <- ctrl.Play(t.Context(), Session{Collection: abc()}) }()

		first := <-spawner.procs
		synctest.Wait()
		first.finish()

		err := <-result
		var spawnErr *player.SpawnError
		require.ErrorAs(t, err, &spawnErr)
		assert.Equal(t, "mpv", spawnErr.Binary)
		assert.Equal(t, StateStopped, ctrl.State())
	})
}

func TestPlay_AllTracksFailing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		spawner := newFakeSpawner()
		spawner.exitErr = errors.New("exit status 2")
		ctrl := New(spawner, newFakeListener(), &fakeSink{}, zerolog.Nop(), WithTrackInfo(noTags))

		err := ctrl.Play(t.Context(), Session{Collection: abc(), Start: 1})

		assert.ErrorIs(t, err, ErrAllTracksFailed)
		assert.Equal(t, []string{"B", "C", "A"}, spawner.names())
	})
}

func TestPlay_EmptyCollection(t *testing.T) {
	ctrl := New(newFakeSpawner(), newFakeListener(), &fakeSink{}, zerolog.Nop())
	err := ctrl.Play(context.Background(), Session{Collection: library.Collection{Name: "empty"}})
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestPlay_AnnouncesPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 2)

		h.next().finish()
		h.next()
		h.listener.press(input.TransportStop)
		require.NoError(t, <-h.result)

		assert.Equal(t, []string{"Playing C (3/3)", "Playing A (1/3)"}, h.sink.announced())
	})
}

func TestDispatch_FromAnotherProducer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 0)

		h.next()
		h.ctrl.Dispatch(input.TransportNext)
		h.next()

		track, ok := h.ctrl.Current()
		require.True(t, ok)
		assert.Equal(t, "B", track.Name)

		h.ctrl.Dispatch(input.TransportStop)
		require.NoError(t, <-h.result)
	})
}

func TestDispatch_QueuedBetweenTracks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := startAt(t.Context(), 0)
		p := h.next()

		// A command queued without stopping the player waits for the
		// track to end.
		h.ctrl.mu.Lock()
		commands := h.ctrl.commands
		h.ctrl.mu.Unlock()
		commands <- input.TransportNext

		p.finish()
		h.next() // B, consumed Next
		synctest.Wait()
		assert.Equal(t, []string{"A", "B"}, h.spawner.names())

		h.listener.press(input.TransportStop)
		require.NoError(t, <-h.result)
	})
}

func TestDispatch_WithoutSession(t *testing.T) {
	ctrl := New(newFakeSpawner(), newFakeListener(), &fakeSink{}, zerolog.Nop())
	ctrl.Dispatch(input.TransportNext)
	ctrl.Dispatch(input.TransportPause)

	assert.Equal(t, StateStopped, ctrl.State())
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		spawner := newFakeSpawner()
		listener := newFakeListener()
		ctrl := New(spawner, listener, &fakeSink{}, zerolog.Nop(), WithTrackInfo(noTags))
		sub := ctrl.Subscribe()

		result := make(chan error, 1)
		go func() { result <- ctrl.Play(t.Context(), Session{Collection: abc(), Start: 1}) }()

		<-spawner.procs
		synctest.Wait()
		tc := <-sub.TrackChanged
		assert.Equal(t, "First", tc.Collection)
		assert.Equal(t, "B", tc.Track.Name)
		assert.Equal(t, 1, tc.Index)
		assert.Equal(t, 3, tc.Total)

		sc := <-sub.StateChanged
		assert.Equal(t, StatePlaying, sc.Current)

		listener.press(input.TransportStop)
		require.NoError(t, <-result)

		sc = <-sub.StateChanged
		assert.Equal(t, StateStopped, sc.Current)

		ctrl.Close()
		<-sub.Done
	})
}

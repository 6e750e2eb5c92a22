package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/playback"
)

type fakeNotifier struct {
	sent []Notification
	err  error
	next uint32
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	f.next++
	return f.next, nil
}

func trackChange(name string, index int) playback.TrackChange {
	return playback.TrackChange{
		Collection: "First",
		Track:      library.Track{Name: name, Location: "/music/" + name + ".mp3"},
		Index:      index,
		Total:      3,
	}
}

func TestTrackNotification(t *testing.T) {
	n := TrackNotification(trackChange("B", 1), 7)

	if n.Title != "B" || n.Body != "First (2/3)" {
		t.Errorf("notification = %+v", n)
	}
	if n.ReplacesID != 7 {
		t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
	}
	if n.Icon != trackIcon || n.Timeout != trackTimeout {
		t.Errorf("Icon = %q, Timeout = %d", n.Icon, n.Timeout)
	}
}

func TestDiscard(t *testing.T) {
	id, err := discard{}.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v; want 0, nil", id, err)
	}
}

func TestTracks_ReplacesPreviousNotification(t *testing.T) {
	f := &fakeNotifier{}
	events := make(chan playback.TrackChange, 3)
	events <- trackChange("A", 0)
	events <- trackChange("B", 1)
	events <- trackChange("C", 2)
	close(events)

	NewTracks(f, zerolog.Nop()).Run(t.Context(), events)

	if len(f.sent) != 3 {
		t.Fatalf("sent %d notifications, want 3", len(f.sent))
	}
	if f.sent[0].ReplacesID != 0 {
		t.Errorf("first notification should be new, replaces %d", f.sent[0].ReplacesID)
	}
	for i, n := range f.sent[1:] {
		if n.ReplacesID != 1 {
			t.Errorf("notification %d replaces %d, want 1", i+1, n.ReplacesID)
		}
	}
}

func TestTracks_ErrorsAreIgnored(t *testing.T) {
	f := &fakeNotifier{err: errors.New("no notification daemon")}
	events := make(chan playback.TrackChange, 1)
	events <- trackChange("A", 0)
	close(events)

	tr := NewTracks(f, zerolog.Nop())
	tr.Run(t.Context(), events)

	if tr.lastID != 0 {
		t.Errorf("lastID = %d after a failure, want 0", tr.lastID)
	}
}

func TestTracks_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	done := make(chan struct{})
	go func() {
		NewTracks(&fakeNotifier{}, zerolog.Nop()).Run(ctx, make(chan playback.TrackChange))
		close(done)
	}()
	<-done
}

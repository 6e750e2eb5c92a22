// Package notify shows a desktop notification for each track that starts.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/playback"
)

const (
	trackIcon    = "audio-x-generic"
	trackTimeout = 4000 // ms
)

// Notification is one track notification. Track notifications are always
// sent with low urgency.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name or image path
	Timeout    int32  // ms
	ReplacesID uint32 // 0 for a new notification
}

// Notifier shows desktop notifications. Notify returns the ID the
// notification server assigned, or 0 when there is no server.
type Notifier interface {
	Notify(n Notification) (uint32, error)
}

// discard is the Notifier used when no notification server is reachable.
type discard struct{}

func (discard) Notify(Notification) (uint32, error) {
	return 0, nil
}

// Tracks turns track changes into notifications. Each one replaces the
// previous, so only the current track is ever shown.
type Tracks struct {
	notifier Notifier
	log      zerolog.Logger
	lastID   uint32
}

// NewTracks creates a track notifier.
func NewTracks(n Notifier, log zerolog.Logger) *Tracks {
	return &Tracks{notifier: n, log: log}
}

// Run notifies every track change until ctx ends or events is closed.
func (t *Tracks) Run(ctx context.Context, events <-chan playback.TrackChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			t.show(e)
		}
	}
}

func (t *Tracks) show(e playback.TrackChange) {
	id, err := t.notifier.Notify(TrackNotification(e, t.lastID))
	if err != nil {
		t.log.Debug().Err(err).Str("track", e.Track.Name).Msg("notify")
		return
	}
	if id != 0 {
		t.lastID = id
	}
}

// TrackNotification describes the track that just started.
func TrackNotification(e playback.TrackChange, replaces uint32) Notification {
	return Notification{
		Title:      e.Track.Name,
		Body:       fmt.Sprintf("%s (%d/%d)", e.Collection, e.Index+1, e.Total),
		Icon:       trackIcon,
		Timeout:    trackTimeout,
		ReplacesID: replaces,
	}
}

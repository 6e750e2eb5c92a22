package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/playback"
	"github.com/llehouerou/cdplay/internal/player"
)

const identity = "cdplay"

// Controls is the part of the playback controller driven over D-Bus.
type Controls interface {
	Dispatch(t input.Transport)
	Current() (library.Track, bool)
	Position() (index, total int)
	State() playback.State
	Subscribe() *playback.Subscription
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Every command
// becomes a transport command, the same ones the keyboard produces.
type playerAdapter struct {
	controls  Controls
	log       zerolog.Logger
	trackInfo func(string) (*player.TrackInfo, error)

	mu       sync.Mutex
	location string
	info     *player.TrackInfo
}

func newPlayerAdapter(controls Controls, log zerolog.Logger) *playerAdapter {
	return &playerAdapter{
		controls:  controls,
		log:       log,
		trackInfo: player.ReadTrackInfo,
	}
}

// watch caches the tags of each new track until sub ends or done closes.
func (p *playerAdapter) watch(sub *playback.Subscription, done <-chan struct{}) {
	for {
		select {
		case e := <-sub.TrackChanged:
			p.cacheTrack(e.Track)
		case <-sub.Done:
			return
		case <-done:
			return
		}
	}
}

func (p *playerAdapter) cacheTrack(track library.Track) {
	info, err := p.trackInfo(track.Location)
	if err != nil {
		info = nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = track.Location
	p.info = info
}

func (p *playerAdapter) cachedInfo(location string) *player.TrackInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.location != location {
		return nil
	}
	return p.info
}

func (p *playerAdapter) dispatch(t input.Transport) error {
	p.log.Debug().Stringer("command", t).Msg("mpris command")
	p.controls.Dispatch(t)
	return nil
}

func (p *playerAdapter) Next() error {
	return p.dispatch(input.TransportNext)
}

func (p *playerAdapter) Previous() error {
	return p.dispatch(input.TransportPrevious)
}

func (p *playerAdapter) Pause() error {
	if p.controls.State() != playback.StatePlaying {
		return nil
	}
	return p.dispatch(input.TransportPause)
}

func (p *playerAdapter) Play() error {
	if p.controls.State() != playback.StatePaused {
		return nil
	}
	return p.dispatch(input.TransportPause)
}

func (p *playerAdapter) PlayPause() error {
	if !p.controls.State().IsActive() {
		return nil
	}
	return p.dispatch(input.TransportPause)
}

func (p *playerAdapter) Stop() error {
	if !p.controls.State().IsActive() {
		return nil
	}
	return p.dispatch(input.TransportStop)
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.controls.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.controls.Current()
	if !ok {
		return types.Metadata{}, nil
	}
	index, _ := p.controls.Position()

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.Location)),
		Title:       track.Name,
		TrackNumber: index + 1,
	}
	if info := p.cachedInfo(track.Location); info != nil {
		if info.Artist != "" {
			meta.Artist = []string{info.Artist}
		}
		meta.Album = info.Album
	}
	if art := findAlbumArt(track.Location); art != "" {
		meta.ArtUrl = "file://" + art
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// Collections loop, so there is always a next and a previous track while
// something plays.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.controls.State().IsActive(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.controls.State().IsActive(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.controls.State().IsActive(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.controls.State().IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Collections always wrap around.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return types.LoopStatusPlaylist, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(_ types.LoopStatus) error {
	return nil
}

func formatTrackID(location string) string {
	h := fnv.New64a()
	h.Write([]byte(location))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

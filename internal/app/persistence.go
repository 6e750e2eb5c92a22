package app

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cdplay/internal/errmsg"
	"github.com/llehouerou/cdplay/internal/navigator"
	"github.com/llehouerou/cdplay/internal/playback"
	"github.com/llehouerou/cdplay/internal/state"
)

// save persists the track that just started.
func (a *App) save(e playback.TrackChange) {
	a.state.SaveNavigation(state.NavigationState{
		Collection: e.Collection,
		TrackIndex: e.Index,
		TrackName:  e.Track.Name,
		PlayedAt:   a.now(),
	})
}

// restore returns the saved menu position and a line describing it. The
// position is dropped when the collection is gone from the library; the
// track is found by name first, then by index.
func (a *App) restore() (navigator.Position, string) {
	nav, err := a.state.GetNavigation()
	if err != nil {
		a.log.Warn().Err(err).Msg("read navigation state")
		return navigator.Position{}, errmsg.Format(errmsg.OpNavigationRead, err)
	}
	if nav == nil {
		return navigator.Position{}, ""
	}

	ci := a.lib.IndexOf(nav.Collection)
	if ci < 0 {
		a.log.Debug().Str("collection", nav.Collection).Msg("saved collection no longer in library")
		return navigator.Position{}, ""
	}
	collection := a.lib.Collections[ci]

	track := -1
	if t, ok := collection.Track(nav.TrackIndex); ok && t.Name == nav.TrackName {
		track = nav.TrackIndex
	}
	if track < 0 {
		for i, t := range collection.Tracks {
			if t.Name == nav.TrackName {
				track = i
				break
			}
		}
	}
	if track < 0 {
		track = min(max(nav.TrackIndex, 0), collection.Len()-1)
	}

	pos := navigator.Position{Collection: ci, Track: track}
	name := collection.Tracks[track].Name
	if nav.PlayedAt.IsZero() {
		return pos, fmt.Sprintf("Last played %s · %s", collection.Name, name)
	}
	return pos, fmt.Sprintf("Last played %s · %s, %s", collection.Name, name, humanize.RelTime(nav.PlayedAt, a.now(), "ago", "from now"))
}

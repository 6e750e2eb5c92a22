package app

import (
	"context"
	"errors"

	"github.com/llehouerou/cdplay/internal/errmsg"
	"github.com/llehouerou/cdplay/internal/playback"
	"github.com/llehouerou/cdplay/internal/player"
)

// report shows why a session ended. The app goes back to browsing.
func (a *App) report(collection string, err error) {
	a.log.Error().Err(err).Str("collection", collection).Msg("session failed")

	var spawnErr *player.SpawnError
	switch {
	case errors.As(err, &spawnErr):
		a.sink.Report(errmsg.Format(errmsg.OpPlaybackStart, spawnErr))
	case errors.Is(err, playback.ErrAllTracksFailed):
		a.sink.Report(errmsg.FormatWith(errmsg.OpPlayCollection, collection, playback.ErrAllTracksFailed))
	default:
		a.sink.Report(errmsg.FormatWith(errmsg.OpPlayCollection, collection, err))
	}
}

// watch saves every track change until ctx ends, then saves what is left
// in the channel.
func (a *App) watch(ctx context.Context) {
	for {
		select {
		case e, ok := <-a.events:
			if !ok {
				return
			}
			a.save(e)
		case <-ctx.Done():
			for {
				select {
				case e, ok := <-a.events:
					if !ok {
						return
					}
					a.save(e)
				default:
					return
				}
			}
		}
	}
}

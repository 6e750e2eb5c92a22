//go:build linux

// Package mpris exposes the playback controller on the D-Bus session bus so
// desktop media keys can skip, pause and stop.
package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/rs/zerolog"
)

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	player *playerAdapter
	log    zerolog.Logger
	done   chan struct{}
}

// New creates and starts an MPRIS adapter. A missing session bus is logged
// by the background listener; the adapter then does nothing.
func New(controls Controls, log zerolog.Logger) (*Adapter, error) {
	a := &Adapter{
		player: newPlayerAdapter(controls, log),
		log:    log,
		done:   make(chan struct{}),
	}

	a.server = server.NewServer(identity, &rootAdapter{}, a.player)

	go a.player.watch(controls.Subscribe(), a.done)
	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris listen")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

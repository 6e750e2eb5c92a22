package player

import (
	"context"

	"github.com/llehouerou/cdplay/internal/library"
)

// Control is a line-based command understood by the player's control
// endpoint.
type Control string

const (
	ControlStop  Control = "stop"
	ControlPause Control = "cycle pause"
)

// Spawner starts one playback process per track.
type Spawner interface {
	Spawn(ctx context.Context, track library.Track) (Process, error)
}

// Process is a running player. Wait blocks until it exits, whether the
// track ended or it was told to stop. Control may be called from any
// goroutine while Wait is blocked.
type Process interface {
	Wait() error
	Control(c Control) error
}

// Verify MPV implements Spawner at compile time.
var _ Spawner = (*MPV)(nil)

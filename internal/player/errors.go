package player

import (
	"errors"
	"fmt"
)

// ErrExited is returned by Control once the process has exited.
var ErrExited = errors.New("player exited")

// SpawnError reports a player binary that could not be started.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

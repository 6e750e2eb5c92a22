//go:build windows

package player

import (
	"io"
	"os"
)

// Named pipes are created by mpv itself.
func prepareEndpoint(string) error {
	return nil
}

func dialEndpoint(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY, 0)
}

//go:build !windows

package player

import (
	"errors"
	"io"
	"io/fs"
	"net"
	"os"
	"path/filepath"
)

// prepareEndpoint creates the socket directory and removes a socket left
// behind by a previous process.
func prepareEndpoint(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func dialEndpoint(path string) (io.WriteCloser, error) {
	return net.Dial("unix", path)
}

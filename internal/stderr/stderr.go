// Package stderr keeps the player's stderr off the terminal. Lines written
// to a Writer go to the log instead of corrupting the menus.
package stderr

import (
	"bytes"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// maxLine bounds a line kept while waiting for its newline.
const maxLine = 4096

// Writer logs each complete line written to it.
type Writer struct {
	log zerolog.Logger

	mu  sync.Mutex
	buf []byte
}

// NewWriter creates a writer logging to log.
func NewWriter(log zerolog.Logger) *Writer {
	return &Writer{log: log}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) > maxLine {
		w.emit(w.buf)
		w.buf = nil
	}
	return len(p), nil
}

// Close logs what is left of an unterminated last line.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.emit(w.buf)
	w.buf = nil
	return nil
}

func (w *Writer) emit(line []byte) {
	text := strings.TrimSpace(string(line))
	if text == "" {
		return
	}
	w.log.Warn().Str("stderr", text).Msg("player output")
}

// Package player runs mpv, one process per track, and talks to it through
// its IPC endpoint.
package player

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/library"
	"github.com/llehouerou/cdplay/internal/stderr"
)

const (
	dialTimeout  = 2 * time.Second
	dialInterval = 25 * time.Millisecond
)

// Options configures the mpv command line.
type Options struct {
	Binary    string
	Volume    int
	IPCPath   string
	ExtraArgs []string
}

// MPV spawns mpv processes.
type MPV struct {
	opts Options
	log  zerolog.Logger
}

// NewMPV creates a spawner.
func NewMPV(opts Options, log zerolog.Logger) *MPV {
	return &MPV{opts: opts, log: log}
}

// Args returns the arguments mpv is started with for location.
func (m *MPV) Args(location string) []string {
	args := []string{
		"--no-video",
		"--vo=null",
		"--volume=" + strconv.Itoa(m.opts.Volume),
		"--input-ipc-server=" + m.opts.IPCPath,
		"--no-terminal",
	}
	args = append(args, m.opts.ExtraArgs...)
	return append(args, "--", location)
}

// Spawn starts mpv on the track. The process is killed if ctx is cancelled.
func (m *MPV) Spawn(ctx context.Context, track library.Track) (Process, error) {
	if err := prepareEndpoint(m.opts.IPCPath); err != nil {
		m.log.Warn().Err(err).Str("path", m.opts.IPCPath).Msg("prepare ipc endpoint")
	}

	out := stderr.NewWriter(m.log.With().Str("track", track.Name).Logger())
	cmd := exec.CommandContext(ctx, m.opts.Binary, m.Args(track.Location)...)
	cmd.Stderr = out
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Binary: m.opts.Binary, Err: err}
	}

	m.log.Debug().
		Int("pid", cmd.Process.Pid).
		Str("track", track.Name).
		Str("location", track.Location).
		Msg("spawned player")

	p := &process{
		cmd:  cmd,
		ipc:  m.opts.IPCPath,
		done: make(chan struct{}),
	}
	go func() {
		p.err = cmd.Wait()
		_ = out.Close()
		close(p.done)
		p.closeConn()
	}()
	return p, nil
}

type process struct {
	cmd  *exec.Cmd
	ipc  string
	done chan struct{}
	err  error

	mu   sync.Mutex
	conn io.WriteCloser
}

func (p *process) Wait() error {
	<-p.done
	return p.err
}

// Control writes c to the IPC endpoint, connecting on first use. mpv
// creates the endpoint shortly after starting, so the dial is retried.
func (p *process) Control(c Control) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exited() {
		return ErrExited
	}

	if p.conn == nil {
		conn, err := p.dial()
		if err != nil {
			return err
		}
		p.conn = conn
	}

	if _, err := io.WriteString(p.conn, string(c)+"\n"); err != nil {
		_ = p.conn.Close()
		p.conn = nil
		if p.exited() {
			return ErrExited
		}
		return fmt.Errorf("send %q: %w", c, err)
	}
	return nil
}

func (p *process) dial() (io.WriteCloser, error) {
	deadline := time.Now().Add(dialTimeout)
	for {
		conn, err := dialEndpoint(p.ipc)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("connect to %s: %w", p.ipc, err)
		}

		select {
		case <-p.done:
			return nil, ErrExited
		case <-time.After(dialInterval):
		}
	}
}

func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *process) closeConn() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/keymap"
)

const (
	defaultRetryDelay = 100 * time.Millisecond

	// settleDelay is how long a read keeps collecting keys after the first
	// bound one. Keys typed or pasted together arrive well within it.
	settleDelay = 15 * time.Millisecond
)

// Options returns the program options for reading keys from in. Output is
// discarded: the screen package owns the terminal output, and the key
// programs only need in to be a terminal to switch it to raw mode.
func Options(in io.Reader) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(in),
		tea.WithOutput(io.Discard),
	}
}

// Terminal reads key presses from the terminal. Each call runs a short
// bubbletea program: raw mode is entered when it starts and restored when it
// returns, whatever the exit path.
type Terminal struct {
	keys       *keymap.KeyMap
	log        zerolog.Logger
	opts       []tea.ProgramOption
	retryDelay time.Duration

	// keys read after the one a read returned, in arrival order
	mu      sync.Mutex
	pending []tea.KeyMsg
}

// NewTerminal creates a listener using the given bindings. Extra program
// options are passed to every read (tests use them to swap input/output).
func NewTerminal(keys *keymap.KeyMap, log zerolog.Logger, opts ...tea.ProgramOption) *Terminal {
	return &Terminal{
		keys:       keys,
		log:        log,
		opts:       opts,
		retryDelay: defaultRetryDelay,
	}
}

// Next blocks until a menu key is pressed. Unbound keys are ignored.
// Returns ErrQuit for the quit keys and the context error on cancellation.
func (t *Terminal) Next(ctx context.Context) (Command, error) {
	action, err := t.read(ctx, t.keys.Menu)
	if err != nil {
		return 0, err
	}

	switch action {
	case keymap.ActionUp:
		return CommandUp, nil
	case keymap.ActionDown:
		return CommandDown, nil
	case keymap.ActionSelect:
		return CommandSelect, nil
	case keymap.ActionBack:
		return CommandBack, nil
	case keymap.ActionQuit:
		return 0, ErrQuit
	default:
		return 0, fmt.Errorf("action %q has no menu command", action)
	}
}

// NextTransport blocks until a transport key is pressed.
func (t *Terminal) NextTransport(ctx context.Context) (Transport, error) {
	action, err := t.read(ctx, t.keys.Transport)
	if err != nil {
		return 0, err
	}

	switch action {
	case keymap.ActionStop:
		return TransportStop, nil
	case keymap.ActionNext:
		return TransportNext, nil
	case keymap.ActionPrevious:
		return TransportPrevious, nil
	case keymap.ActionPause:
		return TransportPause, nil
	case keymap.ActionQuit:
		return 0, ErrQuit
	default:
		return 0, fmt.Errorf("action %q has no transport command", action)
	}
}

// read returns the first pending key bound in r, or runs key programs until
// one resolves a bound key. Read failures are logged and retried; they never
// reach the caller.
func (t *Terminal) read(ctx context.Context, r *keymap.Resolver) (keymap.Action, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if action, ok := t.takePending(r); ok {
		return action, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		action, ok, err := t.readOnce(ctx, r)
		switch {
		case ok:
			return action, nil
		case errors.Is(err, tea.ErrInterrupted):
			return "", ErrQuit
		case ctx.Err() != nil:
			return "", ctx.Err()
		case err != nil:
			t.log.Warn().Err(err).Msg("read key")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(t.retryDelay):
		}
	}
}

func (t *Terminal) readOnce(ctx context.Context, r *keymap.Resolver) (keymap.Action, bool, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)
	p := tea.NewProgram(keyModel{resolver: r}, opts...)

	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(keyModel)
	if !ok || !m.resolved {
		return "", false, nil
	}
	t.addPending(m.rest)
	return m.action, true, nil
}

// takePending drops pending keys until one is bound in r.
func (t *Terminal) takePending(r *keymap.Resolver) (keymap.Action, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.pending) > 0 {
		k := t.pending[0]
		t.pending = t.pending[1:]
		if action, ok := r.Resolve(k); ok {
			return action, true
		}
	}
	return "", false
}

func (t *Terminal) addPending(keys []tea.KeyMsg) {
	if len(keys) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, keys...)
}

type settledMsg struct {
	seq int
}

// keyModel waits for the first key bound in its resolver. It then keeps
// the keys that follow until none arrived for settleDelay, and quits.
type keyModel struct {
	resolver *keymap.Resolver
	action   keymap.Action
	resolved bool
	rest     []tea.KeyMsg
	seq      int
}

func (m keyModel) Init() tea.Cmd {
	return nil
}

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.resolved {
			m.rest = append(m.rest, msg)
			m.seq++
			return m, m.settle()
		}
		action, ok := m.resolver.Resolve(msg)
		if !ok {
			return m, nil
		}
		m.action = action
		m.resolved = true
		return m, m.settle()
	case settledMsg:
		if m.resolved && msg.seq == m.seq {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m keyModel) settle() tea.Cmd {
	seq := m.seq
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settledMsg{seq: seq}
	})
}

func (m keyModel) View() string {
	return ""
}

// Package state persists where the user left off between runs.
package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "cdplay"
	dbFileName   = "cdplay.db"
	saveDebounce = 500 * time.Millisecond
)

// Interface is what the app needs from the state store.
type Interface interface {
	GetNavigation() (*NavigationState, error)
	SaveNavigation(state NavigationState)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)

type Manager struct {
	db  *sql.DB
	log zerolog.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavigationState
}

// Open opens the database in the XDG data directory, creating it if needed.
func Open(log zerolog.Logger) (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, log)
}

// OpenPath opens the database at path.
func OpenPath(path string, log zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, log: log}, nil
}

// Close flushes a pending save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		m.save(*pending)
	}

	return m.db.Close()
}

// GetNavigation returns the saved navigation, or nil on first run.
func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation saves state after a short delay. A newer call replaces a
// save that has not happened yet.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			m.save(*pending)
		}
	})
}

func (m *Manager) save(state NavigationState) {
	if err := saveNavigation(m.db, state); err != nil {
		m.log.Warn().Err(err).Str("collection", state.Collection).Msg("save navigation")
	}
}

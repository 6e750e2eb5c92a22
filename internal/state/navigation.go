package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/cdplay/internal/db"
)

// NavigationState is the last track played. Collections are stored by
// name so a reordered library still finds them.
type NavigationState struct {
	Collection string
	TrackIndex int
	TrackName  string
	PlayedAt   time.Time
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`
		SELECT collection_name, track_index, track_name, played_at
		FROM navigation_state WHERE id = 1
	`)

	var state NavigationState
	var trackName sql.NullString
	var playedAt sql.NullInt64

	err := row.Scan(&state.Collection, &state.TrackIndex, &trackName, &playedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.TrackName = dbutil.NullStringValue(trackName)
	if ts := dbutil.NullInt64Value(playedAt); ts > 0 {
		state.PlayedAt = time.Unix(ts, 0)
	}

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	playedAt := sql.NullInt64{}
	if !state.PlayedAt.IsZero() {
		playedAt = sql.NullInt64{Int64: state.PlayedAt.Unix(), Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO navigation_state (id, collection_name, track_index, track_name, played_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection_name = excluded.collection_name,
			track_index = excluded.track_index,
			track_name = excluded.track_name,
			played_at = excluded.played_at
	`, state.Collection, state.TrackIndex, state.TrackName, playedAt)

	return err
}

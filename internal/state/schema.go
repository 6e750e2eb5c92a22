package state

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/cdplay/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, db *sql.DB) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS navigation_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				collection_name TEXT NOT NULL,
				track_index INTEGER NOT NULL DEFAULT 0,
				track_name TEXT,
				played_at INTEGER
			);
		`)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)
		`, currentSchemaVersion)
		return err
	})
}

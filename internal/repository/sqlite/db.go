package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// schema is applied on every Open; CREATE TABLE IF NOT EXISTS keeps it
// idempotent. The unique index on name uses NOCASE collation so uniqueness is
// enforced case-insensitively by the engine itself.
const schema = `
CREATE TABLE IF NOT EXISTS exercises (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL UNIQUE COLLATE NOCASE,
	description   TEXT,
	exercise_type INTEGER NOT NULL,
	deleted       INTEGER NOT NULL DEFAULT 0
);
`

// Open opens (and creates if missing) the SQLite database at path and applies
// the schema. Pass ":memory:" for an in-memory database, used by tests and
// local runs.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		// WAL mode for better concurrency; writes are still serialized by the
		// engine, which is what keeps Update/Delete single-statement atomic.
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// A second pool connection would see a different empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("sqlite database opened")
	return db, nil
}

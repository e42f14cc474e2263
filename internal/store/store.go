// Package store persists partitioned listening events in SQLite and runs the
// grouping queries the analysis commands are built on.
package store

import (
	"database/sql"
	"fmt"

	"github.com/ademuri/spotify-history-tools/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Counts returns the number of stored track and episode plays.
func (s *Store) Counts() (tracks int64, episodes int64, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM TrackPlay").Scan(&tracks); err != nil {
		return 0, 0, fmt.Errorf("counting track plays: %w", err)
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM EpisodePlay").Scan(&episodes); err != nil {
		return 0, 0, fmt.Errorf("counting episode plays: %w", err)
	}
	return tracks, episodes, nil
}

package store

import (
	"fmt"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// AddTrackPlays inserts a batch of track plays transactionally.
func (s *Store) AddTrackPlays(plays []history.TrackPlay) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO TrackPlay (ts, ms_played, track, album, artist, track_id) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing track insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plays {
		if _, err := stmt.Exec(p.Ts, p.MsPlayed, p.Track, p.Album, p.Artist, p.TrackID); err != nil {
			return fmt.Errorf("inserting track play %q: %w", p.Track, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// AddEpisodePlays inserts a batch of episode plays transactionally.
func (s *Store) AddEpisodePlays(plays []history.EpisodePlay) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO EpisodePlay (ts, platform, ms_played, episode, show) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing episode insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plays {
		if _, err := stmt.Exec(p.Ts, p.Platform, p.MsPlayed, p.Episode, p.Show); err != nil {
			return fmt.Errorf("inserting episode play %q: %w", p.Episode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

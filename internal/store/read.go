package store

import (
	"database/sql"
	"fmt"
)

// Timestamps are stored as the export's UTC RFC3339 text, so calendar years
// and days are string prefixes and range filters are string comparisons. No
// timezone conversion happens anywhere.

// DailyMinutes is the summed listening for one calendar day. Days with no
// plays are absent; analysis.FillDays materializes them.
type DailyMinutes struct {
	Day     string
	Minutes float64
}

// TrackDayRange returns the earliest and latest calendar day with a track
// play. ok is false when there are no track plays at all.
func (s *Store) TrackDayRange() (minDay string, maxDay string, ok bool, err error) {
	var lo, hi sql.NullString
	err = s.db.QueryRow("SELECT MIN(substr(ts, 1, 10)), MAX(substr(ts, 1, 10)) FROM TrackPlay").Scan(&lo, &hi)
	if err != nil {
		return "", "", false, fmt.Errorf("querying track day range: %w", err)
	}
	if !lo.Valid || !hi.Valid {
		return "", "", false, nil
	}
	return lo.String, hi.String, true, nil
}

// DailyTrackMinutes returns per-day music listening in minutes, sparse and
// ordered by day.
func (s *Store) DailyTrackMinutes() ([]DailyMinutes, error) {
	return s.dailyMinutes("TrackPlay")
}

// DailyEpisodeMinutes returns per-day podcast listening in minutes, sparse
// and ordered by day.
func (s *Store) DailyEpisodeMinutes() ([]DailyMinutes, error) {
	return s.dailyMinutes("EpisodePlay")
}

func (s *Store) dailyMinutes(table string) ([]DailyMinutes, error) {
	query := fmt.Sprintf(`
	SELECT substr(ts, 1, 10) AS day, SUM(ms_played) / 60000.0
	FROM %s
	GROUP BY day
	ORDER BY day ASC
	`, table)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying daily minutes: %w", err)
	}
	defer rows.Close()

	var results []DailyMinutes
	for rows.Next() {
		var d DailyMinutes
		if err := rows.Scan(&d.Day, &d.Minutes); err != nil {
			return nil, err
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// EpisodeDay is one qualifying play of an episode on a calendar day. The
// same pair appears once per play; deduplication is up to the caller.
type EpisodeDay struct {
	Episode string
	Day     string
}

// ShowListens returns the (episode, day) rows for plays of the given show
// lasting at least minMs milliseconds.
func (s *Store) ShowListens(show string, minMs int64) ([]EpisodeDay, error) {
	query := `
	SELECT episode, substr(ts, 1, 10)
	FROM EpisodePlay
	WHERE show = ?
	AND ms_played >= ?
	ORDER BY episode ASC, substr(ts, 1, 10) ASC
	`
	rows, err := s.db.Query(query, show, minMs)
	if err != nil {
		return nil, fmt.Errorf("querying show listens: %w", err)
	}
	defer rows.Close()

	var results []EpisodeDay
	for rows.Next() {
		var ed EpisodeDay
		if err := rows.Scan(&ed.Episode, &ed.Day); err != nil {
			return nil, err
		}
		results = append(results, ed)
	}
	return results, rows.Err()
}

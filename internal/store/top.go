package store

import (
	"fmt"
)

type YearCategoryHours struct {
	Year     string
	Category string
	Hours    float64
}

type ArtistHours struct {
	Artist string
	Hours  float64
}

type ArtistYearHours struct {
	Year   string
	Artist string
	Hours  float64
}

type TrackPlayCount struct {
	TrackID string
	Track   string
	Artist  string
	Count   int64
}

type ShowHours struct {
	Show  string
	Hours float64
}

// HoursPerYear returns listening hours grouped by calendar year and
// category, music rows first, years ascending.
func (s *Store) HoursPerYear() ([]YearCategoryHours, error) {
	query := `
	SELECT year, category, hours FROM (
		SELECT substr(ts, 1, 4) AS year, 'music' AS category, SUM(ms_played) / 3600000.0 AS hours
		FROM TrackPlay
		GROUP BY year
		UNION ALL
		SELECT substr(ts, 1, 4) AS year, 'podcast' AS category, SUM(ms_played) / 3600000.0 AS hours
		FROM EpisodePlay
		GROUP BY year
	)
	ORDER BY category ASC, year ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying hours per year: %w", err)
	}
	defer rows.Close()

	var results []YearCategoryHours
	for rows.Next() {
		var y YearCategoryHours
		if err := rows.Scan(&y.Year, &y.Category, &y.Hours); err != nil {
			return nil, err
		}
		results = append(results, y)
	}
	return results, rows.Err()
}

// ArtistTotalHours returns summed music hours per artist, highest first.
// When start or end is non-empty it bounds the timestamps as a half-open
// [start, end) range in RFC3339 (or prefix) form.
func (s *Store) ArtistTotalHours(start, end string) ([]ArtistHours, error) {
	query := `
	SELECT artist, SUM(ms_played) / 3600000.0 AS hours
	FROM TrackPlay
	WHERE (? = '' OR ts >= ?)
	AND (? = '' OR ts < ?)
	GROUP BY artist
	ORDER BY hours DESC, artist ASC
	`
	rows, err := s.db.Query(query, start, start, end, end)
	if err != nil {
		return nil, fmt.Errorf("querying artist hours: %w", err)
	}
	defer rows.Close()

	var results []ArtistHours
	for rows.Next() {
		var a ArtistHours
		if err := rows.Scan(&a.Artist, &a.Hours); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// ArtistHoursByYear returns summed music hours per (year, artist), for the
// per-year ranking.
func (s *Store) ArtistHoursByYear() ([]ArtistYearHours, error) {
	query := `
	SELECT substr(ts, 1, 4) AS year, artist, SUM(ms_played) / 3600000.0 AS hours
	FROM TrackPlay
	GROUP BY year, artist
	ORDER BY year ASC, hours DESC, artist ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying artist hours by year: %w", err)
	}
	defer rows.Close()

	var results []ArtistYearHours
	for rows.Next() {
		var a ArtistYearHours
		if err := rows.Scan(&a.Year, &a.Artist, &a.Hours); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// TrackPlayCounts returns play counts per track, highest first. Tracks are
// keyed by id where the export had one, falling back to name and artist.
func (s *Store) TrackPlayCounts() ([]TrackPlayCount, error) {
	query := `
	SELECT track_id, track, artist, COUNT(*) AS plays
	FROM TrackPlay
	GROUP BY track_id, track, artist
	ORDER BY plays DESC, track ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying track play counts: %w", err)
	}
	defer rows.Close()

	var results []TrackPlayCount
	for rows.Next() {
		var t TrackPlayCount
		if err := rows.Scan(&t.TrackID, &t.Track, &t.Artist, &t.Count); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// ShowTotalHours returns summed podcast hours per show, highest first.
func (s *Store) ShowTotalHours() ([]ShowHours, error) {
	query := `
	SELECT show, SUM(ms_played) / 3600000.0 AS hours
	FROM EpisodePlay
	GROUP BY show
	ORDER BY hours DESC, show ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying show hours: %w", err)
	}
	defer rows.Close()

	var results []ShowHours
	for rows.Next() {
		var sh ShowHours
		if err := rows.Scan(&sh.Show, &sh.Hours); err != nil {
			return nil, err
		}
		results = append(results, sh)
	}
	return results, rows.Err()
}

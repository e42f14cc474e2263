package store

import (
	"path/filepath"
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "spotify-history.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}

	return store
}

func addTestPlays(t *testing.T, s *Store) {
	t.Helper()
	tracks := []history.TrackPlay{
		{Ts: "2021-03-01T10:00:00Z", MsPlayed: 3600000, Track: "Song 1", Album: "Album", Artist: "A", TrackID: "id1"},
		{Ts: "2021-03-01T12:00:00Z", MsPlayed: 1800000, Track: "Song 2", Album: "Album", Artist: "B", TrackID: "id2"},
		{Ts: "2021-03-03T10:00:00Z", MsPlayed: 1800000, Track: "Song 1", Album: "Album", Artist: "A", TrackID: "id1"},
		{Ts: "2022-01-01T10:00:00Z", MsPlayed: 7200000, Track: "Song 3", Album: "Other", Artist: "B", TrackID: "id3"},
	}
	if err := s.AddTrackPlays(tracks); err != nil {
		t.Fatalf("AddTrackPlays: %v", err)
	}

	episodes := []history.EpisodePlay{
		{Ts: "2021-03-02T08:00:00Z", Platform: "ios", MsPlayed: 1800000, Episode: "Episode 1", Show: "S"},
		{Ts: "2021-03-02T20:00:00Z", Platform: "ios", MsPlayed: 900000, Episode: "Episode 1", Show: "S"},
		{Ts: "2021-03-04T08:00:00Z", Platform: "ios", MsPlayed: 1200000, Episode: "Episode 2", Show: "S"},
		{Ts: "2021-03-04T09:00:00Z", Platform: "ios", MsPlayed: 60000, Episode: "Short", Show: "S"},
	}
	if err := s.AddEpisodePlays(episodes); err != nil {
		t.Fatalf("AddEpisodePlays: %v", err)
	}
}

func TestCounts(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	tracks, episodes, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if tracks != 0 || episodes != 0 {
		t.Errorf("Expected empty store, got %d tracks, %d episodes", tracks, episodes)
	}

	addTestPlays(t, s)

	tracks, episodes, err = s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if tracks != 4 || episodes != 4 {
		t.Errorf("Expected 4 tracks and 4 episodes, got %d and %d", tracks, episodes)
	}
}

func TestHoursPerYear(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	hours, err := s.HoursPerYear()
	if err != nil {
		t.Fatalf("HoursPerYear: %v", err)
	}

	got := make(map[string]float64)
	for _, h := range hours {
		got[h.Year+"/"+h.Category] = h.Hours
	}

	// 2021 music: 3600000 + 1800000 + 1800000 ms = 2 hours.
	if got["2021/music"] != 2.0 {
		t.Errorf("Expected 2 music hours in 2021, got %v", got["2021/music"])
	}
	if got["2022/music"] != 2.0 {
		t.Errorf("Expected 2 music hours in 2022, got %v", got["2022/music"])
	}
	// 2021 podcast: 1800000 + 900000 + 1200000 + 60000 ms = 1.1 hours.
	if got["2021/podcast"] != 1.1 {
		t.Errorf("Expected 1.1 podcast hours in 2021, got %v", got["2021/podcast"])
	}
}

func TestArtistTotalHours(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	artists, err := s.ArtistTotalHours("", "")
	if err != nil {
		t.Fatalf("ArtistTotalHours: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("Expected 2 artists, got %d", len(artists))
	}
	// B: 0.5 + 2 hours, A: 1 + 0.5 hours.
	if artists[0].Artist != "B" || artists[0].Hours != 2.5 {
		t.Errorf("Expected B with 2.5 hours first, got %+v", artists[0])
	}
	if artists[1].Artist != "A" || artists[1].Hours != 1.5 {
		t.Errorf("Expected A with 1.5 hours, got %+v", artists[1])
	}
}

func TestArtistTotalHoursRange(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	artists, err := s.ArtistTotalHours("2021-01-01T00:00:00Z", "2022-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("ArtistTotalHours: %v", err)
	}
	// The 2022 play for B is excluded: A has 1.5 hours, B has 0.5.
	if len(artists) != 2 {
		t.Fatalf("Expected 2 artists, got %d", len(artists))
	}
	if artists[0].Artist != "A" || artists[0].Hours != 1.5 {
		t.Errorf("Expected A with 1.5 hours first, got %+v", artists[0])
	}
	if artists[1].Artist != "B" || artists[1].Hours != 0.5 {
		t.Errorf("Expected B with 0.5 hours, got %+v", artists[1])
	}
}

func TestArtistHoursByYear(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	rows, err := s.ArtistHoursByYear()
	if err != nil {
		t.Fatalf("ArtistHoursByYear: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 (year, artist) rows, got %d", len(rows))
	}
	// 2021 first, artists by hours descending within the year.
	if rows[0].Year != "2021" || rows[0].Artist != "A" || rows[0].Hours != 1.5 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[2].Year != "2022" || rows[2].Artist != "B" {
		t.Errorf("Unexpected last row: %+v", rows[2])
	}
}

func TestTrackPlayCounts(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	counts, err := s.TrackPlayCounts()
	if err != nil {
		t.Fatalf("TrackPlayCounts: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("Expected 3 tracks, got %d", len(counts))
	}
	if counts[0].TrackID != "id1" || counts[0].Count != 2 {
		t.Errorf("Expected id1 with 2 plays first, got %+v", counts[0])
	}
}

func TestShowTotalHours(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	shows, err := s.ShowTotalHours()
	if err != nil {
		t.Fatalf("ShowTotalHours: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(shows))
	}
	if shows[0].Show != "S" || shows[0].Hours != 1.1 {
		t.Errorf("Expected S with 1.1 hours, got %+v", shows[0])
	}
}

func TestTrackDayRange(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	_, _, ok, err := s.TrackDayRange()
	if err != nil {
		t.Fatalf("TrackDayRange: %v", err)
	}
	if ok {
		t.Error("Expected no range for empty store")
	}

	addTestPlays(t, s)

	minDay, maxDay, ok, err := s.TrackDayRange()
	if err != nil {
		t.Fatalf("TrackDayRange: %v", err)
	}
	if !ok {
		t.Fatal("Expected a range")
	}
	if minDay != "2021-03-01" || maxDay != "2022-01-01" {
		t.Errorf("Expected [2021-03-01, 2022-01-01], got [%s, %s]", minDay, maxDay)
	}
}

func TestDailyMinutes(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	daily, err := s.DailyTrackMinutes()
	if err != nil {
		t.Fatalf("DailyTrackMinutes: %v", err)
	}
	if len(daily) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(daily))
	}
	// 2021-03-01: 3600000 + 1800000 ms = 90 minutes.
	if daily[0].Day != "2021-03-01" || daily[0].Minutes != 90 {
		t.Errorf("Unexpected first day: %+v", daily[0])
	}

	// Round trip: total daily minutes equal total played milliseconds.
	var total float64
	for _, d := range daily {
		total += d.Minutes
	}
	if total != (3600000+1800000+1800000+7200000)/60000.0 {
		t.Errorf("Daily sum %v does not match play sum", total)
	}
}

func TestShowListens(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()
	addTestPlays(t, s)

	listens, err := s.ShowListens("S", 900000)
	if err != nil {
		t.Fatalf("ShowListens: %v", err)
	}
	// The 60000 ms play of "Short" is filtered out; the two Episode 1 plays
	// on the same day are both returned.
	if len(listens) != 3 {
		t.Fatalf("Expected 3 listens, got %d", len(listens))
	}
	for _, l := range listens {
		if l.Episode == "Short" {
			t.Errorf("Short play should have been filtered: %+v", l)
		}
	}

	empty, err := s.ShowListens("Unknown", 900000)
	if err != nil {
		t.Fatalf("ShowListens: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no listens for unknown show, got %d", len(empty))
	}
}

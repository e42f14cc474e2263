package history

import (
	"os"
	"path/filepath"
	"testing"
)

func strptr(s string) *string {
	return &s
}

func TestPartitionSplitsTracksAndEpisodes(t *testing.T) {
	events := []RawEvent{
		{
			Ts:         "2021-06-01T10:00:00Z",
			MsPlayed:   200000,
			TrackName:  strptr("Song"),
			ArtistName: strptr("A"),
		},
		{
			Ts:         "2021-06-01T11:00:00Z",
			MsPlayed:   0,
			TrackName:  strptr("Song"),
			ArtistName: strptr("A"),
		},
		{
			Ts:          "2021-06-01T12:00:00Z",
			MsPlayed:    500000,
			EpisodeName: strptr("Episode 1"),
			ShowName:    strptr("S"),
		},
	}

	tracks, episodes, stats := Partition(events)

	if len(tracks) != 1 {
		t.Fatalf("Expected 1 track play, got %d", len(tracks))
	}
	if tracks[0].MsPlayed != 200000 {
		t.Errorf("Expected 200000 ms, got %d", tracks[0].MsPlayed)
	}
	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode play, got %d", len(episodes))
	}
	if episodes[0].MsPlayed != 500000 {
		t.Errorf("Expected 500000 ms, got %d", episodes[0].MsPlayed)
	}
	if stats.Tracks != 1 || stats.Episodes != 1 || stats.Dropped != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestPartitionTrackPlaysAlwaysPositive(t *testing.T) {
	events := []RawEvent{
		{Ts: "2021-01-01T00:00:00Z", MsPlayed: 0, TrackName: strptr("a")},
		{Ts: "2021-01-02T00:00:00Z", MsPlayed: 1, TrackName: strptr("b")},
		{Ts: "2021-01-03T00:00:00Z", MsPlayed: 60000, TrackName: strptr("c")},
	}
	tracks, _, _ := Partition(events)
	for _, track := range tracks {
		if track.MsPlayed <= 0 {
			t.Errorf("Track play %q has non-positive duration %d", track.Track, track.MsPlayed)
		}
	}
	if len(tracks) != 2 {
		t.Errorf("Expected 2 track plays, got %d", len(tracks))
	}
}

func TestPartitionKeepsZeroDurationEpisodes(t *testing.T) {
	events := []RawEvent{
		{Ts: "2021-01-01T00:00:00Z", MsPlayed: 0, EpisodeName: strptr("Episode 1")},
		{Ts: "2021-01-01T01:00:00Z", MsPlayed: 100, EpisodeName: strptr("Episode 2")},
	}
	_, episodes, stats := Partition(events)
	if len(episodes) != 2 {
		t.Fatalf("Expected 2 episode plays, got %d", len(episodes))
	}
	if stats.ZeroMsEpisodes != 1 {
		t.Errorf("Expected 1 zero-duration episode, got %d", stats.ZeroMsEpisodes)
	}
}

func TestPartitionEpisodeWithoutShowName(t *testing.T) {
	events := []RawEvent{
		{Ts: "2021-01-01T00:00:00Z", MsPlayed: 100, EpisodeName: strptr("Episode 1")},
	}
	_, episodes, _ := Partition(events)
	if len(episodes) != 1 {
		t.Fatalf("Expected 1 episode play, got %d", len(episodes))
	}
	if episodes[0].Show != "" {
		t.Errorf("Expected empty show name, got %q", episodes[0].Show)
	}
}

func TestPartitionDropsEmptyAndBadTimestampRecords(t *testing.T) {
	events := []RawEvent{
		{Ts: "2021-01-01T00:00:00Z", MsPlayed: 100},
		{Ts: "not-a-timestamp", MsPlayed: 100, TrackName: strptr("a")},
		{Ts: "", MsPlayed: 100, TrackName: strptr("a")},
	}
	tracks, episodes, stats := Partition(events)
	if len(tracks) != 0 || len(episodes) != 0 {
		t.Fatalf("Expected no plays, got %d tracks and %d episodes", len(tracks), len(episodes))
	}
	if stats.Dropped != 1 {
		t.Errorf("Expected 1 dropped record, got %d", stats.Dropped)
	}
	if stats.BadTimestamps != 2 {
		t.Errorf("Expected 2 bad timestamps, got %d", stats.BadTimestamps)
	}
}

func TestTrackID(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC"},
		{"4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC"},
		{"spotify:episode:abc", "spotify:episode:abc"},
		{"", ""},
	}
	for _, c := range cases {
		if got := TrackID(c.uri); got != c.want {
			t.Errorf("TrackID(%q) = %q, want %q", c.uri, got, c.want)
		}
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "endsong_0.json")
	content := `[
		{"ts": "2021-06-01T10:00:00Z", "ms_played": 200000,
		 "master_metadata_track_name": "Song",
		 "master_metadata_album_artist_name": "A",
		 "spotify_track_uri": "spotify:track:abc123"},
		{"ts": "2021-06-01T12:00:00Z", "ms_played": 500000, "platform": "ios",
		 "episode_name": "Episode 1", "episode_show_name": "S"}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	events, err := ReadFiles([]string{path})
	if err != nil {
		t.Fatalf("ReadFiles: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].TrackName == nil || *events[0].TrackName != "Song" {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[1].EpisodeName == nil || *events[1].EpisodeName != "Episode 1" {
		t.Errorf("Unexpected second event: %+v", events[1])
	}

	tracks, _, _ := Partition(events)
	if len(tracks) != 1 || tracks[0].TrackID != "abc123" {
		t.Errorf("Expected extracted track id abc123, got %+v", tracks)
	}
}

func TestReadFilesMissing(t *testing.T) {
	_, err := ReadFiles([]string{"/does/not/exist.json"})
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

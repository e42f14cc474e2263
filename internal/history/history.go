// Package history reads Spotify extended streaming history exports and
// partitions the raw events into typed music and podcast plays.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// RawEvent is one row of the endsong export. Spotify leaves the track fields
// null for podcast rows and the episode fields null for music rows, so
// everything except ts is optional.
type RawEvent struct {
	Ts          string  `json:"ts"`
	Platform    *string `json:"platform"`
	MsPlayed    int64   `json:"ms_played"`
	TrackName   *string `json:"master_metadata_track_name"`
	AlbumName   *string `json:"master_metadata_album_album_name"`
	ArtistName  *string `json:"master_metadata_album_artist_name"`
	TrackURI    *string `json:"spotify_track_uri"`
	EpisodeName *string `json:"episode_name"`
	ShowName    *string `json:"episode_show_name"`
}

// TrackPlay is a music listening event. MsPlayed is always > 0.
type TrackPlay struct {
	Ts       string
	MsPlayed int64
	Track    string
	Album    string
	Artist   string
	TrackID  string
}

// EpisodePlay is a podcast listening event. Unlike TrackPlay, zero-duration
// plays and rows with no show name are kept, matching the export as-is.
type EpisodePlay struct {
	Ts       string
	Platform string
	MsPlayed int64
	Episode  string
	Show     string
}

// PartitionStats counts what happened to each raw event during partitioning.
type PartitionStats struct {
	Tracks         int
	Episodes       int
	Dropped        int
	BadTimestamps  int
	ZeroMsEpisodes int
}

const trackURIPrefix = "spotify:track:"

// ReadFiles decodes each file as a JSON array of events and concatenates
// them, preserving file order.
func ReadFiles(paths []string) ([]RawEvent, error) {
	var all []RawEvent
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var events []RawEvent
		if err := json.Unmarshal(content, &events); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		all = append(all, events...)
	}
	return all, nil
}

// Partition splits raw events into track and episode plays.
//
// An event becomes a TrackPlay when it has no episode name, has a track name,
// and was played for a nonzero duration. An event becomes an EpisodePlay
// whenever it has an episode name, with no duration filtering. Events
// matching neither predicate, and events whose timestamp does not parse as
// RFC3339, are dropped and counted in the stats.
func Partition(events []RawEvent) ([]TrackPlay, []EpisodePlay, PartitionStats) {
	var tracks []TrackPlay
	var episodes []EpisodePlay
	var stats PartitionStats

	for _, e := range events {
		if _, err := time.Parse(time.RFC3339, e.Ts); err != nil {
			stats.BadTimestamps++
			continue
		}

		switch {
		case e.EpisodeName != nil:
			if e.MsPlayed == 0 {
				stats.ZeroMsEpisodes++
			}
			episodes = append(episodes, EpisodePlay{
				Ts:       e.Ts,
				Platform: stringOrEmpty(e.Platform),
				MsPlayed: e.MsPlayed,
				Episode:  *e.EpisodeName,
				Show:     stringOrEmpty(e.ShowName),
			})
			stats.Episodes++

		case e.TrackName != nil && e.MsPlayed != 0:
			tracks = append(tracks, TrackPlay{
				Ts:       e.Ts,
				MsPlayed: e.MsPlayed,
				Track:    *e.TrackName,
				Album:    stringOrEmpty(e.AlbumName),
				Artist:   stringOrEmpty(e.ArtistName),
				TrackID:  TrackID(stringOrEmpty(e.TrackURI)),
			})
			stats.Tracks++

		default:
			stats.Dropped++
		}
	}

	return tracks, episodes, stats
}

// TrackID strips the spotify:track: prefix from a track URI. Anything not in
// that form passes through unchanged.
func TrackID(uri string) string {
	return strings.TrimPrefix(uri, trackURIPrefix)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

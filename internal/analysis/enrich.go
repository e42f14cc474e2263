package analysis

import (
	"github.com/ademuri/spotify-history-tools/internal/metadata"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

// Enrich left joins looked-up attributes onto track play counts by track id.
// Tracks with no match keep nil popularity and explicit rather than being
// dropped. A nil attrs map leaves every row unenriched.
func Enrich(counts []store.TrackPlayCount, attrs map[string]metadata.TrackAttrs) []EnrichedTrack {
	enriched := make([]EnrichedTrack, 0, len(counts))
	for _, c := range counts {
		t := EnrichedTrack{
			TrackID:   c.TrackID,
			Track:     c.Track,
			Artist:    c.Artist,
			PlayCount: c.Count,
		}
		if a, ok := attrs[c.TrackID]; ok {
			popularity := a.Popularity
			explicit := a.Explicit
			t.Popularity = &popularity
			t.Explicit = &explicit
		}
		enriched = append(enriched, t)
	}
	return enriched
}

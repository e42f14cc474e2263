package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/metadata"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

// LookupFunc is the metadata collaborator. A nil LookupFunc skips
// enrichment, as does any lookup error; the report is still generated.
type LookupFunc func(ctx context.Context, ids []string) (map[string]metadata.TrackAttrs, error)

const (
	reportTopArtists  = 10
	reportTopTracks   = 50
	reportTopPodcasts = 10
	reportTopReplays  = 5
)

// GenerateReport assembles the whole listening report.
func GenerateReport(ctx context.Context, st *store.Store, lookup LookupFunc) (*Report, error) {
	report := &Report{}

	trackPlays, episodePlays, err := st.Counts()
	if err != nil {
		return nil, fmt.Errorf("counting plays: %w", err)
	}
	report.Metadata = ReportMetadata{
		GeneratedDate: time.Now().UTC().Format(dayFormat),
		TrackPlays:    trackPlays,
		EpisodePlays:  episodePlays,
	}
	firstDay, lastDay, ok, err := st.TrackDayRange()
	if err != nil {
		return nil, fmt.Errorf("getting day range: %w", err)
	}
	if ok {
		report.Metadata.FirstDay = firstDay
		report.Metadata.LastDay = lastDay
	}

	hours, err := st.HoursPerYear()
	if err != nil {
		return nil, fmt.Errorf("hours per year: %w", err)
	}
	for _, h := range hours {
		report.HoursPerYear = append(report.HoursPerYear, YearHours{
			Year:     h.Year,
			Category: h.Category,
			Hours:    round2(h.Hours),
		})
	}

	artistHours, err := st.ArtistTotalHours("", "")
	if err != nil {
		return nil, fmt.Errorf("artist hours: %w", err)
	}
	topArtists := TopN(artistHours, reportTopArtists, func(a store.ArtistHours) float64 { return a.Hours })
	var topArtistNames []string
	for _, a := range topArtists {
		report.TopArtists = append(report.TopArtists, ArtistHours{Artist: a.Artist, Hours: round2(a.Hours)})
		topArtistNames = append(topArtistNames, a.Artist)
	}

	yearHours, err := st.ArtistHoursByYear()
	if err != nil {
		return nil, fmt.Errorf("artist hours by year: %w", err)
	}
	for _, r := range FilterRanksByArtists(RankByYear(yearHours), topArtistNames) {
		r.Hours = round2(r.Hours)
		report.ArtistRanks = append(report.ArtistRanks, r)
	}

	trackCounts, err := st.TrackPlayCounts()
	if err != nil {
		return nil, fmt.Errorf("track play counts: %w", err)
	}
	topTracks := TopN(trackCounts, reportTopTracks, func(t store.TrackPlayCount) float64 { return float64(t.Count) })
	var attrs map[string]metadata.TrackAttrs
	if lookup != nil {
		var ids []string
		for _, t := range topTracks {
			if t.TrackID == "" {
				continue
			}
			ids = append(ids, t.TrackID)
			if len(ids) == reportTopTracks {
				break
			}
		}
		attrs, err = lookup(ctx, ids)
		if err != nil {
			// Enrichment is best-effort: report with unenriched rows.
			attrs = nil
		}
	}
	report.TopTracks = Enrich(topTracks, attrs)
	report.Metadata.Enriched = attrs != nil

	showHours, err := st.ShowTotalHours()
	if err != nil {
		return nil, fmt.Errorf("show hours: %w", err)
	}
	topShows := TopN(showHours, reportTopPodcasts, func(s store.ShowHours) float64 { return s.Hours })
	for _, s := range topShows {
		report.TopPodcasts = append(report.TopPodcasts, ShowHours{Show: s.Show, Hours: round2(s.Hours)})
	}

	// Replay counting covers the most-listened show.
	if len(topShows) > 0 {
		listens, err := st.ShowListens(topShows[0].Show, DefaultReplayMinMs)
		if err != nil {
			return nil, fmt.Errorf("show listens: %w", err)
		}
		counts := ReplayCounts(listens)
		report.MostReplayed = &ShowReplays{
			Show:     topShows[0].Show,
			Episodes: TopN(counts, reportTopReplays, func(e EpisodeReplays) float64 { return float64(e.Days) }),
		}
	}

	return report, nil
}

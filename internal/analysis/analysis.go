// Package analysis computes the listening report from the stored plays:
// per-year ranking, top-N selection, calendar fill, and replay counting.
package analysis

import (
	"math"
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

// TopN returns the first n rows plus any rows tied with the nth measure.
// Rows must already be sorted by the measure descending. With n <= 0 all
// rows are returned.
func TopN[T any](rows []T, n int, measure func(T) float64) []T {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	cutoff := measure(rows[n-1])
	end := n
	for end < len(rows) && measure(rows[end]) == cutoff {
		end++
	}
	return rows[:end]
}

// RankByYear assigns each artist its 1-based position within each year,
// ordered by hours descending. Ties are broken by artist name ascending so
// the ranking is deterministic. Within a year the ranks are exactly 1..k for
// k distinct artists.
func RankByYear(rows []store.ArtistYearHours) []ArtistYearRank {
	sorted := make([]store.ArtistYearHours, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		if sorted[i].Hours != sorted[j].Hours {
			return sorted[i].Hours > sorted[j].Hours
		}
		return sorted[i].Artist < sorted[j].Artist
	})

	var ranks []ArtistYearRank
	year := ""
	rank := 0
	for _, r := range sorted {
		if r.Year != year {
			year = r.Year
			rank = 0
		}
		rank++
		ranks = append(ranks, ArtistYearRank{
			Year:   r.Year,
			Artist: r.Artist,
			Hours:  r.Hours,
			Rank:   rank,
		})
	}
	return ranks
}

// FilterRanksByArtists keeps only the ranks of the given artists, preserving
// order.
func FilterRanksByArtists(ranks []ArtistYearRank, artists []string) []ArtistYearRank {
	keep := make(map[string]bool, len(artists))
	for _, a := range artists {
		keep[a] = true
	}
	var filtered []ArtistYearRank
	for _, r := range ranks {
		if keep[r.Artist] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

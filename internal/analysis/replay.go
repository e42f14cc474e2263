package analysis

import (
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

// DefaultReplayMinMs is the minimum play length for a listen to count as a
// replay: 15 minutes.
const DefaultReplayMinMs = 15 * 60 * 1000

// ReplayCounts deduplicates listens by (episode, day), so a play that was
// paused and resumed on the same day counts once, then counts the remaining
// days per episode. Results are sorted by count descending, episode name
// ascending, and are independent of input order.
func ReplayCounts(rows []store.EpisodeDay) []EpisodeReplays {
	seen := make(map[store.EpisodeDay]bool, len(rows))
	days := make(map[string]int)
	for _, r := range rows {
		if seen[r] {
			continue
		}
		seen[r] = true
		days[r.Episode]++
	}

	counts := make([]EpisodeReplays, 0, len(days))
	for episode, n := range days {
		counts = append(counts, EpisodeReplays{Episode: episode, Days: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Days != counts[j].Days {
			return counts[i].Days > counts[j].Days
		}
		return counts[i].Episode < counts[j].Episode
	})
	return counts
}

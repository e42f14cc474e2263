package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

// ErrNoData means there are no plays to derive a date range from.
var ErrNoData = errors.New("no listening data")

const dayFormat = "2006-01-02"

// FillDays expands sparse per-day sums into one row per calendar day from
// start to end inclusive, with zero minutes for absent days. This keeps
// "day with no data" distinct from "day with zero listening". Both the music
// and podcast calendars are filled over the track-domain range.
func FillDays(daily []store.DailyMinutes, start, end string) ([]DailyActivity, error) {
	if start == "" || end == "" {
		return nil, ErrNoData
	}
	first, err := time.Parse(dayFormat, start)
	if err != nil {
		return nil, fmt.Errorf("parsing start day %q: %w", start, err)
	}
	last, err := time.Parse(dayFormat, end)
	if err != nil {
		return nil, fmt.Errorf("parsing end day %q: %w", end, err)
	}
	if last.Before(first) {
		return nil, fmt.Errorf("end day %s before start day %s", end, start)
	}

	minutes := make(map[string]float64, len(daily))
	for _, d := range daily {
		minutes[d.Day] = d.Minutes
	}

	var filled []DailyActivity
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		filled = append(filled, DailyActivity{
			Date:    key,
			Minutes: minutes[key],
		})
	}
	return filled, nil
}

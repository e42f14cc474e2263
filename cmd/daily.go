package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var dailyDomain string
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Shows minutes listened per calendar day",
	Long: `Covers every day from the first to the last recorded track play, with zero
rows for days with no listening. The podcast calendar shares the music date
range.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := DailyAnalyzer{Domain: dailyDomain}.GetResults(viper.GetString("database"), time.Time{}, time.Time{})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(dailyCmd)

	dailyCmd.Flags().StringVar(&dailyDomain, "domain", "music", "'music' or 'podcast'")
}

type DailyAnalyzer struct {
	Domain string
}

func (d DailyAnalyzer) GetName() string {
	return "Daily listening"
}

func (d DailyAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	filled, err := filledDaily(st, d.Domain)
	if err != nil {
		return
	}

	var total float64
	result.results = [][]string{{"Date", "Minutes"}}
	for _, day := range filled {
		result.results = append(result.results, []string{day.Date, fmt.Sprintf("%.1f", day.Minutes)})
		total += day.Minutes
	}
	result.summary = fmt.Sprintf("%d days, %.1f minutes of %s\n", len(filled), total, d.Domain)

	return
}

// filledDaily returns the zero-filled daily series for a domain. Both
// domains are filled over the track-domain date range.
func filledDaily(st *store.Store, domain string) ([]analysis.DailyActivity, error) {
	minDay, maxDay, ok, err := st.TrackDayRange()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, analysis.ErrNoData
	}

	var daily []store.DailyMinutes
	switch domain {
	case "music":
		daily, err = st.DailyTrackMinutes()
	case "podcast":
		daily, err = st.DailyEpisodeMinutes()
	default:
		return nil, fmt.Errorf("unknown domain %q (want 'music' or 'podcast')", domain)
	}
	if err != nil {
		return nil, err
	}

	return analysis.FillDays(daily, minDay, maxDay)
}

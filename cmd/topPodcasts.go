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

var topPodcastsNumber int
var topPodcastsCmd = &cobra.Command{
	Use:   "top-podcasts",
	Short: "Gets the top podcast shows by hours played",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{topPodcastsNumber}
		out, err := TopPodcastsAnalyzer{}.SetConfig(config).GetResults(viper.GetString("database"), time.Time{}, time.Time{})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(topPodcastsCmd)

	topPodcastsCmd.Flags().IntVarP(&topPodcastsNumber, "number", "n", 10, "number of results to return")
}

type TopPodcastsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopPodcastsAnalyzer) SetConfig(config AnalyserConfig) TopPodcastsAnalyzer {
	t.Config = config
	return t
}

func (t TopPodcastsAnalyzer) GetName() string {
	return "Top podcasts"
}

func (t TopPodcastsAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	shows, err := st.ShowTotalHours()
	if err != nil {
		return
	}

	var totalHours float64
	for _, s := range shows {
		totalHours += s.Hours
	}

	top := analysis.TopN(shows, t.Config.NumToReturn, func(s store.ShowHours) float64 { return s.Hours })

	result.results = [][]string{{"Show", "Hours"}}
	for _, s := range top {
		result.results = append(result.results, []string{s.Show, formatHours(s.Hours)})
	}
	result.summary = fmt.Sprintf("Found %d shows and %.1f hours of podcasts\n", len(shows), totalHours)

	return
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

var replaysShow string
var replaysNumber int
var replaysMinMinutes int
var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Gets the most-replayed episodes of a show",
	Long: `Counts the distinct calendar days each episode was played for at least the
minimum duration, so a play paused and resumed on the same day counts once.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		analyzer := ReplaysAnalyzer{
			Show:        replaysShow,
			MinMs:       int64(replaysMinMinutes) * 60 * 1000,
			NumToReturn: replaysNumber,
		}
		out, err := analyzer.GetResults(viper.GetString("database"), time.Time{}, time.Time{})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(replaysCmd)

	replaysCmd.Flags().StringVar(&replaysShow, "show", "", "show name (exact match)")
	replaysCmd.MarkFlagRequired("show")
	replaysCmd.Flags().IntVarP(&replaysNumber, "number", "n", 5, "number of results to return")
	replaysCmd.Flags().IntVar(&replaysMinMinutes, "min-minutes", 15, "minimum play length to count")
}

type ReplaysAnalyzer struct {
	Show        string
	MinMs       int64
	NumToReturn int
}

func (r ReplaysAnalyzer) GetName() string {
	return "Most-replayed episodes"
}

func (r ReplaysAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	minMs := r.MinMs
	if minMs == 0 {
		minMs = analysis.DefaultReplayMinMs
	}
	listens, err := st.ShowListens(r.Show, minMs)
	if err != nil {
		return
	}

	counts := analysis.ReplayCounts(listens)
	top := analysis.TopN(counts, r.NumToReturn, func(e analysis.EpisodeReplays) float64 { return float64(e.Days) })

	result.results = [][]string{{"Episode", "Days"}}
	for _, e := range top {
		result.results = append(result.results, []string{e.Episode, strconv.Itoa(e.Days)})
	}
	result.summary = fmt.Sprintf("Found %d episodes of %q played %d+ minutes\n",
		len(counts), r.Show, minMs/60000)

	return
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var artistRanksNumber int
var artistRanksCmd = &cobra.Command{
	Use:   "artist-ranks",
	Short: "Shows how the top artists ranked in each year",
	Long: `Ranks are 1-based by hours played within each year, with ties broken by
artist name. The table covers the overall top artists.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{artistRanksNumber}
		out, err := ArtistRanksAnalyzer{}.SetConfig(config).GetResults(viper.GetString("database"), time.Time{}, time.Time{})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(artistRanksCmd)

	artistRanksCmd.Flags().IntVarP(&artistRanksNumber, "number", "n", 10, "number of artists to track")
}

type ArtistRanksAnalyzer struct {
	Config AnalyserConfig
}

func (a ArtistRanksAnalyzer) SetConfig(config AnalyserConfig) ArtistRanksAnalyzer {
	a.Config = config
	return a
}

func (a ArtistRanksAnalyzer) GetName() string {
	return "Artist ranks over time"
}

func (a ArtistRanksAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	overall, err := st.ArtistTotalHours("", "")
	if err != nil {
		return
	}
	top := analysis.TopN(overall, a.Config.NumToReturn, func(h store.ArtistHours) float64 { return h.Hours })
	var names []string
	for _, t := range top {
		names = append(names, t.Artist)
	}

	yearHours, err := st.ArtistHoursByYear()
	if err != nil {
		return
	}
	ranks := analysis.FilterRanksByArtists(analysis.RankByYear(yearHours), names)

	result.results = [][]string{{"Year", "Artist", "Hours", "Rank"}}
	for _, r := range ranks {
		result.results = append(result.results, []string{
			r.Year, r.Artist, formatHours(r.Hours), strconv.Itoa(r.Rank)})
	}
	result.summary = fmt.Sprintf("Tracking %d artists across the full history\n", len(names))

	return
}

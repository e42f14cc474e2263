/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
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

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from] [to (optional)]",
	Short: "Gets the top artists by hours played",
	Long:  `Optionally restricted to a date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopArtists(viper.GetString("database"), topArtistsNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

func printTopArtists(dbPath string, numToReturn int, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	config := AnalyserConfig{numToReturn}
	out, err := TopArtistsAnalyzer{}.SetConfig(config).GetResults(dbPath, start, end)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	artists, err := st.ArtistTotalHours(tsBound(start), tsBound(end))
	if err != nil {
		return
	}

	var totalHours float64
	for _, a := range artists {
		totalHours += a.Hours
	}

	top := analysis.TopN(artists, t.Config.NumToReturn, func(a store.ArtistHours) float64 { return a.Hours })

	result.results = [][]string{{"Artist", "Hours"}}
	for _, a := range top {
		result.results = append(result.results, []string{a.Artist, formatHours(a.Hours)})
	}

	result.summary = fmt.Sprintf("Found %d artists and %.1f hours of music%s\n",
		len(artists), totalHours, describeRange(start, end))

	return
}

func describeRange(start, end time.Time) string {
	if start.IsZero() && end.IsZero() {
		return ""
	}
	const dateFormat = "2006-01-02"
	return fmt.Sprintf(" from %s to %s", start.Format(dateFormat), end.Format(dateFormat))
}

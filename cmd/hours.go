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
)

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Shows listening hours per year, for music and podcasts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := HoursAnalyzer{}.GetResults(viper.GetString("database"), time.Time{}, time.Time{})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(hoursCmd)
}

type HoursAnalyzer struct{}

func (h HoursAnalyzer) GetName() string {
	return "Hours per year"
}

// GetResults covers the whole history; the date range is ignored.
func (h HoursAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (analysis Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	hours, err := st.HoursPerYear()
	if err != nil {
		return
	}

	var total float64
	analysis.results = [][]string{{"Year", "Category", "Hours"}}
	for _, row := range hours {
		analysis.results = append(analysis.results, []string{row.Year, row.Category, formatHours(row.Hours)})
		total += row.Hours
	}
	analysis.summary = fmt.Sprintf("%.1f hours of listening in total\n", total)

	return
}

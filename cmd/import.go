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
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Imports a Spotify streaming history export",
	Long: `Reads the export's JSON files and stores the partitioned plays in a local
SQLite database. A directory argument means its endsong_*.json or
Streaming_History*.json files, in name order.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := importHistory(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importHistory(dbPath string, args []string) error {
	paths, err := expandHistoryPaths(args)
	if err != nil {
		return err
	}

	st, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Importing %d files\n", len(paths))
	bar := progressbar.Default(int64(len(paths)))
	var events []history.RawEvent
	for _, path := range paths {
		fileEvents, err := history.ReadFiles([]string{path})
		if err != nil {
			return err
		}
		events = append(events, fileEvents...)
		bar.Add(1)
	}

	tracks, episodes, stats := history.Partition(events)

	if err := st.AddTrackPlays(tracks); err != nil {
		return fmt.Errorf("storing track plays: %w", err)
	}
	if err := st.AddEpisodePlays(episodes); err != nil {
		return fmt.Errorf("storing episode plays: %w", err)
	}

	fmt.Printf("Imported %d events: %d track plays, %d episode plays\n",
		len(events), stats.Tracks, stats.Episodes)
	fmt.Printf("Skipped %d records with neither a track nor an episode, %d with bad timestamps\n",
		stats.Dropped, stats.BadTimestamps)
	if stats.ZeroMsEpisodes > 0 {
		fmt.Printf("Kept %d zero-duration episode plays\n", stats.ZeroMsEpisodes)
	}

	return nil
}

// expandHistoryPaths resolves directory arguments to their export files, in
// name order.
func expandHistoryPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		var matches []string
		for _, pattern := range []string{"endsong_*.json", "Streaming_History*.json"} {
			found, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, fmt.Errorf("listing %s: %w", arg, err)
			}
			matches = append(matches, found...)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no history files found in %s", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

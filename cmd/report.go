package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/metadata"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var reportSkipEnrich bool
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates the full listening report",
	Long: `Analyzes the imported history and prints a YAML report: hours per year, top
artists and their ranks over time, top tracks (enriched when credentials are
configured), top podcasts, and the most-replayed episodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportSkipEnrich, "skip-enrich", false, "skip the track metadata lookup")
}

func runReport(out *os.File) error {
	report, err := generateReport()
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}

func generateReport() (*analysis.Report, error) {
	dbPath := viper.GetString("database")

	st, err := openStoreWithData(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	var lookup analysis.LookupFunc
	if id, secret := spotifyCredentials(); !reportSkipEnrich && id != "" && secret != "" {
		lookup = newLookup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), metadata.LookupTimeout)
	defer cancel()

	report, err := analysis.GenerateReport(ctx, st, lookup)
	if err != nil {
		return nil, fmt.Errorf("analyzing data: %w", err)
	}
	if lookup != nil && !report.Metadata.Enriched {
		fmt.Fprintln(os.Stderr, "Track metadata lookup failed, report is unenriched")
	}
	return report, nil
}

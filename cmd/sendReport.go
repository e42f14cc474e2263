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

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendReportConfig struct {
	DbPath         string
	From           string
	To             string
	SendgridApiKey string
	DryRun         bool
}

var sendReportDryRun bool
var sendReportCmd = &cobra.Command{
	Use:   "send-report <address>",
	Short: "Emails the listening report",
	Long:  `Sends the hours, top artists, top tracks, and top podcasts tables by email.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendReportConfig{
			DbPath:         viper.GetString("database"),
			From:           viper.GetString("from"),
			To:             args[0],
			SendgridApiKey: viper.GetString("sendgrid_api_key"),
			DryRun:         viper.GetBool("dryRun"),
		}
		err := sendReport(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendReportCmd)

	sendReportCmd.Flags().BoolVarP(&sendReportDryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", sendReportCmd.Flags().Lookup("dry_run"))
}

func sendReport(config SendReportConfig) error {
	analysers := []Analyser{
		HoursAnalyzer{},
		TopArtistsAnalyzer{Config: AnalyserConfig{10}},
		TopTracksAnalyzer{Config: AnalyserConfig{20}},
		TopPodcastsAnalyzer{Config: AnalyserConfig{10}},
	}

	subject, plain, html, err := generateReportEmail(config.DbPath, analysers)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, plain)
		return nil
	}

	if config.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("spotify-history-tools", config.From)
	to := mail.NewEmail("", config.To)
	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.SendgridApiKey)
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendReport: %w", err)
	}

	return nil
}

func generateReportEmail(dbPath string, analysers []Analyser) (subject string, plain string, html string, err error) {
	html = `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	for _, analyser := range analysers {
		analysis, err := analyser.GetResults(dbPath, time.Time{}, time.Time{})
		if err != nil {
			return "", "", "", fmt.Errorf("getting results for %s: %w", analyser.GetName(), err)
		}

		plain += fmt.Sprintf("%s:\n%s\n", analyser.GetName(), analysis)

		html += fmt.Sprintf("<div>\n<h2>%s</h2>\n", analyser.GetName())
		if len(analysis.results) <= 1 {
			html += "<div>No plays found.</div>\n"
		} else {
			html += "<table>\n<thead>\n<tr>\n"
			for _, header := range analysis.results[0] {
				html += fmt.Sprintf("<th>%s</th>", header)
			}
			html += "</tr>\n</thead>\n<tbody>\n"
			for _, row := range analysis.results[1:] {
				html += "<tr>\n"
				for _, column := range row {
					html += fmt.Sprintf("<td>%s</td>\n", column)
				}
				html += "</tr>\n"
			}
			html += "</tbody>\n</table>\n"
		}
		html += fmt.Sprintf("<div>%s</div>\n</div>\n", analysis.summary)
	}
	html += "</body>\n</html>\n"

	subject = fmt.Sprintf("Listening report for %s", time.Now().Format("2006-01-02"))
	return subject, plain, html, nil
}

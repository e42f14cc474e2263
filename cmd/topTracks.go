package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/metadata"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var topTracksNumber int
var topTracksEnrich bool
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks",
	Short: "Gets the top tracks by play count",
	Long: `With --enrich, joins popularity and the explicit flag from the Spotify Web
API onto the top tracks. Enrichment requires client_id and client_secret (or
SPOTIFY_ID and SPOTIFY_SECRET in the environment).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopTracks(viper.GetString("database"), topTracksNumber, topTracksEnrich)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", 50, "number of results to return")
	topTracksCmd.Flags().BoolVar(&topTracksEnrich, "enrich", false, "look up popularity and explicit flags")
}

func printTopTracks(dbPath string, numToReturn int, enrich bool) error {
	analyzer := TopTracksAnalyzer{Config: AnalyserConfig{numToReturn}}
	if enrich {
		analyzer.Lookup = newLookup()
	}
	out, err := analyzer.GetResults(dbPath, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// newLookup builds the metadata lookup from the configured credentials. The
// client is created lazily so a missing or rejected credential only fails the
// enrichment step.
func newLookup() analysis.LookupFunc {
	return func(ctx context.Context, ids []string) (map[string]metadata.TrackAttrs, error) {
		id, secret := spotifyCredentials()
		if id == "" || secret == "" {
			return nil, fmt.Errorf("client_id and client_secret are not set")
		}
		client, err := metadata.NewClient(ctx, id, secret)
		if err != nil {
			return nil, err
		}
		return client.Lookup(ctx, ids)
	}
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
	Lookup analysis.LookupFunc
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(dbPath string, start time.Time, end time.Time) (result Analysis, err error) {
	st, err := openStoreWithData(dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	counts, err := st.TrackPlayCounts()
	if err != nil {
		return
	}
	top := analysis.TopN(counts, t.Config.NumToReturn, func(c store.TrackPlayCount) float64 { return float64(c.Count) })

	var attrs map[string]metadata.TrackAttrs
	enrichNote := ""
	if t.Lookup != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metadata.LookupTimeout)
		defer cancel()

		var ids []string
		for _, c := range top {
			if c.TrackID != "" {
				ids = append(ids, c.TrackID)
			}
		}
		attrs, err = t.Lookup(ctx, ids)
		if err != nil {
			// Enrichment failure is not fatal; report unenriched rows.
			fmt.Fprintf(os.Stderr, "Skipping enrichment: %v\n", err)
			attrs = nil
			err = nil
			enrichNote = " (enrichment skipped)"
		}
	}

	result.results = [][]string{{"Track", "Artist", "Plays", "Popularity", "Explicit"}}
	for _, e := range analysis.Enrich(top, attrs) {
		popularity := ""
		explicit := ""
		if e.Popularity != nil {
			popularity = strconv.Itoa(*e.Popularity)
		}
		if e.Explicit != nil {
			explicit = strconv.FormatBool(*e.Explicit)
		}
		result.results = append(result.results, []string{
			e.Track, e.Artist, strconv.FormatInt(e.PlayCount, 10), popularity, explicit})
	}
	result.summary = fmt.Sprintf("Found %d distinct tracks%s\n", len(counts), enrichNote)

	return
}

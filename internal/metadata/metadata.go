// Package metadata looks up track attributes from the Spotify Web API.
package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// TrackAttrs are the attributes joined back onto local aggregates.
type TrackAttrs struct {
	Popularity int
	Explicit   bool
}

// The ids endpoint accepts at most 50 tracks per request.
const lookupBatchSize = 50

// LookupTimeout bounds a whole Lookup call, token exchange included.
const LookupTimeout = 30 * time.Second

type Client struct {
	api     *spotify.Client
	limiter *rate.Limiter
}

// NewClient exchanges client credentials for a token and returns a client.
func NewClient(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{
		api:     spotify.New(httpClient),
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
	}, nil
}

// Lookup fetches attributes for the given track ids, batching requests by
// 50. Ids the service doesn't know are simply absent from the result. Each
// request gets a single bounded retry; any error after that aborts the whole
// lookup so the caller can fall back to unenriched output.
func (c *Client) Lookup(ctx context.Context, ids []string) (map[string]TrackAttrs, error) {
	attrs := make(map[string]TrackAttrs, len(ids))

	for start := 0; start < len(ids); start += lookupBatchSize {
		end := start + lookupBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := make([]spotify.ID, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, spotify.ID(id))
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var tracks []*spotify.FullTrack
		err := retry.Do(
			func() error {
				var err error
				tracks, err = c.api.GetTracks(ctx, batch)
				return err
			},
			retry.Attempts(2),
			retry.Delay(1*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("fetching track metadata: %w", err)
		}

		for _, t := range tracks {
			if t == nil {
				continue
			}
			attrs[string(t.ID)] = TrackAttrs{
				Popularity: int(t.Popularity),
				Explicit:   t.Explicit,
			}
		}
	}

	return attrs, nil
}

// Package spotify looks tracks up through the Spotify Web API.
package spotify

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// ErrNoCredentials is returned by New when the client id or secret is empty.
var ErrNoCredentials = errors.New("spotify credentials not configured")

// SearchLimit is how many tracks a lookup considers.
const SearchLimit = 10

// Client wraps the Web API client.
type Client struct {
	api *spotify.Client
}

// New authenticates with the client credentials flow.
func New(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.WithHint(ErrNoCredentials, "set SPOTIFY_ID and SPOTIFY_SECRET")
	}
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return NewWithClient(spotify.New(config.Client(ctx))), nil
}

// NewWithClient wraps an existing API client.
func NewWithClient(api *spotify.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Name() string { return models.SourceSpotify }

// Search returns the search result for query re-encoded as JSON, in the
// shape matching.SpotifyAccessor reads.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	res, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(SearchLimit))
	if err != nil {
		return nil, errors.Wrap(err, "spotify search")
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(err, "encode spotify search result")
	}
	return payload, nil
}

// Track fetches a track by id.
func (c *Client) Track(ctx context.Context, id string) (*models.Bundle, error) {
	t, err := c.api.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, errors.Wrapf(err, "spotify track %s", id)
	}
	return transform(t), nil
}

// Lookup searches for target and fetches the best match.
func (c *Client) Lookup(ctx context.Context, target matching.Target) (*models.Bundle, matching.MatchResult, error) {
	payload, err := c.Search(ctx, query(target))
	if err != nil {
		return nil, matching.MatchResult{Platform: matching.PlatformSpotify}, err
	}
	match, err := matching.SelectFromPayload(target, payload, matching.SpotifyAccessor{})
	if err != nil || !match.Found {
		return nil, match, err
	}
	b, err := c.Track(ctx, match.ID)
	return b, match, err
}

func query(t matching.Target) string {
	q := "track:" + t.Title
	if len(t.Artists) > 0 && t.Artists[0] != "" {
		q += " artist:" + t.Artists[0]
	}
	return q
}

// transform converts a track. Spotify has no lyrics or credits.
func transform(t *spotify.FullTrack) *models.Bundle {
	b := &models.Bundle{
		SongID:     string(t.ID),
		Title:      t.Name,
		Album:      t.Album.Name,
		DurationMS: int64(t.Duration),
	}
	for _, a := range t.Artists {
		b.Artists = append(b.Artists, a.Name)
	}
	if len(t.Album.Images) > 0 {
		b.CoverURL = t.Album.Images[0].URL
	}
	return b
}

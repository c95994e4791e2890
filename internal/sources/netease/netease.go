// Package netease talks to a NeteaseCloudMusicApi proxy, the primary source.
package netease

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
	"github.com/lehigh-university-libraries/trackverify/internal/sources"
)

// DefaultHost is where the API proxy listens unless configured otherwise.
const DefaultHost = "http://localhost:3000"

// ErrInvalidURL is returned when no song id can be found in an input.
var ErrInvalidURL = errors.New("not a NetEase song URL or id")

var songIDPattern = regexp.MustCompile(`^\d+$`)

// ParseSongURL extracts the song id from music.163.com/song?id=,
// music.163.com/#/song?id= and bare numeric id forms.
func ParseSongURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if songIDPattern.MatchString(raw) {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidURL, "%q", raw)
	}
	if id := u.Query().Get("id"); songIDPattern.MatchString(id) {
		return id, nil
	}
	// Hash routed form: #/song?id=123
	if i := strings.Index(u.Fragment, "?"); i >= 0 {
		q, err := url.ParseQuery(u.Fragment[i+1:])
		if err == nil && songIDPattern.MatchString(q.Get("id")) {
			return q.Get("id"), nil
		}
	}
	return "", errors.WithHint(
		errors.Wrapf(ErrInvalidURL, "%q", raw),
		"expected something like https://music.163.com/song?id=1234567",
	)
}

// Client fetches song data from the proxy.
type Client struct {
	http *sources.Client
}

// New returns a client for host.
func New(host string, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{http: sources.NewClient(host, timeout, 200*time.Millisecond)}
}

// Name is the source label used in verdicts.
func (c *Client) Name() string { return models.SourceNetEase }

// SongDetail returns the raw /song/detail response.
func (c *Client) SongDetail(ctx context.Context, id string) ([]byte, error) {
	return c.http.Get(ctx, "/song/detail", url.Values{"ids": {id}})
}

// Lyric returns the raw /lyric response.
func (c *Client) Lyric(ctx context.Context, id string) ([]byte, error) {
	return c.http.Get(ctx, "/lyric", url.Values{"id": {id}})
}

// Search returns the raw /cloudsearch response for keywords.
func (c *Client) Search(ctx context.Context, keywords string, limit int) ([]byte, error) {
	return c.http.Get(ctx, "/cloudsearch", url.Values{
		"keywords": {keywords},
		"type":     {"1"},
		"limit":    {strconv.Itoa(limit)},
	})
}

// Track fetches detail and lyrics for id and builds the bundle. A failed
// lyric lookup leaves the lyrics empty.
func (c *Client) Track(ctx context.Context, id string) (*models.Bundle, error) {
	detail, err := c.SongDetail(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "netease song %s", id)
	}
	lyric, err := c.Lyric(ctx, id)
	if err != nil {
		slog.Warn("NetEase lyric lookup failed", "song_id", id, "err", err)
		lyric = nil
	}
	b, err := normalize.NetEase(detail, lyric)
	if err != nil {
		return nil, errors.Wrapf(err, "netease song %s", id)
	}
	if b.SongID == "" {
		b.SongID = id
	}
	return b, nil
}

// Lookup searches for target and fetches the best match.
func (c *Client) Lookup(ctx context.Context, target matching.Target) (*models.Bundle, matching.MatchResult, error) {
	payload, err := c.Search(ctx, sources.Query(target), 10)
	if err != nil {
		return nil, matching.MatchResult{Platform: matching.PlatformNetEase}, err
	}
	match, err := matching.SelectFromPayload(target, payload, matching.NetEaseAccessor{})
	if err != nil || !match.Found {
		return nil, match, err
	}
	b, err := c.Track(ctx, match.ID)
	return b, match, err
}

// Package qqmusic talks to a QQ Music API proxy, used as a verification
// source.
package qqmusic

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
	"github.com/lehigh-university-libraries/trackverify/internal/sources"
)

// DefaultHost is where the API proxy listens unless configured otherwise.
const DefaultHost = "http://localhost:3001"

// Client fetches song data from the proxy.
type Client struct {
	http *sources.Client
}

// New returns a client for host.
func New(host string, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{http: sources.NewClient(host, timeout, 300*time.Millisecond)}
}

func (c *Client) Name() string { return models.SourceQQMusic }

// Search returns the raw search response for keywords.
func (c *Client) Search(ctx context.Context, keywords string, pageSize int) ([]byte, error) {
	return c.http.Get(ctx, "/search", url.Values{
		"key":      {keywords},
		"pageSize": {strconv.Itoa(pageSize)},
		"pageNo":   {"1"},
	})
}

// Song returns the raw detail response for a song mid.
func (c *Client) Song(ctx context.Context, mid string) ([]byte, error) {
	return c.http.Get(ctx, "/song", url.Values{"songmid": {mid}})
}

// Lyric returns the lyric text for a song mid.
func (c *Client) Lyric(ctx context.Context, mid string) (string, error) {
	body, err := c.http.Get(ctx, "/getLyric", url.Values{"songmid": {mid}})
	if err != nil {
		return "", err
	}
	return normalize.QQLyricFromResponse(body), nil
}

// CoverURL asks the proxy for the album art URL, falling back to the
// y.gtimg.cn pattern when the proxy has none.
func (c *Client) CoverURL(ctx context.Context, albumMID string) string {
	if albumMID == "" {
		return ""
	}
	body, err := c.http.Get(ctx, "/getImageUrl", url.Values{"id": {albumMID}})
	if err != nil {
		slog.Debug("QQ Music cover lookup failed, using pattern URL", "album_mid", albumMID, "err", err)
		return normalize.QQCoverURL(albumMID)
	}
	if u := normalize.QQCoverFromResponse(body); u != "" {
		return u
	}
	return normalize.QQCoverURL(albumMID)
}

// Track fetches the song detail for mid and fills in lyrics and cover art
// from their own endpoints.
func (c *Client) Track(ctx context.Context, mid string) (*models.Bundle, error) {
	detail, err := c.Song(ctx, mid)
	if err != nil {
		return nil, errors.Wrapf(err, "qqmusic song %s", mid)
	}
	b, err := normalize.QQMusic(detail)
	if err != nil {
		return nil, errors.Wrapf(err, "qqmusic song %s", mid)
	}
	if b.SongID == "" {
		b.SongID = mid
	}

	if cover := c.CoverURL(ctx, normalize.QQAlbumMID(detail)); cover != "" {
		b.CoverURL = cover
	}

	if b.Lyrics.Original == "" {
		lyric, err := c.Lyric(ctx, mid)
		if err != nil {
			slog.Warn("QQ Music lyric lookup failed", "songmid", mid, "err", err)
		} else {
			b.Lyrics.Original = lyric
			b.Credits = normalize.CreditsFromLyrics(lyric)
		}
	}
	return b, nil
}

// Lookup searches for target and fetches the best match.
func (c *Client) Lookup(ctx context.Context, target matching.Target) (*models.Bundle, matching.MatchResult, error) {
	payload, err := c.Search(ctx, sources.Query(target), 10)
	if err != nil {
		return nil, matching.MatchResult{Platform: matching.PlatformQQMusic}, err
	}
	match, err := matching.SelectFromPayload(target, payload, matching.QQMusicAccessor{})
	if err != nil || !match.Found {
		return nil, match, err
	}
	b, err := c.Track(ctx, match.ID)
	return b, match, err
}

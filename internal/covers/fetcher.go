// Package covers downloads album art for the vision comparison.
package covers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/lehigh-university-libraries/trackverify/internal/providers"
	"github.com/lehigh-university-libraries/trackverify/internal/sources"
)

const (
	// MinImageBytes rejects CDN placeholders and error pages.
	MinImageBytes = 1000
	// MaxImageBytes caps a single download.
	MaxImageBytes = 10 << 20
)

// ErrPlaceholder is returned when the downloaded image is too small to be
// real album art.
var ErrPlaceholder = errors.New("image too small (likely placeholder)")

// Fetcher retrieves cover images from URLs or local paths
type Fetcher struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// Load returns the image at ref, which is either an http(s) URL or a path
// on disk.
func (f *Fetcher) Load(ctx context.Context, ref string) (providers.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.Fetch(ctx, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return providers.Image{}, errors.Wrap(err, "read cover file")
	}
	return image(data)
}

// Fetch downloads the image at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (providers.Image, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return providers.Image{}, errors.Wrap(err, "rate limiter")
	}
	slog.Debug("Fetching cover", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return providers.Image{}, errors.Wrap(err, "build cover request")
	}
	req.Header.Set("User-Agent", sources.UserAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return providers.Image{}, errors.Wrap(err, "fetch cover")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providers.Image{}, errors.Newf("cover URL returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return providers.Image{}, errors.Wrap(err, "read cover data")
	}
	return image(data)
}

func image(data []byte) (providers.Image, error) {
	if len(data) < MinImageBytes {
		return providers.Image{}, errors.Wrapf(ErrPlaceholder, "%d bytes", len(data))
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return providers.Image{}, errors.Newf("not an image: %s", mime)
	}
	return providers.Image{MIMEType: mime, Data: data}, nil
}

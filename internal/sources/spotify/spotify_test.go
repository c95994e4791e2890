package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
)

const trackJSON = `{"id":"6rqhFgbbKwnb9MLmUQDhG6","name":"Model","duration_ms":306000,
	"artists":[{"id":"a1","name":"Ronghao Li"}],
	"album":{"id":"al1","name":"Model","images":[{"url":"https://i.scdn.co/image/big","height":640,"width":640}]}}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search":
			assert.Equal(t, "track", r.URL.Query().Get("type"))
			assert.Equal(t, "track:Model artist:Ronghao Li", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"tracks":{"items":[` + trackJSON + `],"total":1}}`))
		case strings.HasPrefix(r.URL.Path, "/tracks/"):
			_, _ = w.Write([]byte(trackJSON))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLookup(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	c := NewWithClient(spotify.New(srv.Client(), spotify.WithBaseURL(srv.URL+"/")))
	b, match, err := c.Lookup(context.Background(), matching.Target{Title: "Model", Artists: []string{"Ronghao Li"}})
	require.NoError(t, err)
	assert.True(t, match.Found)
	assert.Equal(t, "6rqhFgbbKwnb9MLmUQDhG6", match.ID)
	assert.Equal(t, matching.PlatformSpotify, match.Platform)

	require.NotNil(t, b)
	assert.Equal(t, "Model", b.Title)
	assert.Equal(t, []string{"Ronghao Li"}, b.Artists)
	assert.Equal(t, int64(306000), b.DurationMS)
	assert.Equal(t, "https://i.scdn.co/image/big", b.CoverURL)
	assert.Empty(t, b.Lyrics.Original)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), "", "secret")
	assert.True(t, errors.Is(err, ErrNoCredentials))
}

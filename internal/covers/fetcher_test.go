package covers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePNG is a PNG signature padded past MinImageBytes.
func fakePNG() []byte {
	sig := []byte("\x89PNG\r\n\x1a\n")
	return append(sig, bytes.Repeat([]byte{0}, 2*MinImageBytes)...)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cover.png":
			_, _ = w.Write(fakePNG())
		case "/tiny.png":
			_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n"))
		case "/page":
			_, _ = w.Write(bytes.Repeat([]byte("<html>"), 500))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher()
	ctx := context.Background()

	img, err := f.Fetch(ctx, srv.URL+"/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)

	_, err = f.Fetch(ctx, srv.URL+"/tiny.png")
	assert.True(t, errors.Is(err, ErrPlaceholder))

	_, err = f.Fetch(ctx, srv.URL+"/page")
	assert.ErrorContains(t, err, "not an image")

	_, err = f.Fetch(ctx, srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, fakePNG(), 0o644))

	img, err := NewFetcher().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)

	_, err = NewFetcher().Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

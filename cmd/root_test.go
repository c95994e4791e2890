package cmd

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"verify", "reconcile", "match", "cover", "credits", "report", "serve"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := root.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestLoggerFlattensErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo)

	err := errors.Wrap(errors.New("connection refused"), "fetching lyric")
	logger.Warn("Lyric unavailable", "err", err, "song_id", "186016")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"), out)
	assert.Contains(t, out, `err="fetching lyric: connection refused"`)
	assert.Contains(t, out, "song_id=186016")
	assert.NotContains(t, out, ".go:")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, slog.LevelDebug).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

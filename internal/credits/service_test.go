package credits

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/trackverify/internal/providers"
)

type stubLoader struct{ err error }

func (l stubLoader) Load(context.Context, string) (providers.Image, error) {
	return providers.Image{MIMEType: "image/png", Data: []byte("png")}, l.err
}

type stubProvider struct{ reply string }

func (p stubProvider) ExtractText(context.Context, providers.Config) (string, error) {
	return p.reply, nil
}

func TestExtract(t *testing.T) {
	reply := "Here you go:\n```json\n{\"作词\": [\"周耀辉\"], \"作曲\": \"李荣浩\", \"Mixing Engineer\": [\"王某\"], \"封面\": [\"x\"]}\n```"
	s := NewService(stubProvider{reply: reply}, "gemini-2.5-flash", stubLoader{})

	got, err := s.Extract(context.Background(), "credits.png")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"lyricist": {"周耀辉"},
		"composer": {"李荣浩"},
		"mixer":    {"王某"},
	}, got)
}

func TestExtractErrors(t *testing.T) {
	_, err := NewService(stubProvider{reply: "{}"}, "m", stubLoader{err: errors.New("404")}).Extract(context.Background(), "x")
	assert.ErrorContains(t, err, "load credits image")

	_, err = NewService(stubProvider{reply: "no json here"}, "m", stubLoader{}).Extract(context.Background(), "x")
	assert.Error(t, err)
}

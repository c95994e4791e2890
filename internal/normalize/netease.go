package normalize

import (
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// ErrSongNotFound is returned when a detail payload lists no songs.
var ErrSongNotFound = errors.New("song not found")

// NetEase builds the primary bundle from a /song/detail response and an
// optional /lyric response. Credits are read from the lyric header lines.
func NetEase(detail, lyric []byte) (*models.Bundle, error) {
	if !gjson.ValidBytes(detail) {
		return nil, errors.New("netease song detail is not valid JSON")
	}
	song := gjson.GetBytes(detail, "songs.0")
	if !song.Exists() {
		return nil, errors.Wrap(ErrSongNotFound, "netease song detail")
	}

	b := &models.Bundle{
		SongID:     song.Get("id").String(),
		Title:      song.Get("name").String(),
		Album:      song.Get("al.name").String(),
		DurationMS: song.Get("dt").Int(),
		CoverURL:   song.Get("al.picUrl").String(),
	}
	for _, a := range song.Get("ar.#.name").Array() {
		if name := a.String(); name != "" {
			b.Artists = append(b.Artists, name)
		}
	}

	if len(lyric) > 0 {
		if !gjson.ValidBytes(lyric) {
			return nil, errors.New("netease lyric response is not valid JSON")
		}
		b.Lyrics = models.Lyrics{
			Original:   gjson.GetBytes(lyric, "lrc.lyric").String(),
			Translated: gjson.GetBytes(lyric, "tlyric.lyric").String(),
		}
		b.Credits = CreditsFromLyrics(b.Lyrics.Original)
	}
	return b, nil
}

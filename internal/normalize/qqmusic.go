package normalize

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// QQCoverURL is the album art URL QQ Music serves for an album mid.
func QQCoverURL(albumMID string) string {
	if albumMID == "" {
		return ""
	}
	return fmt.Sprintf("https://y.gtimg.cn/music/photo_new/T002R300x300M000%s.jpg", albumMID)
}

// unwrapBody removes an HTTP-node {"body": ...} envelope, where body may
// itself be a JSON string.
func unwrapBody(root gjson.Result) gjson.Result {
	if root.Type == gjson.String && gjson.Valid(root.Str) {
		root = gjson.Parse(root.Str)
	}
	if body := root.Get("body"); body.Exists() {
		if body.Type == gjson.String && gjson.Valid(body.Str) {
			return gjson.Parse(body.Str)
		}
		if body.IsObject() {
			return body
		}
	}
	return root
}

// QQMusic builds a bundle from a song detail response. It accepts the proxy
// shape ({"track_info": ...}), the upstream shape
// (response.songinfo.data.track_info) and the flat {"data": {...}} shape.
func QQMusic(payload []byte) (*models.Bundle, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.New("qqmusic song detail is not valid JSON")
	}
	root := unwrapBody(gjson.ParseBytes(payload))

	if track := first(root, "track_info", "response.songinfo.data.track_info", "songinfo.data.track_info"); track.IsObject() {
		title := track.Get("title").String()
		if title == "" {
			title = track.Get("name").String()
		}
		b := &models.Bundle{
			SongID:     firstString(track, "mid", "id"),
			Title:      title,
			Album:      track.Get("album.name").String(),
			DurationMS: track.Get("interval").Int() * 1000,
			CoverURL:   QQCoverURL(firstString(track, "album.mid", "album.pmid")),
			Lyrics:     models.Lyrics{Original: firstString(root, "lyric", "extras.lyric")},
		}
		b.Artists = names(track.Get("singer.#.name"))
		b.Credits = CreditsFromLyrics(b.Lyrics.Original)
		return b, nil
	}

	if data := root.Get("data"); data.IsObject() && data.Get("songname").Exists() {
		b := &models.Bundle{
			SongID:     firstString(data, "songmid", "mid"),
			Title:      data.Get("songname").String(),
			Album:      data.Get("albumname").String(),
			DurationMS: data.Get("interval").Int() * 1000,
			CoverURL:   QQCoverURL(data.Get("albummid").String()),
			Lyrics:     models.Lyrics{Original: data.Get("lyric").String()},
		}
		b.Artists = names(data.Get("singer.#.name"))
		b.Credits = CreditsFromLyrics(b.Lyrics.Original)
		return b, nil
	}

	return nil, errors.Wrap(ErrSongNotFound, "qqmusic song detail has no track info")
}

// QQCoverFromResponse reads the image URL from a cover endpoint response.
func QQCoverFromResponse(payload []byte) string {
	if !gjson.ValidBytes(payload) {
		return ""
	}
	root := unwrapBody(gjson.ParseBytes(payload))
	return strings.TrimSpace(firstString(root, "imageUrl", "response.data.imageUrl", "data.imageUrl"))
}

// QQLyricFromResponse reads lyric text from a lyric endpoint response.
func QQLyricFromResponse(payload []byte) string {
	if !gjson.ValidBytes(payload) {
		return ""
	}
	root := unwrapBody(gjson.ParseBytes(payload))
	return firstString(root, "lyric", "response.lyric", "data.lyric")
}

func first(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := r.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

func names(list gjson.Result) []string {
	var out []string
	for _, n := range list.Array() {
		if s := n.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// QQAlbumMID reads the album mid from a song detail response, in any of the
// shapes QQMusic accepts.
func QQAlbumMID(payload []byte) string {
	if !gjson.ValidBytes(payload) {
		return ""
	}
	root := unwrapBody(gjson.ParseBytes(payload))
	return firstString(root,
		"track_info.album.mid",
		"response.songinfo.data.track_info.album.mid",
		"songinfo.data.track_info.album.mid",
		"data.albummid",
	)
}

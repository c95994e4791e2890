package matching

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Accessor extracts candidates from one platform's search payload.
type Accessor interface {
	Platform() string
	Candidates(payload []byte) ([]Candidate, error)
}

// PayloadError reports a search payload that could not be read at all.
type PayloadError struct {
	Platform string
	Err      error
}

func (e *PayloadError) Error() string {
	return "unreadable " + e.Platform + " search payload: " + e.Err.Error()
}

func (e *PayloadError) Unwrap() error { return e.Err }

// AccessorFor returns the accessor registered for platform.
func AccessorFor(platform string) (Accessor, error) {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case PlatformSpotify:
		return SpotifyAccessor{}, nil
	case PlatformQQMusic, "qq":
		return QQMusicAccessor{}, nil
	case PlatformNetEase, "163":
		return NetEaseAccessor{}, nil
	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported platform: %q", platform),
			"supported platforms are spotify, qqmusic and netease",
		)
	}
}

// fieldPaths describes where a platform keeps each candidate attribute.
// Each attribute lists alternative paths tried in order.
type fieldPaths struct {
	list    []string
	id      []string
	title   []string
	artists []string
	album   []string
}

func (p fieldPaths) extract(platform string, payload []byte) ([]Candidate, error) {
	if !gjson.ValidBytes(payload) {
		return nil, &PayloadError{Platform: platform, Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(payload)
	// HTTP proxies sometimes hand the body over as a JSON string.
	if root.Type == gjson.String && gjson.Valid(root.Str) {
		root = gjson.Parse(root.Str)
	}

	list := first(root, p.list)
	if !list.IsArray() {
		return nil, nil
	}

	var out []Candidate
	list.ForEach(func(_, item gjson.Result) bool {
		c := Candidate{
			ID:    first(item, p.id).String(),
			Title: first(item, p.title).String(),
			Album: first(item, p.album).String(),
			Raw:   []byte(item.Raw),
		}
		for _, a := range first(item, p.artists).Array() {
			if name := a.String(); name != "" {
				c.Artists = append(c.Artists, name)
			}
		}
		out = append(out, c)
		return true
	})
	return out, nil
}

func first(r gjson.Result, paths []string) gjson.Result {
	for _, path := range paths {
		if v := r.Get(path); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

var (
	spotifyPaths = fieldPaths{
		list:    []string{"tracks.items"},
		id:      []string{"id"},
		title:   []string{"name"},
		artists: []string{"artists.#.name"},
		album:   []string{"album.name"},
	}
	qqMusicPaths = fieldPaths{
		list:    []string{"data.song.list", "song.list", "data.list"},
		id:      []string{"songmid", "mid", "id"},
		title:   []string{"songname", "name", "title"},
		artists: []string{"singer.#.name"},
		album:   []string{"albumname", "album.name"},
	}
	netEasePaths = fieldPaths{
		list:    []string{"result.songs", "songs"},
		id:      []string{"id"},
		title:   []string{"name"},
		artists: []string{"ar.#.name", "artists.#.name"},
		album:   []string{"al.name", "album.name"},
	}
)

// SpotifyAccessor reads Spotify Web API search responses.
type SpotifyAccessor struct{}

func (SpotifyAccessor) Platform() string { return PlatformSpotify }

func (a SpotifyAccessor) Candidates(payload []byte) ([]Candidate, error) {
	return spotifyPaths.extract(a.Platform(), payload)
}

// QQMusicAccessor reads QQ Music search responses, both the upstream shape
// and the proxy shape with the response.data envelope removed.
type QQMusicAccessor struct{}

func (QQMusicAccessor) Platform() string { return PlatformQQMusic }

func (a QQMusicAccessor) Candidates(payload []byte) ([]Candidate, error) {
	return qqMusicPaths.extract(a.Platform(), payload)
}

// NetEaseAccessor reads NetEase Cloud Music search responses.
type NetEaseAccessor struct{}

func (NetEaseAccessor) Platform() string { return PlatformNetEase }

func (a NetEaseAccessor) Candidates(payload []byte) ([]Candidate, error) {
	return netEasePaths.extract(a.Platform(), payload)
}

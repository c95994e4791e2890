package models

// Source names used in verdicts and reports.
const (
	SourceNetEase = "NetEase"
	SourceSpotify = "Spotify"
	SourceQQMusic = "QQ Music"
)

// Bundle is the canonical field set one source reports for a track.
type Bundle struct {
	SongID     string              `json:"song_id,omitempty" yaml:"song_id,omitempty"`
	Title      string              `json:"title" yaml:"title"`
	Artists    []string            `json:"artists" yaml:"artists"`
	Album      string              `json:"album" yaml:"album"`
	DurationMS int64               `json:"duration_ms" yaml:"duration_ms"`
	Lyrics     Lyrics              `json:"lyrics" yaml:"lyrics"`
	CoverURL   string              `json:"cover_url" yaml:"cover_url"`
	Credits    map[string][]string `json:"credits,omitempty" yaml:"credits,omitempty"`
}

// Lyrics holds the original and translated lyric text, possibly with
// [mm:ss.xx] timestamps.
type Lyrics struct {
	Original   string `json:"original" yaml:"original"`
	Translated string `json:"translated,omitempty" yaml:"translated,omitempty"`
}

// NamedBundle is a secondary source's bundle together with the name used
// for it in verdicts.
type NamedBundle struct {
	Name   string  `json:"name" yaml:"name"`
	Bundle *Bundle `json:"bundle" yaml:"bundle"`
}

// SourceSet is everything collected for one track. Secondary order decides
// which source's note wins when several qualify.
type SourceSet struct {
	Primary     *Bundle       `json:"primary" yaml:"primary"`
	Secondaries []NamedBundle `json:"secondaries" yaml:"secondaries"`
}

// PrimarySourceLabel names the primary source in report metadata.
const PrimarySourceLabel = "NetEase Cloud Music"

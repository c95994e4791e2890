// Package matching picks which search result from a verification source
// corresponds to the track being verified.
package matching

import "encoding/json"

// Platform names understood by AccessorFor.
const (
	PlatformSpotify = "spotify"
	PlatformQQMusic = "qqmusic"
	PlatformNetEase = "netease"
)

// Selection thresholds.
const (
	TitleWeight         = 0.7
	ArtistWeight        = 0.3
	ArtistHitThreshold  = 0.8
	AcceptanceThreshold = 0.6
)

// Target identifies the track being looked for.
type Target struct {
	Title   string   `json:"title" yaml:"title"`
	Artists []string `json:"artists" yaml:"artists"`
}

// Candidate is a single search result from a verification source.
type Candidate struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Artists []string        `json:"artists"`
	Album   string          `json:"album,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// MatchResult is the outcome of a selection. Found implies Score is at
// least AcceptanceThreshold and ID is non-empty.
type MatchResult struct {
	Platform string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	Found    bool     `json:"found" yaml:"found"`
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Score    float64  `json:"score" yaml:"score"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Artists  []string `json:"artists,omitempty" yaml:"artists,omitempty"`
	Album    string   `json:"album,omitempty" yaml:"album,omitempty"`
}

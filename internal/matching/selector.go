package matching

import (
	"github.com/lehigh-university-libraries/trackverify/internal/textmatch"
)

// Select scores every candidate against target and returns the best one if
// it clears AcceptanceThreshold. Ties keep the earliest candidate.
func Select(target Target, candidates []Candidate) MatchResult {
	title := textmatch.Normalize(target.Title)
	artists := make([]string, 0, len(target.Artists))
	for _, a := range target.Artists {
		if n := textmatch.Normalize(a); n != "" {
			artists = append(artists, n)
		}
	}

	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		s := score(title, artists, c)
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < AcceptanceThreshold {
		return MatchResult{}
	}
	c := candidates[best]
	return MatchResult{
		Found:   true,
		ID:      c.ID,
		Score:   bestScore,
		Title:   c.Title,
		Artists: c.Artists,
		Album:   c.Album,
	}
}

// SelectFromPayload extracts candidates from a raw search payload with
// accessor and selects among them. A payload that cannot be parsed returns
// a *PayloadError.
func SelectFromPayload(target Target, payload []byte, accessor Accessor) (MatchResult, error) {
	candidates, err := accessor.Candidates(payload)
	if err != nil {
		return MatchResult{Platform: accessor.Platform()}, err
	}
	res := Select(target, candidates)
	res.Platform = accessor.Platform()
	return res, nil
}

// score is the composite title/artist score. Candidates without an
// identifier cannot be reported as a match and score 0.
func score(title string, artists []string, c Candidate) float64 {
	if c.ID == "" {
		return 0
	}
	s := textmatch.Similarity(textmatch.Normalize(c.Title), title) * TitleWeight
	if artistHit(artists, c.Artists) {
		s += ArtistWeight
	}
	return s
}

func artistHit(target, candidate []string) bool {
	for _, t := range target {
		for _, c := range candidate {
			if textmatch.Similarity(t, textmatch.Normalize(c)) >= ArtistHitThreshold {
				return true
			}
		}
	}
	return false
}

// Package verification runs the whole pipeline for one track: fetch the
// primary record, find the track on each verification source, compare
// covers and reconcile.
package verification

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

// Primary fetches the record being verified.
type Primary interface {
	Track(ctx context.Context, id string) (*models.Bundle, error)
}

// Secondary finds the track on a verification source.
type Secondary interface {
	Name() string
	Lookup(ctx context.Context, target matching.Target) (*models.Bundle, matching.MatchResult, error)
}

// CoverComparer returns a vision model's raw reply comparing two covers.
type CoverComparer interface {
	Compare(ctx context.Context, primaryRef, referenceRef string) (string, error)
}

// CreditsReader reads credits from an image.
type CreditsReader interface {
	Extract(ctx context.Context, ref string) (map[string][]string, error)
}

// Options tune a single Verify call.
type Options struct {
	// CreditsImage is an optional URL or path of a credits image whose
	// contents are merged into the primary record.
	CreditsImage string
	// SkipCover disables the AI cover comparison.
	SkipCover bool
}

// Service wires the collaborators together. Covers and Credits may be nil.
type Service struct {
	Primary     Primary
	Secondaries []Secondary
	Covers      CoverComparer
	Credits     CreditsReader
	Reconciler  *reconcile.Reconciler
}

// Verify reconciles the primary record for songID against every secondary.
// Only a failure to fetch the primary record is returned as an error;
// secondary, cover and credits failures degrade the report instead.
func (s *Service) Verify(ctx context.Context, songID string, opts Options) (reconcile.Result, error) {
	slog.Info("Fetching primary track", "song_id", songID)
	primary, err := s.Primary.Track(ctx, songID)
	if err != nil {
		return reconcile.Result{Error: err.Error()}, errors.Wrap(err, "fetch primary track")
	}

	if opts.CreditsImage != "" && s.Credits != nil {
		found, err := s.Credits.Extract(ctx, opts.CreditsImage)
		if err != nil {
			slog.Warn("Credits OCR failed", "image", opts.CreditsImage, "err", err)
		} else {
			primary.Credits = mergeCredits(primary.Credits, found)
		}
	}

	target := matching.Target{Title: primary.Title, Artists: primary.Artists}
	bundles, matches := s.lookupAll(ctx, target)

	set := models.SourceSet{Primary: primary}
	for i, sec := range s.Secondaries {
		if bundles[i] != nil {
			set.Secondaries = append(set.Secondaries, models.NamedBundle{Name: sec.Name(), Bundle: bundles[i]})
		}
	}

	coverResponse := ""
	if !opts.SkipCover && s.Covers != nil {
		coverResponse = s.compareCovers(ctx, set)
	}

	r := s.Reconciler
	if r == nil {
		r = reconcile.New()
	}
	res := r.Reconcile(normalize.CanonicalSet(set), coverResponse)
	if res.Report != nil {
		res.Report.Metadata.Matches = matches
		slog.Info("Reconciled track",
			"song_id", songID,
			"confirmed", res.Report.Summary.Confirmed,
			"total", res.Report.Summary.TotalFields,
			"confidence", res.Report.Summary.ConfidenceScore,
		)
	}
	return res, nil
}

// lookupAll queries every secondary concurrently. A failing source yields a
// nil bundle and an unfound match.
func (s *Service) lookupAll(ctx context.Context, target matching.Target) ([]*models.Bundle, []matching.MatchResult) {
	bundles := make([]*models.Bundle, len(s.Secondaries))
	matches := make([]matching.MatchResult, len(s.Secondaries))

	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range s.Secondaries {
		g.Go(func() error {
			b, m, err := sec.Lookup(gctx, target)
			if err != nil {
				slog.Warn("Verification source lookup failed", "source", sec.Name(), "err", err)
				b = nil
				m.Found = false
			} else if !m.Found {
				slog.Info("No match on verification source", "source", sec.Name(), "title", target.Title)
			}
			bundles[i], matches[i] = b, m
			return nil
		})
	}
	_ = g.Wait()
	return bundles, matches
}

func (s *Service) compareCovers(ctx context.Context, set models.SourceSet) string {
	name, ref := reconcile.CoverReference(set)
	if set.Primary.CoverURL == "" || ref == "" {
		return ""
	}
	raw, err := s.Covers.Compare(ctx, set.Primary.CoverURL, ref)
	if err != nil {
		slog.Warn("Cover comparison failed", "reference", name, "err", err)
		return ""
	}
	return raw
}

func mergeCredits(dst, src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return dst
	}
	out := make(map[string][]string, len(dst)+len(src))
	for role, names := range dst {
		out[role] = append(out[role], names...)
	}
	for role, names := range src {
		out[role] = append(out[role], names...)
	}
	return normalize.Credits(out)
}

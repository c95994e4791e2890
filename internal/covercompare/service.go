// Package covercompare asks a vision model whether two album covers show
// the same artwork.
package covercompare

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
	"github.com/lehigh-university-libraries/trackverify/internal/providers"
)

// ImageLoader resolves a cover URL or path into image bytes.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (providers.Image, error)
}

// Service compares covers with a vision provider.
type Service struct {
	Provider providers.Provider
	Model    string
	Images   ImageLoader
}

func NewService(p providers.Provider, model string, images ImageLoader) *Service {
	return &Service{Provider: p, Model: model, Images: images}
}

// Compare downloads both covers and returns the model's raw reply, which
// coververdict.Parse understands.
func (s *Service) Compare(ctx context.Context, primaryRef, referenceRef string) (string, error) {
	if primaryRef == "" || referenceRef == "" {
		return "", errors.New("both cover references are required")
	}

	primary, err := s.Images.Load(ctx, primaryRef)
	if err != nil {
		return "", errors.Wrap(err, "load primary cover")
	}
	reference, err := s.Images.Load(ctx, referenceRef)
	if err != nil {
		return "", errors.Wrap(err, "load reference cover")
	}

	slog.Info("Comparing covers", "model", s.Model, "primary", primaryRef, "reference", referenceRef)
	raw, err := s.Provider.ExtractText(ctx, providers.Config{
		Model:       s.Model,
		Temperature: 0.1,
		Prompt:      buildPrompt(),
		Images:      []providers.Image{primary, reference},
		JSON:        true,
	})
	if err != nil {
		return "", errors.Wrap(err, "vision provider")
	}
	return raw, nil
}

// Verdict is Compare followed by coververdict.Parse. Any failure becomes a
// not-found verdict carrying the error.
func (s *Service) Verdict(ctx context.Context, primaryRef, referenceRef string) (coververdict.Verdict, string) {
	raw, err := s.Compare(ctx, primaryRef, referenceRef)
	if err != nil {
		slog.Warn("Cover comparison failed", "err", err)
		return coververdict.NotFound(err.Error()), ""
	}
	return coververdict.Parse(raw), raw
}

func buildPrompt() string {
	return `You are checking music metadata. You are given two album cover images for what should be the same release: the first from the primary catalog, the second from a verification source.

Decide whether the two images show the same cover artwork. Ignore differences in resolution, compression, cropping by a few pixels, and small watermarks or platform badges. Treat different artwork, different text, a different edition (deluxe, remaster, single vs album) or a different color treatment as differences.

Reply with ONLY a JSON object, no prose and no code fences:
{"is_same": true|false, "confidence": <number between 0 and 1>, "differences": ["<short description>", ...], "notes": "<one sentence>"}`
}

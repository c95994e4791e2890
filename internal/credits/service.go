// Package credits reads production credits from an image (a credits card,
// back cover or liner notes) with a vision model.
package credits

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/lehigh-university-libraries/trackverify/internal/llmjson"
	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
	"github.com/lehigh-university-libraries/trackverify/internal/providers"
)

// ImageLoader resolves an image URL or path into image bytes.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (providers.Image, error)
}

// Service handles OCR extraction of credits from images
type Service struct {
	Provider providers.Provider
	Model    string
	Images   ImageLoader
}

// NewService creates a new credits OCR service
func NewService(p providers.Provider, model string, images ImageLoader) *Service {
	return &Service{Provider: p, Model: model, Images: images}
}

// Extract reads the image at ref and returns credits keyed by canonical
// role. Labels that do not map to a known role are dropped.
func (s *Service) Extract(ctx context.Context, ref string) (map[string][]string, error) {
	img, err := s.Images.Load(ctx, ref)
	if err != nil {
		return nil, errors.Wrap(err, "load credits image")
	}
	return s.ExtractImage(ctx, img)
}

// ExtractImage is Extract for an image already in memory.
func (s *Service) ExtractImage(ctx context.Context, img providers.Image) (map[string][]string, error) {
	raw, err := s.Provider.ExtractText(ctx, providers.Config{
		Model:       s.Model,
		Temperature: 0.0,
		Prompt:      buildOCRPrompt(),
		Images:      []providers.Image{img},
		JSON:        true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "vision provider")
	}

	out, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	slog.Info("Extracted credits", "model", s.Model, "roles", len(out))
	return out, nil
}

// Parse pulls the JSON object out of a model reply and normalizes its
// roles.
func Parse(raw string) (map[string][]string, error) {
	obj, err := llmjson.ExtractObject(raw)
	if err != nil {
		return nil, errors.Wrap(err, "credits reply")
	}
	return normalize.CreditsFromJSON(obj), nil
}

func buildOCRPrompt() string {
	return `You are performing OCR on an image of music production credits.

Extract every credited person and the role they are credited for. Roles are usually labeled in Chinese or English, for example 作词 / Lyricist, 作曲 / Composer, 编曲 / Arranger, 制作人 / Producer, 混音 / Mixing Engineer, 母带 / Mastering Engineer.

INSTRUCTIONS:
1. Keep names exactly as printed.
2. Use the role label as printed as the key.
3. When several people share a role, list each of them.
4. Do not guess names that are not visible.

OUTPUT FORMAT:
Provide ONLY a JSON object mapping role label to a list of names, for example:
{"作词": ["周耀辉"], "作曲": ["李荣浩"], "编曲": ["李荣浩"]}`
}

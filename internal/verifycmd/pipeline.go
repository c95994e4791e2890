// Package verifycmd holds the cobra commands for verifying and reconciling
// track metadata.
package verifycmd

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/trackverify/internal/config"
	"github.com/lehigh-university-libraries/trackverify/internal/covercompare"
	"github.com/lehigh-university-libraries/trackverify/internal/covers"
	"github.com/lehigh-university-libraries/trackverify/internal/credits"
	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/netease"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/qqmusic"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/spotify"
	"github.com/lehigh-university-libraries/trackverify/internal/verification"
)

// Pipeline is everything a verify run needs. Credits is nil when no vision
// provider is usable.
type Pipeline struct {
	Verifier *verification.Service
	Credits  *credits.Service
}

// NewPipeline builds the sources and vision services from cfg. Secondary
// order is QQ Music then Spotify, so QQ Music is the cover reference when
// both have art.
func NewPipeline(ctx context.Context, cfg config.Config) *Pipeline {
	svc := &verification.Service{
		Primary:    netease.New(cfg.NetEaseHost, cfg.HTTPTimeout),
		Reconciler: reconcile.New(),
	}

	svc.Secondaries = append(svc.Secondaries, qqmusic.New(cfg.QQMusicHost, cfg.HTTPTimeout))
	if cfg.SpotifyEnabled() {
		sp, err := spotify.New(ctx, cfg.SpotifyID, cfg.SpotifySecret)
		if err != nil {
			slog.Warn("Spotify disabled", "err", err)
		} else {
			svc.Secondaries = append(svc.Secondaries, sp)
		}
	} else {
		slog.Info("Spotify disabled: SPOTIFY_ID and SPOTIFY_SECRET not set")
	}

	p := &Pipeline{Verifier: svc}
	if err := cfg.Validate(); err != nil {
		slog.Warn("Vision provider unavailable, skipping cover comparison and credits OCR", "err", err)
		return p
	}
	provider, err := cfg.Provider()
	if err != nil {
		slog.Warn("Vision provider unavailable", "err", err)
		return p
	}

	fetcher := covers.NewFetcher()
	svc.Covers = covercompare.NewService(provider, cfg.Model(), fetcher)
	p.Credits = credits.NewService(provider, cfg.Model(), fetcher)
	svc.Credits = p.Credits
	return p
}

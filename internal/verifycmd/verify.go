package verifycmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/config"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/netease"
	"github.com/lehigh-university-libraries/trackverify/internal/verification"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var out outputFlags
	var creditsImage string
	var skipCover bool
	var provider string
	var model string

	cmd := &cobra.Command{
		Use:   "verify <netease-url|song-id>",
		Short: "Verify a NetEase Cloud Music track against QQ Music and Spotify",
		Long: `Fetches the track from NetEase Cloud Music, finds the same track on every
configured verification source, compares the album covers with a vision
model and reconciles every field into a report.

Sources are reached through self-hosted API proxies (NETEASE_API_HOST,
QQ_MUSIC_API_HOST). Spotify is used when SPOTIFY_ID and SPOTIFY_SECRET are set.`,
		Example: `  # Verify by URL
  trackverify verify "https://music.163.com/#/song?id=186016"

  # Verify by id, reading credits from a liner-notes photo, as JSON
  trackverify verify 186016 --credits-image ./credits.jpg --format json

  # Use a local model for the cover comparison
  trackverify verify 186016 --provider ollama --model llava`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			songID, err := netease.ParseSongURL(args[0])
			if err != nil {
				return err
			}

			cfg := config.Load().Override(provider, model)

			p := NewPipeline(cmd.Context(), cfg)
			res, err := p.Verifier.Verify(cmd.Context(), songID, verification.Options{
				CreditsImage: creditsImage,
				SkipCover:    skipCover,
			})
			if err != nil {
				return errors.WithHint(err, "is the NetEase API proxy running at "+cfg.NetEaseHost+"?")
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd, "text")
	cmd.Flags().StringVar(&creditsImage, "credits-image", "", "URL or path of a credits image to OCR into the primary record")
	cmd.Flags().BoolVar(&skipCover, "skip-cover", false, "Skip the AI cover comparison")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider (gemini, openai, ollama); defaults to VISION_PROVIDER")
	cmd.Flags().StringVar(&model, "model", "", "Vision model (defaults to the provider's configured model)")

	return cmd
}

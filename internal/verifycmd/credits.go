package verifycmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/config"
	"github.com/lehigh-university-libraries/trackverify/internal/covers"
	"github.com/lehigh-university-libraries/trackverify/internal/credits"
)

// NewCreditsCmd creates the credits command
func NewCreditsCmd() *cobra.Command {
	var provider string
	var model string

	cmd := &cobra.Command{
		Use:   "credits <image-url|path>",
		Short: "Read production credits from an image with a vision model",
		Example: `  trackverify credits ./liner_notes.jpg
  trackverify credits https://example.com/credits.png --provider openai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load().Override(provider, model)
			if err := cfg.Validate(); err != nil {
				return err
			}
			p, err := cfg.Provider()
			if err != nil {
				return err
			}
			found, err := credits.NewService(p, cfg.Model(), covers.NewFetcher()).Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, found)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Vision model")

	return cmd
}

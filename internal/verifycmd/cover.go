package verifycmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/config"
	"github.com/lehigh-university-libraries/trackverify/internal/covercompare"
	"github.com/lehigh-university-libraries/trackverify/internal/covers"
	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
)

// NewCoverCmd creates the cover command
func NewCoverCmd() *cobra.Command {
	var responsePath string
	var primary string
	var secondary string
	var provider string
	var model string

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Compare two album covers, or parse a saved comparison reply",
		Long: `With --response, parses a vision model reply (raw JSON, JSON in prose or a
code fence, a Gemini response envelope, or free text) into a cover verdict.

With --primary and --secondary, downloads both covers (URLs or local paths),
asks the configured vision provider to compare them and prints the verdict.`,
		Example: `  trackverify cover --response gemini_reply.json
  trackverify cover --primary https://p1.music.126.net/a.jpg --secondary ./qq_cover.jpg --provider ollama`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if responsePath != "" {
				raw, err := readOptional(responsePath)
				if err != nil {
					return err
				}
				return printJSON(cmd, coververdict.Parse(raw))
			}
			if primary == "" || secondary == "" {
				return errors.WithHint(errors.New("nothing to compare"), "pass --response, or both --primary and --secondary")
			}

			cfg := config.Load().Override(provider, model)
			if err := cfg.Validate(); err != nil {
				return err
			}
			p, err := cfg.Provider()
			if err != nil {
				return err
			}
			svc := covercompare.NewService(p, cfg.Model(), covers.NewFetcher())
			raw, err := svc.Compare(cmd.Context(), primary, secondary)
			if err != nil {
				return err
			}
			return printJSON(cmd, coververdict.Parse(raw))
		},
	}

	cmd.Flags().StringVar(&responsePath, "response", "", "File holding a vision model reply to parse")
	cmd.Flags().StringVar(&primary, "primary", "", "Primary cover URL or path")
	cmd.Flags().StringVar(&secondary, "secondary", "", "Reference cover URL or path")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Vision model")

	return cmd
}

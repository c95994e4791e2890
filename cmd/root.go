package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/verifycmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "trackverify",
		Short: "Cross-check music track metadata between streaming platforms",
		Long: `Trackverify checks the metadata of a NetEase Cloud Music track against other
platforms (QQ Music, Spotify) and reports, field by field, what is confirmed,
what is questionable and what could not be found.

Titles, artists, album, duration, lyrics, cover art and credits are compared.
Cover art is compared with a vision model (Gemini, OpenAI or Ollama).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(newLogger(os.Stderr, level))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(verifycmd.NewVerifyCmd())
	cmd.AddCommand(verifycmd.NewReconcileCmd())
	cmd.AddCommand(verifycmd.NewMatchCmd())
	cmd.AddCommand(verifycmd.NewCoverCmd())
	cmd.AddCommand(verifycmd.NewCreditsCmd())
	cmd.AddCommand(verifycmd.NewReportCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: flattenErrors,
	}))
}

// flattenErrors logs errors by message only. The text handler would
// otherwise format them with %+v, which prints full stack traces.
func flattenErrors(_ []string, a slog.Attr) slog.Attr {
	if err, ok := a.Value.Any().(error); ok && a.Value.Kind() == slog.KindAny {
		return slog.String(a.Key, err.Error())
	}
	return a
}

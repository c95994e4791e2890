package verifycmd

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
)

// NewMatchCmd creates the match command
func NewMatchCmd() *cobra.Command {
	var resultsPath string
	var platform string
	var target matching.Target

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pick the matching track out of a saved search response",
		Example: `  trackverify match --results qq_search.json --platform qqmusic --title 不将就 --artist 李荣浩
  trackverify match --results spotify.json --platform spotify --title Model --artist "Ronghao Li"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			accessor, err := matching.AccessorFor(platform)
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(resultsPath)
			if err != nil {
				return errors.Wrap(err, "read search results")
			}
			res, err := matching.SelectFromPayload(target, payload, accessor)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Raw search response file (required)")
	cmd.Flags().StringVar(&platform, "platform", "", "spotify, qqmusic or netease (required)")
	cmd.Flags().StringVar(&target.Title, "title", "", "Title to look for (required)")
	cmd.Flags().StringSliceVar(&target.Artists, "artist", nil, "Artist name; repeat for several")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

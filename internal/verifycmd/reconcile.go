package verifycmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

// NewReconcileCmd creates the offline reconcile command
func NewReconcileCmd() *cobra.Command {
	var out outputFlags
	var bundlePath string
	var coverPath string
	var canonical bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a saved set of source bundles without network access",
		Long: `Reads a primary bundle and its verification bundles from a JSON or YAML file
and reconciles them field by field. An AI cover comparison reply saved from an
earlier run can be supplied with --cover-response.`,
		Example: `  trackverify reconcile --bundle sources.json
  trackverify reconcile --bundle sources.yaml --cover-response gemini.json --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			set, err := loadSourceSet(bundlePath)
			if err != nil {
				return err
			}
			coverResponse, err := readOptional(coverPath)
			if err != nil {
				return err
			}
			if canonical {
				set = normalize.CanonicalSet(set)
			}

			res := reconcile.New().Reconcile(set, coverResponse)
			if !res.Success {
				return errors.Newf("reconciliation failed: %s", res.Error)
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd, "text")
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "JSON or YAML file with primary and secondaries (required)")
	cmd.Flags().StringVar(&coverPath, "cover-response", "", "File holding the vision model's cover comparison reply")
	cmd.Flags().BoolVar(&canonical, "normalize", false, "Normalize titles, artists and credit roles before comparing")
	_ = cmd.MarkFlagRequired("bundle")

	return cmd
}

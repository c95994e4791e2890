package verifycmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/results"
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var out outputFlags
	var input string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved verification report in another format",
		Long: `Reads a report saved with --format json or yaml and renders it as text,
json, yaml, csv or parquet. A parquet file can be read back as text, csv or json.`,
		Example: `  trackverify report --input report.json
  trackverify report --input report.json --format parquet --output report.parquet
  trackverify report --input report.parquet --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(input), ".parquet") {
				rows, err := results.ReadParquetFile(input)
				if err != nil {
					return err
				}
				return out.writeRows(cmd, rows)
			}
			res, err := results.Load(input)
			if err != nil {
				return err
			}
			return out.write(cmd, res)
		},
	}

	out.register(cmd, "text")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Report file (.json, .yaml or .parquet) (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

package verifycmd

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
	"github.com/lehigh-university-libraries/trackverify/internal/results"
)

type outputFlags struct {
	format string
	path   string
}

func (o *outputFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", defaultFormat, "Output format ("+strings.Join(results.Formats, ", ")+")")
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "Write to this file instead of stdout")
}

func (o *outputFlags) validate() error {
	if !slices.Contains(results.Formats, o.format) {
		return errors.WithHintf(errors.Newf("unsupported format: %s", o.format), "use one of %s", strings.Join(results.Formats, ", "))
	}
	if o.format == results.FormatParquet && o.path == "" {
		return errors.WithHint(errors.New("parquet output needs a file"), "pass --output report.parquet")
	}
	return nil
}

func (o *outputFlags) write(cmd *cobra.Command, res reconcile.Result) error {
	return o.to(cmd, func(w io.Writer) error { return results.Write(w, o.format, res) })
}

func (o *outputFlags) writeRows(cmd *cobra.Command, rows []results.Row) error {
	return o.to(cmd, func(w io.Writer) error { return results.WriteRows(w, o.format, rows) })
}

func (o *outputFlags) to(cmd *cobra.Command, fn func(io.Writer) error) error {
	if o.path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(o.path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output file")
}

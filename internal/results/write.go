package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatParquet}

// valueWidth caps long values such as lyrics in the text table.
const valueWidth = 48

// Write renders res to w in format.
func Write(w io.Writer, format string, res reconcile.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(res), "encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	}

	if !res.Success || res.Report == nil {
		return errors.Newf("reconciliation failed: %s", res.Error)
	}
	switch format {
	case FormatText, "":
		return writeText(w, res.Report)
	case FormatCSV:
		return writeCSV(w, Rows(res.Report))
	case FormatParquet:
		return WriteParquet(w, Rows(res.Report))
	default:
		return errors.WithHintf(errors.Newf("unsupported format: %s", format), "use one of %s", strings.Join(Formats, ", "))
	}
}

func writeText(w io.Writer, r *reconcile.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Song %s (%s)\n", r.Metadata.SongID, r.Metadata.Source)
	if len(r.Metadata.Sources) > 0 {
		fmt.Fprintf(&b, "Verified against: %s\n", strings.Join(r.Metadata.Sources, ", "))
	} else {
		fmt.Fprintln(&b, "Verified against: (no source returned data)")
	}
	for _, m := range r.Metadata.Matches {
		if m.Found {
			fmt.Fprintf(&b, "  %s match: %s (%s) score %.2f\n", m.Platform, m.Title, m.ID, m.Score)
		} else {
			fmt.Fprintf(&b, "  %s: no match\n", m.Platform)
		}
	}
	b.WriteString("\n")

	b.WriteString(rowsTable(Rows(r)))
	b.WriteString("\n\n")

	s := r.Summary
	fmt.Fprintf(&b, "Confirmed %d / Questionable %d / Not found %d of %d fields, confidence %.1f%%\n",
		s.Confirmed, s.Questionable, s.NotFound, s.TotalFields, s.ConfidenceScore*100)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRows renders already flattened rows, such as those read back from
// parquet, as text, csv or json.
func WriteRows(w io.Writer, format string, rows []Row) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, rowsTable(rows)+"\n")
		return err
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(rows), "encode json")
	case FormatParquet:
		return WriteParquet(w, rows)
	default:
		return errors.Newf("format %s is not available for flattened rows", format)
	}
}

func rowsTable(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		sim := ""
		if row.Similarity != nil {
			sim = fmt.Sprintf("%.0f%%", *row.Similarity*100)
		}
		cells = append(cells, []string{row.Field, row.Status, truncate(row.Value, valueWidth), row.ConfirmedBy, sim, row.Note})
	}
	return renderTable(
		[]string{"Field", "Status", "Value", "Confirmed by", "Similarity", "Note"},
		cells,
		[]text.Align{text.AlignLeft, text.AlignLeft, text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignLeft},
	)
}

func renderTable(headers []string, rows [][]string, aligns []text.Align) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"song_id", "field", "status", "value", "confirmed_by", "similarity", "note"}); err != nil {
		return err
	}
	for _, r := range rows {
		sim := ""
		if r.Similarity != nil {
			sim = strconv.FormatFloat(*r.Similarity, 'f', 4, 64)
		}
		if err := cw.Write([]string{r.SongID, r.Field, r.Status, r.Value, r.ConfirmedBy, sim, r.Note}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func truncate(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes-3]) + "..."
}

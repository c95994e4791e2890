// Package results renders reconciliation reports for people and for other
// tools, and reads them back.
package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

// Row is one verdict flattened for tabular formats.
type Row struct {
	SongID      string   `parquet:"song_id" json:"song_id"`
	Field       string   `parquet:"field" json:"field"`
	Status      string   `parquet:"status" json:"status"`
	Value       string   `parquet:"value" json:"value"`
	ConfirmedBy string   `parquet:"confirmed_by" json:"confirmed_by"`
	Similarity  *float64 `parquet:"similarity,optional" json:"similarity,omitempty"`
	Note        string   `parquet:"note" json:"note"`
}

// Rows flattens every verdict in the report, in field path order.
func Rows(r *reconcile.Report) []Row {
	if r == nil {
		return nil
	}
	return reconcile.Fold(r.Fields, []Row(nil), func(rows []Row, path string, v *reconcile.Verdict) []Row {
		return append(rows, Row{
			SongID:      r.Metadata.SongID,
			Field:       path,
			Status:      string(v.Status),
			Value:       FormatValue(v),
			ConfirmedBy: strings.Join(v.ConfirmedBy, ", "),
			Similarity:  v.Similarity,
			Note:        v.Note,
		})
	})
}

// FormatValue renders a verdict's value as a single string. Values that
// went through JSON arrive as []any and float64.
func FormatValue(v *reconcile.Verdict) string {
	if v.ValueFormatted != "" {
		return v.ValueFormatted
	}
	return formatAny(v.Value)
}

func formatAny(x any) string {
	switch x := x.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, formatAny(e))
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any:
		if s, ok := x["original"].(string); ok {
			return s
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}

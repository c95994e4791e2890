package results

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

func sampleResult() reconcile.Result {
	set := models.SourceSet{
		Primary: &models.Bundle{
			SongID:     "186016",
			Title:      "不将就",
			Artists:    []string{"李荣浩"},
			Album:      "耳朵",
			DurationMS: 314000,
			CoverURL:   "https://p1.music.126.net/cover.jpg",
		},
		Secondaries: []models.NamedBundle{{
			Name: models.SourceQQMusic,
			Bundle: &models.Bundle{
				Title:      "不将就",
				Artists:    []string{"李荣浩"},
				Album:      "耳朵",
				DurationMS: 330000,
				CoverURL:   "https://y.gtimg.cn/cover.jpg",
			},
		}},
	}
	res := reconcile.New().Reconcile(set, `{"is_same": true, "confidence": 0.9}`)
	res.Report.Metadata.Matches = []matching.MatchResult{{Platform: "qqmusic", Found: true, ID: "003abc", Score: 1, Title: "不将就"}}
	return res
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult().Report)
	byField := map[string]Row{}
	for _, r := range rows {
		byField[r.Field] = r
	}

	require.Contains(t, byField, "duration")
	assert.Equal(t, "5:14", byField["duration"].Value)
	assert.Equal(t, "questionable", byField["duration"].Status)
	assert.Equal(t, "李荣浩", byField["artists"].Value)
	assert.Equal(t, models.SourceQQMusic, byField["title"].ConfirmedBy)
	assert.Equal(t, "186016", byField["title"].SongID)
	assert.Nil(t, Rows(nil))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "Song 186016 (NetEase Cloud Music)")
	assert.Contains(t, out, "qqmusic match: 不将就 (003abc)")
	assert.Contains(t, out, "duration differs")
	assert.Contains(t, out, "confidence")
}

func TestWriteCSV(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, res))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "field", records[0][1])
	assert.Len(t, records, res.Report.Summary.TotalFields+1)
}

func TestWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, Write(&buf, "xml", sampleResult()), "unsupported format")
	assert.ErrorContains(t, Write(&buf, FormatText, reconcile.Result{Error: "primary bundle is missing"}), "primary bundle is missing")

	// A failed result can still be serialized.
	require.NoError(t, Write(&buf, FormatJSON, reconcile.Result{Error: "boom"}))
	assert.Contains(t, buf.String(), `"boom"`)
}

func TestLoadRoundTrip(t *testing.T) {
	res := sampleResult()
	dir := t.TempDir()

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format, res))
			path := filepath.Join(dir, "report."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			got, err := Load(path)
			require.NoError(t, err)
			require.True(t, got.Success)
			assert.Equal(t, res.Report.Summary, got.Report.Summary)
			assert.Equal(t, res.Report.Metadata.Matches, got.Report.Metadata.Matches)
			assert.Equal(t, reconcile.Summarize(res.Report.Fields), reconcile.Summarize(got.Report.Fields))
		})
	}
}

func TestLoadBareReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metadata":{"song_id":"1"},"fields":{"title":{"value":"x","status":"confirmed","sources":{}}},"summary":{"total_fields":1,"confirmed":1,"confidence_score":1}}`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, reconcile.Confirmed, got.Report.Fields.Verdict("title").Status)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestParquetRoundTrip(t *testing.T) {
	rows := Rows(sampleResult().Report)

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, rows))

	got, err := ReadParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteRows(t *testing.T) {
	rows := Rows(sampleResult().Report)

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, FormatText, rows))
	assert.Contains(t, buf.String(), "duration")

	buf.Reset()
	require.NoError(t, WriteRows(&buf, FormatJSON, rows))
	assert.Contains(t, buf.String(), `"field": "title"`)

	assert.Error(t, WriteRows(&buf, FormatYAML, rows))
}

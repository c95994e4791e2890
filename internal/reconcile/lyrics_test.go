package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessLyrics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"timestamps only", "[00:01.00]\n[00:02.50]", ""},
		{"strips timestamps and blanks", "[00:01.00]Hello\n\n[00:02.123]  World  \n", "hello\nworld"},
		{"full width punctuation", "你好，世界！真的吗？是的。", "你好,世界!真的吗?是的."},
		{"full width letters", "ＡＢＣ", "abc"},
		{"ideographic space trimmed", "　歌词　", "歌词"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreprocessLyrics(tt.in))
		})
	}
}

func TestCompareLyrics(t *testing.T) {
	primary := "[00:01.00]Hello，World\n\n[00:02.00]  Second line  "
	long := strings.Repeat("la ", 60)

	tests := []struct {
		name       string
		primary    string
		observed   []Observation[string]
		wantStatus Status
		wantBy     []string
		wantNote   string
	}{
		{
			name:       "confirmed after preprocessing",
			primary:    primary,
			observed:   obs[string]("QQ Music", "hello,world\nsecond line"),
			wantStatus: Confirmed,
			wantBy:     []string{"QQ Music"},
		},
		{
			name:       "primary only timestamps",
			primary:    "[00:01.00]",
			observed:   obs[string]("QQ Music", "hello"),
			wantStatus: NotFound,
			wantNote:   "primary source has no lyrics",
		},
		{
			name:       "no secondary lyrics",
			primary:    primary,
			observed:   obs[string]("Spotify", "", "QQ Music", ""),
			wantStatus: NotFound,
			wantNote:   noteNoData,
		},
		{
			name:       "similar lyrics note the first similar source",
			primary:    primary,
			observed:   obs[string]("QQ Music", "hello,world\nsecond time", "Spotify", "hello,world\nsecond"),
			wantStatus: Questionable,
			wantNote:   "lyrics similar to QQ Music but differ (similarity: 91.30%)",
		},
		{
			name:       "similar note kept when another source confirms",
			primary:    primary,
			observed:   obs[string]("Spotify", "hello,world\nsecond", "QQ Music", "hello,world\nsecond line"),
			wantStatus: Confirmed,
			wantBy:     []string{"QQ Music"},
			wantNote:   "lyrics similar to Spotify but differ (similarity: 87.80%)",
		},
		{
			name:       "unrelated lyrics",
			primary:    primary,
			observed:   obs[string]("QQ Music", long),
			wantStatus: Questionable,
			wantNote:   "QQ Music disagrees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareLyrics(tt.primary, tt.observed, DefaultThresholds)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantBy, got.ConfirmedBy)
			assert.Equal(t, tt.wantNote, got.Note)
		})
	}
}

func TestCompareLyricsReportsBestSimilarity(t *testing.T) {
	got := CompareLyrics("hello,world\nsecond line", obs[string]("Spotify", "hello,world\nsecond", "QQ Music", "hello,world\nsecond time"), DefaultThresholds)
	require.NotNil(t, got.Similarity)
	assert.InDelta(t, 42.0/46.0, *got.Similarity, 1e-9)
	assert.Equal(t, Questionable, got.Status)
}

func TestCompareLyricsExcerptAndSimilarity(t *testing.T) {
	secondary := strings.Repeat("歌", 150)
	got := CompareLyrics("歌", obs[string]("QQ Music", secondary), DefaultThresholds)

	excerpt, ok := got.Sources["QQ Music"].(string)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("歌", ExcerptRunes)+"...", excerpt)
	require.NotNil(t, got.Similarity)
	assert.Greater(t, *got.Similarity, 0.0)
	assert.Less(t, *got.Similarity, DefaultSimilar)
}

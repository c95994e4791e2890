package normalize

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

func TestSplitArtists(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"李荣浩", []string{"李荣浩"}},
		{"A/B", []string{"A", "B"}},
		{"A, B", []string{"A", " B"}},
		{"周杰伦、费玉清", []string{"周杰伦", "费玉清"}},
		{"X;Y", []string{"X", "Y"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitArtists(tt.in), tt.in)
	}
}

func TestArtists(t *testing.T) {
	assert.Equal(t, []string{"adele", "ed sheeran"}, Artists([]string{" Ed  Sheeran", "", "ADELE"}))
	assert.Empty(t, Artists(nil))
}

func TestCreditRole(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"作词", RoleLyricist, true},
		{"词", RoleLyricist, true},
		{"Composed By", RoleComposer, true},
		{"作曲：", RoleComposer, true},
		{"编曲", RoleArranger, true},
		{"制作人", RoleProducer, true},
		{"Music Producer", RoleProducer, true},
		{"mixing engineer", RoleMixer, true},
		{"母带工程师", RoleMastering, true},
		{"composed", RoleComposer, true},
		{"arrange", RoleArranger, true},
		{"吉他", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := CreditRole(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredits(t *testing.T) {
	got := Credits(map[string][]string{
		"作词":          {"李荣浩"},
		"Lyrics":      {"Someone/李荣浩"},
		"composer":    {"B，A"},
		"guitar":      {"Nobody"},
		"Arranged By": {"  "},
	})
	assert.Equal(t, map[string][]string{
		RoleLyricist: {"someone", "李荣浩"},
		RoleComposer: {"a", "b"},
	}, got)

	assert.Nil(t, Credits(nil))
	assert.Nil(t, Credits(map[string][]string{"guitar": {"x"}}))
}

func TestCreditsFromJSON(t *testing.T) {
	got := CreditsFromJSON(`{"作词": "李荣浩", "作曲": ["李荣浩"], "编曲": ["Ryan.B", "王俊"], "notes": 3}`)
	assert.Equal(t, map[string][]string{
		RoleLyricist: {"李荣浩"},
		RoleComposer: {"李荣浩"},
		RoleArranger: {"ryan.b", "王俊"},
	}, got)
}

func TestCreditsFromLyrics(t *testing.T) {
	lrc := "[00:00.00] 作词 : 李荣浩\n[00:01.00] 作曲 : 李荣浩\n[00:02.00] 编曲 : 李荣浩/Ryan.B\n[00:10.00]那时候我以为爱的是生活"
	assert.Equal(t, map[string][]string{
		RoleLyricist: {"李荣浩"},
		RoleComposer: {"李荣浩"},
		RoleArranger: {"ryan.b", "李荣浩"},
	}, CreditsFromLyrics(lrc))

	assert.Nil(t, CreditsFromLyrics("[00:01.00]just lyrics"))
}

func TestCanonical(t *testing.T) {
	in := &models.Bundle{
		Title:   "  Shape  of You ",
		Album:   "÷ (Deluxe)",
		Artists: []string{"Ed Sheeran"},
		Lyrics:  models.Lyrics{Original: "Keep Case"},
		Credits: map[string][]string{"Producer": {"Steve Mac"}},
	}
	got := Canonical(in)
	assert.Equal(t, "shape of you", got.Title)
	assert.Equal(t, "÷ (deluxe)", got.Album)
	assert.Equal(t, []string{"ed sheeran"}, got.Artists)
	assert.Equal(t, "Keep Case", got.Lyrics.Original)
	assert.Equal(t, map[string][]string{RoleProducer: {"steve mac"}}, got.Credits)
	assert.Equal(t, "  Shape  of You ", in.Title)
	assert.Nil(t, Canonical(nil))
}

func TestNetEase(t *testing.T) {
	detail := []byte(`{"songs":[{"id":186016,"name":"不将就","dt":314000,
		"ar":[{"id":4292,"name":"李荣浩"}],
		"al":{"id":18877,"name":"耳朵","picUrl":"https://p1.music.126.net/x.jpg"}}],"code":200}`)
	lyric := []byte(`{"lrc":{"lyric":"[00:00.00] 作词 : 李荣浩\n[00:10.00]那时候"},"tlyric":{"lyric":""}}`)

	got, err := NetEase(detail, lyric)
	require.NoError(t, err)
	assert.Equal(t, &models.Bundle{
		SongID:     "186016",
		Title:      "不将就",
		Artists:    []string{"李荣浩"},
		Album:      "耳朵",
		DurationMS: 314000,
		CoverURL:   "https://p1.music.126.net/x.jpg",
		Lyrics:     models.Lyrics{Original: "[00:00.00] 作词 : 李荣浩\n[00:10.00]那时候"},
		Credits:    map[string][]string{RoleLyricist: {"李荣浩"}},
	}, got)

	_, err = NetEase([]byte(`{"songs":[]}`), nil)
	assert.True(t, errors.Is(err, ErrSongNotFound))

	_, err = NetEase([]byte(`not json`), nil)
	assert.Error(t, err)
}

func TestQQMusic(t *testing.T) {
	want := &models.Bundle{
		SongID:     "003abc",
		Title:      "不将就",
		Artists:    []string{"李荣浩"},
		Album:      "耳朵",
		DurationMS: 314000,
		CoverURL:   "https://y.gtimg.cn/music/photo_new/T002R300x300M000002xyz.jpg",
	}
	track := `{"mid":"003abc","name":"不将就","title":"不将就","interval":314,
		"singer":[{"name":"李荣浩"}],"album":{"id":1,"mid":"002xyz","name":"耳朵"}}`

	tests := []struct {
		name    string
		payload string
	}{
		{"proxy shape", `{"track_info":` + track + `,"extras":{}}`},
		{"upstream shape", `{"response":{"songinfo":{"data":{"track_info":` + track + `}}}}`},
		{"http body string", `{"body":"{\"track_info\":{\"mid\":\"003abc\",\"title\":\"不将就\",\"interval\":314,\"singer\":[{\"name\":\"李荣浩\"}],\"album\":{\"mid\":\"002xyz\",\"name\":\"耳朵\"}}}"}`},
		{"flat shape", `{"code":0,"data":{"songmid":"003abc","songname":"不将就","singer":[{"name":"李荣浩"}],"albumname":"耳朵","albummid":"002xyz","interval":314}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QQMusic([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := QQMusic([]byte(`{"error":"upstream failed"}`))
	assert.True(t, errors.Is(err, ErrSongNotFound))
}

func TestQQResponses(t *testing.T) {
	assert.Equal(t, "https://example.com/cover.jpg", QQCoverFromResponse([]byte(`{"imageUrl":"https://example.com/cover.jpg"}`)))
	assert.Equal(t, "https://example.com/c2.jpg", QQCoverFromResponse([]byte(`{"response":{"data":{"imageUrl":"https://example.com/c2.jpg"}}}`)))
	assert.Empty(t, QQCoverFromResponse([]byte(`{"imageUrl":""}`)))
	assert.Empty(t, QQCoverFromResponse([]byte(`oops`)))

	assert.Equal(t, "歌词", QQLyricFromResponse([]byte(`{"response":{"lyric":"歌词"}}`)))
	assert.Empty(t, QQCoverURL(""))

	assert.Equal(t, "002xyz", QQAlbumMID([]byte(`{"track_info":{"album":{"mid":"002xyz"}}}`)))
	assert.Equal(t, "002xyz", QQAlbumMID([]byte(`{"data":{"albummid":"002xyz"}}`)))
	assert.Empty(t, QQAlbumMID([]byte(`{}`)))
}

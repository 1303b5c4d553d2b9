package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# test list
tôi	1000
trường	300
truồng	1
sinh viên	50
nhà 35
bàn
không 750.0

truong => trường
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 7, d.Len())
	assert.Equal(t, 1000, d.freq["tôi"])
	assert.Equal(t, 50, d.freq["sinh viên"])
	assert.Equal(t, 1, d.freq["bàn"])
	assert.Equal(t, 750, d.freq["không"])
	assert.Equal(t, 2, d.LongestEntry())

	fix, ok := d.Correction("TRUONG")
	require.True(t, ok)
	assert.Equal(t, "trường", fix)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("# nothing here\n\n"))
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = Parse([]byte("tôi 1\nabc =>\n"))
	assert.Error(t, err)
}

func TestIsCorrectWord(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.True(t, d.IsCorrectWord("tôi"))
	assert.True(t, d.IsCorrectWord("TÔI"))
	assert.True(t, d.IsCorrectWord("Sinh Viên"))
	assert.True(t, d.IsCorrectWord("to\u0302i"), "decomposed input is normalized")
	assert.False(t, d.IsCorrectWord("toi"))
	assert.False(t, d.IsCorrectWord(""))
	assert.False(t, d.IsCorrectWord("truong"), "misspellings are not words")
}

func TestCustomWords(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)

	d.AddWord("Golang")
	d.AddWord("mạng nơ ron sâu")
	assert.True(t, d.IsCorrectWord("golang"))
	assert.Equal(t, 4, d.LongestEntry())
	assert.Equal(t, []string{"golang", "mạng nơ ron sâu"}, d.CustomWords())

	d.RemoveWord("GOLANG")
	assert.False(t, d.IsCorrectWord("golang"))

	d.RemoveWord("tôi")
	assert.True(t, d.IsCorrectWord("tôi"), "list words cannot be removed")
	assert.Equal(t, 7, d.Len())
}

func TestGetSuggestions(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)

	got := d.GetSuggestions("truong", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "trường", got[0], "common misspelling first")
	assert.Equal(t, []string{"trường", "truồng"}, got)

	assert.Equal(t, []string{"trường"}, d.GetSuggestions("truong", 1))
	assert.Empty(t, d.GetSuggestions("", 5))
	assert.Empty(t, d.GetSuggestions("xyz", 5))
	assert.Empty(t, d.GetSuggestions("truong", 0))
}

func TestGetSuggestionsRanksByFrequencyThenKeyboard(t *testing.T) {
	d, err := Parse([]byte("nhàp 5\nnhàx 5\nnhàn 9\n"))
	require.NoError(t, err)

	// x sits next to z on the keyboard and p does not.
	got := d.GetSuggestions("nhàz", 5)
	assert.Equal(t, []string{"nhàn", "nhàx", "nhàp"}, got)
}

func TestGetSuggestionsIncludesCustomWords(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)
	d.AddWord("golang")
	assert.Contains(t, d.GetSuggestions("golanf", 5), "golang")
}

func TestDistanceMemoIsBounded(t *testing.T) {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)

	// Every query is new and each resembles "trường", so each adds a memo entry.
	for i := range distMemoSize + 500 {
		got := d.GetSuggestions("trườn"+string(rune(0x4E00+i)), 5)
		require.Equal(t, []string{"trường"}, got)
	}
	assert.Equal(t, distMemoSize, d.distMemo.Len())
}

func TestGetSuggestionsCountsSwapAsOneEdit(t *testing.T) {
	d, err := Parse([]byte("trong 10\n"))
	require.NoError(t, err)

	// One swap in five letters keeps similarity at 0.8; two substitutions
	// would drop it to 0.6.
	assert.InDelta(t, 0.8, similarity("trogn", "trong"), 1e-9)
	assert.Equal(t, []string{"trong"}, d.GetSuggestions("trogn", 5))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, d.IsCorrectWord("nhà"))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 300)
	assert.True(t, d.IsCorrectWord("sinh viên"))
	assert.False(t, d.IsCorrectWord("toi"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "truong", Fold("Trường"))
	assert.Equal(t, "dang", Fold("đang"))
	assert.Equal(t, "viet nam", Fold("Việt Nam"))
}

func TestDistances(t *testing.T) {
	assert.Equal(t, 0, editDistance("học", "học"))
	assert.Equal(t, 1, editDistance("hoc", "học"))
	assert.Equal(t, 1, editDistance("ab", "ba"))
	assert.Equal(t, 3, editDistance("", "abc"))

	assert.InDelta(t, 1.0, similarity("a", "a"), 1e-9)
	assert.InDelta(t, 0.75, similarity("nhàz", "nhàs"), 1e-9)

	c := defaultCosts
	assert.InDelta(t, 0.2, c.weightedDL("hoc", "học"), 1e-9)
	assert.InDelta(t, 0.2, c.weightedDL("dang", "đang"), 1e-9)
	assert.InDelta(t, c.transpose, c.weightedDL("trogn", "trong"), 1e-9)
	assert.Less(t, c.weightedDL("nhàz", "nhàx"), c.weightedDL("nhàz", "nhàp"))
	assert.InDelta(t, 2*c.insDel, c.weightedDL("", "ab"), 1e-9)
}

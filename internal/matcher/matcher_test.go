package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vispell/internal/rules"
)

func newMatcher(t *testing.T, rs ...rules.Rule) *Matcher {
	t.Helper()
	store, err := rules.New(rs, rules.Policy{}, rules.Lexicon{})
	require.NoError(t, err)
	m, err := New(store)
	require.NoError(t, err)
	return m
}

func tone(id, pattern, repl string) rules.Rule {
	return rules.Rule{ID: id, Category: rules.CategoryToneError, Pattern: pattern, Replacement: repl}
}

func TestMatchLiteralIsCaseInsensitive(t *testing.T) {
	m := newMatcher(t, tone("toi", "toi", "tôi"))

	got := m.Match("Toi và TOI và toi", rules.CategoryToneError)
	require.Len(t, got, 3)
	assert.Equal(t, "Toi", got[0].Word)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, "TOI", got[1].Word)
	assert.Equal(t, 7, got[1].Position)
	assert.Equal(t, "toi", got[2].Word)
	assert.Equal(t, 14, got[2].Position)
	for _, c := range got {
		assert.Equal(t, "tôi", c.Replacement)
		assert.Equal(t, "toi", c.RuleID)
		assert.Equal(t, rules.CategoryToneError, c.Category)
	}
}

func TestMatchRespectsVietnameseWordBoundaries(t *testing.T) {
	m := newMatcher(t, tone("hoc", "hoc", "học"), tone("an", "an", "ăn"))

	tests := []struct {
		name string
		text string
		want int
	}{
		{"standalone", "hoc bài", 1},
		{"inside ascii word", "shock hocx", 0},
		{"prefix of accented word", "hocđ", 0},
		{"suffix after accented letter", "ứhoc", 0},
		{"followed by punctuation", "hoc, hoc.", 2},
		{"inside toan", "toán", 0},
		{"before combining mark", "an\u0301", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, m.Match(tt.text, rules.CategoryToneError), tt.want)
		})
	}
}

func TestMatchByteAndRuneOffsets(t *testing.T) {
	m := newMatcher(t, tone("dang", "dang", "đang"))

	text := "tôi dang học"
	got := m.Match(text, rules.CategoryToneError)
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, 4, c.Position)
	assert.Equal(t, "dang", text[c.Start:c.End])
	assert.Equal(t, 4, c.Len())
}

func TestMatchMultiWordPattern(t *testing.T) {
	m := newMatcher(t,
		rules.Rule{ID: "sv", Category: rules.CategoryCompoundWord, Pattern: "sinh vien", Replacement: "sinh viên"},
		rules.Rule{ID: "sinh", Category: rules.CategoryCompoundWord, Pattern: "sinh", Replacement: "xinh"},
	)
	got := m.Match("em là sinh vien", rules.CategoryCompoundWord)
	require.Len(t, got, 2)
	assert.Equal(t, "sv", got[0].RuleID)
	assert.Equal(t, "sinh vien", got[0].Word)
	assert.Equal(t, "sinh", got[1].RuleID)
}

func TestMatchSkipsNoOpMatches(t *testing.T) {
	m := newMatcher(t, rules.Rule{ID: "hang", Category: rules.CategoryTypoError, Pattern: "hànG", Replacement: "hàng"})

	assert.Empty(t, m.Match("hàng hóa", rules.CategoryTypoError))
	got := m.Match("hànG hóa", rules.CategoryTypoError)
	require.Len(t, got, 1)
	assert.Equal(t, "hànG", got[0].Word)
}

func TestMatchRegexSpanRewrite(t *testing.T) {
	m := newMatcher(t, rules.Rule{
		ID: "comma", Category: rules.CategorySpacing, Regex: true, Span: 1,
		Pattern: `\pL( *, *)\pL`, Replacement: ", ",
	})

	got := m.Match("a ,b,c, d", rules.CategorySpacing)
	require.Len(t, got, 2)
	assert.Equal(t, " ,", got[0].Word)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, ", ", got[0].Replacement)
	assert.Equal(t, ",", got[1].Word)
	assert.Equal(t, 4, got[1].Position)
}

func TestMatchRegexExpandsGroups(t *testing.T) {
	m := newMatcher(t, rules.Rule{
		ID: "mark", Category: rules.CategorySpacing, Regex: true, Span: 1,
		Pattern: `\pL( *([!?;]) *)\pL`, Replacement: "${2} ",
	})
	got := m.Match("sao ?vậy", rules.CategorySpacing)
	require.Len(t, got, 1)
	assert.Equal(t, " ?", got[0].Word)
	assert.Equal(t, "? ", got[0].Replacement)
}

func TestMatchRegexWholeMatchChecksBoundaries(t *testing.T) {
	m := newMatcher(t, rules.Rule{
		ID: "glued", Category: rules.CategoryStickyTyping, Regex: true,
		Pattern: `(so)(với)`, Replacement: "$1 $2",
	})
	got := m.Match("lsovới sovới", rules.CategoryStickyTyping)
	require.Len(t, got, 1)
	assert.Equal(t, "sovới", got[0].Word)
	assert.Equal(t, "so với", got[0].Replacement)
	assert.Equal(t, 7, got[0].Position)
}

func TestMatchAllFollowsCategoryOrder(t *testing.T) {
	m := newMatcher(t,
		tone("toi", "toi", "tôi"),
		rules.Rule{ID: "glue", Category: rules.CategoryStickyTyping, Pattern: "củatôi", Replacement: "của tôi"},
	)
	got := m.MatchAll("củatôi toi", nil)
	require.Len(t, got, 2)
	assert.Equal(t, rules.CategoryStickyTyping, got[0].Category)
	assert.Equal(t, rules.CategoryToneError, got[1].Category)

	only := m.MatchAll("củatôi toi", []rules.Category{rules.CategoryToneError})
	require.Len(t, only, 1)
}

func TestMatchEmptyInputs(t *testing.T) {
	m := newMatcher(t, tone("toi", "toi", "tôi"))
	assert.Empty(t, m.Match("", rules.CategoryToneError))
	assert.Empty(t, m.Match("toi", rules.CategorySpacing))
	assert.Empty(t, m.Match("toi", rules.Category("nope")))
}

func TestCandidateOverlaps(t *testing.T) {
	a := Candidate{Start: 0, End: 4}
	assert.True(t, a.Overlaps(Candidate{Start: 3, End: 6}))
	assert.False(t, a.Overlaps(Candidate{Start: 4, End: 6}))
}

func TestDefaultStoreCompiles(t *testing.T) {
	store, err := rules.Default()
	require.NoError(t, err)
	m, err := New(store)
	require.NoError(t, err)

	got := m.MatchAll("toi dang hoc tieng viet", nil)
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.RuleID)
	}
	assert.ElementsMatch(t, []string{"tone-toi", "tone-dang", "tone-hoc", "tone-viet"}, ids)
}

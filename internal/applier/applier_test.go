package applier

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vispell/internal/matcher"
	"vispell/internal/rules"
)

func cand(text, word string, cat rules.Category, repl string) matcher.Candidate {
	start := strings.Index(text, word)
	if start < 0 {
		panic("word not in text: " + word)
	}
	return matcher.Candidate{
		Word:        word,
		Position:    utf8.RuneCountInString(text[:start]),
		Start:       start,
		End:         start + len(word),
		Category:    cat,
		Replacement: repl,
		RuleID:      string(cat) + ":" + word,
	}
}

func priority(c rules.Category) int { return c.Priority() }

func TestMatchCase(t *testing.T) {
	tests := []struct {
		word, repl, want string
	}{
		{"TOI", "tôi", "TÔI"},
		{"Toi", "tôi", "Tôi"},
		{"toi", "tôi", "tôi"},
		{"tOi", "tôi", "tôi"},
		{"Viet", "Việt", "Việt"},
		{"viet", "Việt", "Việt"},
		{"Dai hoc", "đại học", "Đại học"},
		{"Viet Nam", "Việt Nam", "Việt Nam"},
		{" ,", ", ", ", "},
		{"123", "một", "một"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchCase(tt.word, tt.repl))
		})
	}
}

func TestApplyRewritesLeftToRight(t *testing.T) {
	text := "toi dang hoc tieng viet"
	cands := []matcher.Candidate{
		cand(text, "toi", rules.CategoryToneError, "tôi"),
		cand(text, "dang", rules.CategoryToneError, "đang"),
		cand(text, "hoc", rules.CategoryToneError, "học"),
		cand(text, "viet", rules.CategoryToneError, "Việt"),
	}
	got, applied := Apply(text, cands, priority)
	assert.Equal(t, "tôi đang học tieng Việt", got)
	assert.Len(t, applied, 4)
}

func TestApplyDoesNotReprocessReplacements(t *testing.T) {
	text := "ab"
	cands := []matcher.Candidate{
		{Word: "ab", Start: 0, End: 2, Category: rules.CategoryToneError, Replacement: "abab", RuleID: "x"},
	}
	got, _ := Apply(text, cands, priority)
	assert.Equal(t, "abab", got)
}

func TestApplyPriorityWinsOverlaps(t *testing.T) {
	text := "em là sinh vien gioi"
	compound := cand(text, "sinh vien", rules.CategoryCompoundWord, "sinh viên")
	tone := cand(text, "vien", rules.CategoryToneError, "viên")

	got, applied := Apply(text, []matcher.Candidate{tone, compound}, priority)
	assert.Equal(t, "em là sinh viên gioi", got)
	require.Len(t, applied, 1)
	assert.Equal(t, rules.CategoryCompoundWord, applied[0].Category)
}

func TestApplyOrderIsDeterministic(t *testing.T) {
	text := "Toi dang hoc chuyen nganh kinh te o TRUONG"
	cands := []matcher.Candidate{
		cand(text, "Toi", rules.CategoryToneError, "tôi"),
		cand(text, "dang", rules.CategoryToneError, "đang"),
		cand(text, "hoc", rules.CategoryToneError, "học"),
		cand(text, "chuyen nganh", rules.CategoryCompoundWord, "chuyên ngành"),
		cand(text, "chuyen", rules.CategoryToneError, "chuyên"),
		cand(text, "nganh", rules.CategoryToneError, "ngành"),
		cand(text, "kinh te", rules.CategoryCompoundWord, "kinh tế"),
		cand(text, "TRUONG", rules.CategoryToneError, "trường"),
		cand(text, "nganh", rules.CategoryTypoError, "nghành"),
	}
	want, _ := Apply(text, cands, priority)
	assert.Equal(t, "Tôi đang học chuyên ngành kinh tế o TRƯỜNG", want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]matcher.Candidate(nil), cands...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, _ := Apply(text, shuffled, priority)
		require.Equal(t, want, got)
	}
}

func TestOrder(t *testing.T) {
	text := "a b c"
	late := cand(text, "a", rules.CategorySpacing, "x")
	second := cand(text, "c", rules.CategoryToneError, "y")
	first := cand(text, "b", rules.CategoryToneError, "z")
	sticky := cand(text, "c", rules.CategoryStickyTyping, "w")

	got := Order([]matcher.Candidate{late, second, first, sticky}, priority)
	assert.Equal(t, []matcher.Candidate{sticky, first, second, late}, got)
}

func TestApplySkipsInvalidOffsets(t *testing.T) {
	got, applied := Apply("abc", []matcher.Candidate{{Word: "zz", Start: 2, End: 9, Replacement: "q"}}, priority)
	assert.Equal(t, "abc", got)
	assert.Empty(t, applied)
}

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vispell/internal/rules"
)

func defaultAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	store, err := rules.Default()
	require.NoError(t, err)
	return New(store.Lexicon())
}

func TestSentenceType(t *testing.T) {
	tests := []struct {
		text string
		want SentenceType
	}{
		{"tôi đi học", Statement},
		{"bạn đi đâu?", Question},
		{"hay quá!", Exclamation},
		{"hay quá! ", Exclamation},
		{"", Statement},
	}
	a := defaultAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Analyze(tt.text, nil).SentenceType)
		})
	}
}

func TestProperNouns(t *testing.T) {
	a := defaultAnalyzer(t)
	tokens := []string{"Minh", "sống", "ở", "hà", "nội", "A", "Minh"}
	ctx := a.Analyze("Minh sống ở hà nội A Minh", tokens)

	assert.Equal(t, []string{"Minh", "hà", "nội"}, ctx.ProperNouns)
	assert.True(t, ctx.IsProperNoun("Minh"))
	assert.False(t, ctx.IsProperNoun("A"))
	assert.False(t, ctx.IsProperNoun("minh"))
}

func TestDomainFlags(t *testing.T) {
	a := defaultAnalyzer(t)

	ctx := a.Analyze("sinh viên khoa học", []string{"sinh viên", "khoa học"})
	assert.True(t, ctx.Academic)
	assert.True(t, ctx.Education)
	assert.False(t, ctx.Business)

	ctx = a.Analyze("Công ty kinh doanh tốt", []string{"công ty", "kinh doanh", "tốt"})
	assert.True(t, ctx.Business)
	assert.False(t, ctx.Academic)
}

func TestSubjectVerbPairs(t *testing.T) {
	a := defaultAnalyzer(t)
	tokens := []string{"Tôi", "đang", "học", "và", "họ", "làm", "việc"}
	ctx := a.Analyze("Tôi đang học và họ làm việc", tokens)

	assert.Equal(t, []Pair{{"tôi", "đang"}, {"họ", "làm"}}, ctx.SubjectVerbPairs)
}

func TestBuckets(t *testing.T) {
	a := defaultAnalyzer(t)
	tokens := []string{"tôi", "học", "ở", "trường", "năm", "nay", "rất", "tốt", "học"}
	ctx := a.Analyze("tôi học ở trường năm nay rất tốt học", tokens)

	assert.Equal(t, []string{"tôi"}, ctx.WordRelationships["subject_words"])
	assert.Equal(t, []string{"học"}, ctx.WordRelationships["action_words"])
	assert.Equal(t, []string{"trường"}, ctx.WordRelationships["object_words"])
	assert.Equal(t, []string{"rất", "tốt"}, ctx.WordRelationships["descriptive_words"])
	assert.True(t, ctx.InBucket("subject_words", "Tôi"))

	assert.Equal(t, []string{"học", "trường"}, ctx.SemanticGroups["education"])
	assert.Equal(t, []string{"năm"}, ctx.SemanticGroups["time"])
	assert.Equal(t, []string{"ở"}, ctx.SemanticGroups["location"])
	assert.NotContains(t, ctx.SemanticGroups, "business")
}

func TestAnalyzeEmptyLexicon(t *testing.T) {
	a := New(&rules.Lexicon{})
	ctx := a.Analyze("Xin chào", []string{"Xin", "chào"})
	assert.Equal(t, []string{"Xin"}, ctx.ProperNouns)
	assert.Empty(t, ctx.SubjectVerbPairs)
	assert.Empty(t, ctx.SemanticGroups)
	assert.False(t, ctx.Academic)
}

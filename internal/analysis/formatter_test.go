package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_FormatProblems(t *testing.T) {
	f := NewFormatter()

	problems := []ClassifiedMessage{
		{ProblemCategory: "Deployment", Context: "Deploy failed on staging", Urgency: 5},
		{ProblemCategory: "API Issues", Context: "Endpoint returns 500", Urgency: 3},
		{ProblemCategory: "General Technical", Context: "Something is off", Urgency: 1},
	}

	got := f.FormatProblems(problems)

	assert.Contains(t, got, "<strong>Top Problems Identified:</strong>")
	assert.Contains(t, got, "1. <strong>Deployment:</strong> Deploy failed on staging 🚨<br>")
	assert.Contains(t, got, "2. <strong>API Issues:</strong> Endpoint returns 500 ⚠️<br>")
	assert.Contains(t, got, "3. <strong>General Technical:</strong> Something is off <br>")
}

func TestFormatter_FormatProblems_TruncatesContext(t *testing.T) {
	f := NewFormatter()

	long := strings.Repeat("x", 150)
	got := f.FormatProblems([]ClassifiedMessage{{ProblemCategory: "Deployment", Context: long, Urgency: 1}})

	assert.Contains(t, got, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, got, strings.Repeat("x", 101))
}

func TestFormatter_FormatProblems_TruncationKeepsRunesIntact(t *testing.T) {
	f := NewFormatter()

	// 99 ASCII characters put the emoji right on the truncation boundary
	context := strings.Repeat("a", 99) + "🚨🚨🚨"
	got := f.FormatProblems([]ClassifiedMessage{{ProblemCategory: "Deployment", Context: context, Urgency: 1}})

	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, strings.Repeat("a", 99)+"🚨...")
}

func TestFormatter_FormatProblems_None(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, NoProblems, f.FormatProblems(nil))
}

func TestFormatter_FormatQuestions_GroupedByCategory(t *testing.T) {
	f := NewFormatter()

	questions := []ClassifiedMessage{
		{QuestionCategory: "How-to", Context: "How to run tests"},
		{QuestionCategory: "Clarification", Context: "What does scoring mean"},
		{QuestionCategory: "How-to", Context: "How to deploy"},
	}

	got := f.FormatQuestions(questions)

	assert.Contains(t, got, "<strong>Top Questions by Category:</strong>")
	// category order follows first appearance; entries keep order within a category
	howTo := strings.Index(got, "<strong>How-to:</strong>")
	clar := strings.Index(got, "<strong>Clarification:</strong>")
	assert.Less(t, howTo, clar)
	first := strings.Index(got, "&bull; How to run tests<br>")
	second := strings.Index(got, "&bull; How to deploy<br>")
	assert.Less(t, first, second)
}

func TestFormatter_FormatQuestions_None(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, NoQuestions, f.FormatQuestions(nil))
}

func TestFormatter_FormatTrending(t *testing.T) {
	f := NewFormatter()

	topics := TrendingTopics{
		TopWords: []WordCount{
			{Word: "deploy", Count: 9}, {Word: "database", Count: 7}, {Word: "auth", Count: 5},
			{Word: "staging", Count: 4}, {Word: "timeout", Count: 3}, {Word: "sixth", Count: 1},
		},
		Themes: []Theme{
			{Name: "API & Authentication Issues", Description: "desc a", Urgency: "high"},
			{Name: "Deployment & Infrastructure", Description: "desc b", Urgency: "medium"},
			{Name: "Other", Description: "desc c", Urgency: "low"},
		},
	}

	got := f.FormatTrending(topics)

	assert.Contains(t, got, "<strong>API & Authentication Issues:</strong> desc a 🚨<br><br>")
	assert.Contains(t, got, "<strong>Deployment & Infrastructure:</strong> desc b ⚠️<br><br>")
	assert.Contains(t, got, "<strong>Other:</strong> desc c 📈<br><br>")
	// only the first five key terms are displayed
	assert.Contains(t, got, "<strong>Key Terms:</strong> deploy, database, auth, staging, timeout")
	assert.NotContains(t, got, "sixth")
}

func TestFormatter_FormatTrending_NoThemes(t *testing.T) {
	f := NewFormatter()

	topics := TrendingTopics{TopWords: []WordCount{{Word: "deploy", Count: 3}}}
	assert.Equal(t, NoTrending, f.FormatTrending(topics))
}

func TestFormatter_EmptyBundle(t *testing.T) {
	f := NewFormatter()

	bundle := f.EmptyBundle()

	assert.Equal(t, EmptyProblems, bundle.Problems)
	assert.Equal(t, EmptyQuestions, bundle.Questions)
	assert.Equal(t, EmptyTrending, bundle.Trending)
}

func TestMarkdownToHTML(t *testing.T) {
	assert.Equal(t, "<strong>bold</strong>", MarkdownToHTML("**bold**"))
	assert.Equal(t, "<em>italic</em>", MarkdownToHTML("*italic*"))
	assert.Equal(t, "line<br>break", MarkdownToHTML("line\nbreak"))
	assert.Equal(t, "&bull; item", MarkdownToHTML("• item"))
	assert.Equal(t, "", MarkdownToHTML(""))
}

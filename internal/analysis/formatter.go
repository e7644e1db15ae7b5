package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"huddle/internal/constants"
)

// Empty-window sentinels. These exact strings are part of the API contract;
// clients key off them to render placeholder panels.
const (
	EmptyProblems  = "No recent activity to analyze. Waiting for messages..."
	EmptyQuestions = "No questions detected yet. Teams might be working independently."
	EmptyTrending  = "No trending topics identified. Activity level is low."

	NoProblems  = "No problems detected recently. Great job! 🎉"
	NoQuestions = "No questions found recently. Teams seem to be working smoothly! 👍"
	NoTrending  = "No trending topics identified. Activity seems steady! 📊"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
	bulletPattern = regexp.MustCompile(`(?m)^• `)
)

// Formatter renders ranked analysis data into display strings. It is a pure
// mapping: the same ranked input always yields the same output, and no
// classification happens here.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) FormatProblems(problems []ClassifiedMessage) string {
	if len(problems) == 0 {
		return NoProblems
	}

	var b strings.Builder
	b.WriteString("<strong>Top Problems Identified:</strong><br><br>")

	for i, p := range problems {
		icon := ""
		switch {
		case p.Urgency >= 4:
			icon = "🚨"
		case p.Urgency >= 3:
			icon = "⚠️"
		}
		context := truncate(p.Context, constants.ProblemContextLimit)
		fmt.Fprintf(&b, "%d. <strong>%s:</strong> %s %s<br>", i+1, p.ProblemCategory, context, icon)
	}

	return b.String()
}

// FormatQuestions groups questions by category without reordering them inside
// a category. Category order follows first appearance.
func (f *Formatter) FormatQuestions(questions []ClassifiedMessage) string {
	if len(questions) == 0 {
		return NoQuestions
	}

	grouped := make(map[string][]ClassifiedMessage)
	var categories []string
	for _, q := range questions {
		if _, seen := grouped[q.QuestionCategory]; !seen {
			categories = append(categories, q.QuestionCategory)
		}
		grouped[q.QuestionCategory] = append(grouped[q.QuestionCategory], q)
	}

	var b strings.Builder
	b.WriteString("<strong>Top Questions by Category:</strong><br><br>")

	for _, cat := range categories {
		fmt.Fprintf(&b, "<strong>%s:</strong><br>", cat)
		for _, q := range grouped[cat] {
			context := truncate(q.Context, constants.QuestionContextLimit)
			fmt.Fprintf(&b, "&bull; %s<br>", context)
		}
		b.WriteString("<br>")
	}

	return b.String()
}

func (f *Formatter) FormatTrending(topics TrendingTopics) string {
	if len(topics.Themes) == 0 {
		return NoTrending
	}

	var b strings.Builder
	b.WriteString("<strong>Current Trends:</strong><br><br>")

	for _, theme := range topics.Themes {
		icon := "📈"
		switch theme.Urgency {
		case "high":
			icon = "🚨"
		case "medium":
			icon = "⚠️"
		}
		fmt.Fprintf(&b, "<strong>%s:</strong> %s %s<br><br>", theme.Name, theme.Description, icon)
	}

	if len(topics.TopWords) > 0 {
		limit := constants.TopWordsDisplay
		if len(topics.TopWords) < limit {
			limit = len(topics.TopWords)
		}
		words := make([]string, 0, limit)
		for _, wc := range topics.TopWords[:limit] {
			words = append(words, wc.Word)
		}
		fmt.Fprintf(&b, "<strong>Key Terms:</strong> %s", strings.Join(words, ", "))
	}

	return b.String()
}

// EmptyBundle is the result for a window with no messages at all.
func (f *Formatter) EmptyBundle() InsightBundle {
	return InsightBundle{
		Problems:  EmptyProblems,
		Questions: EmptyQuestions,
		Trending:  EmptyTrending,
	}
}

// MarkdownToHTML converts the markdown subset used by summarizer output into
// HTML: bold, italic, line breaks and bullets.
func MarkdownToHTML(text string) string {
	if text == "" {
		return text
	}
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>$1</em>")
	text = strings.ReplaceAll(text, "\n", "<br>")
	return bulletPattern.ReplaceAllString(text, "&bull; ")
}

// truncate limits text to a character budget. Slicing runes, not bytes, so a
// multi-byte character at the boundary is never split.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}

package analysis

import (
	"context"
	"strings"
)

// Classifier applies the taxonomy to a single message. All methods are pure:
// same text in, same labels out, regardless of call order or history.
type Classifier struct {
	tax        Taxonomy
	normalizer *Normalizer
}

func NewClassifier(tax Taxonomy, normalizer *Normalizer) *Classifier {
	return &Classifier{tax: tax, normalizer: normalizer}
}

func (c *Classifier) IsProblem(text string) bool {
	lower := strings.ToLower(text)
	return containsAny(lower, c.tax.ProblemKeywords)
}

func (c *Classifier) IsQuestion(text string) bool {
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		return true
	}
	lower := strings.ToLower(text)
	return containsAny(lower, c.tax.QuestionKeywords)
}

// Urgency scores text on a 1..5 scale: base 1, +2 for any urgency keyword,
// +1 for blocking or stuck, +1 for a question mark, clamped at 5.
func (c *Classifier) Urgency(text string) int {
	lower := strings.ToLower(text)
	score := 1

	if containsAny(lower, c.tax.UrgencyKeywords) {
		score += 2
	}
	if strings.Contains(lower, "blocking") || strings.Contains(lower, "stuck") {
		score++
	}
	if strings.Contains(lower, "?") {
		score++
	}

	if score > 5 {
		return 5
	}
	return score
}

func (c *Classifier) ProblemCategory(text string) string {
	return categorize(strings.ToLower(text), c.tax.ProblemCategories, DefaultProblemCategory)
}

func (c *Classifier) QuestionCategory(text string) string {
	return categorize(strings.ToLower(text), c.tax.QuestionCategories, DefaultQuestionCategory)
}

// Classify produces the full label set for one message in a single pass.
func (c *Classifier) Classify(ctx context.Context, msg ClassifiedMessage) ClassifiedMessage {
	text := msg.Message.Body

	msg.IsProblem = c.IsProblem(text)
	msg.IsQuestion = c.IsQuestion(text)
	msg.Urgency = c.Urgency(text)

	if msg.IsProblem {
		msg.ProblemCategory = c.ProblemCategory(text)
	}
	if msg.IsQuestion {
		msg.QuestionCategory = c.QuestionCategory(text)
	}
	if msg.IsProblem || msg.IsQuestion {
		msg.Context = c.normalizer.ExtractContext(ctx, text)
	}

	return msg
}

func categorize(lower string, rules []CategoryRule, fallback string) string {
	for _, rule := range rules {
		if containsAny(lower, rule.Keywords) {
			return rule.Category
		}
	}
	return fallback
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

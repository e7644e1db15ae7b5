package analysis

// Taxonomy holds the keyword tables driving classification. The tables are
// configuration data, not code: the classifier never hardcodes a keyword.
type Taxonomy struct {
	ProblemKeywords  []string
	QuestionKeywords []string
	UrgencyKeywords  []string
	StopWords        map[string]struct{}

	// Category rules are evaluated in order; the first match wins.
	ProblemCategories  []CategoryRule
	QuestionCategories []CategoryRule

	PositiveEmojis map[rune]struct{}
	NegativeEmojis map[rune]struct{}

	Themes []ThemeRule
}

// CategoryRule maps any-of keyword containment to a category label.
type CategoryRule struct {
	Keywords []string
	Category string
}

// ThemeRule is a fixed recurring-topic predicate with display metadata.
type ThemeRule struct {
	Keywords    []string
	Name        string
	Description string
	Urgency     string
}

func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		ProblemKeywords: []string{
			"problem", "issue", "error", "bug", "stuck", "help", "broken",
			"not working", "failed", "trouble", "difficult", "confused",
			"timeout", "connection", "authentication", "deployment", "database",
		},
		QuestionKeywords: []string{
			"how", "what", "where", "when", "why", "can", "could", "would",
			"should", "is there", "does", "do you", "help me", "explain",
		},
		UrgencyKeywords: []string{
			"urgent", "asap", "immediately", "critical", "blocking", "stuck",
			"deadline", "emergency", "priority",
		},
		StopWords: stringSet(
			"the", "and", "for", "are", "but", "not", "you", "all", "can",
			"had", "her", "was", "one", "our", "out", "day", "get", "has",
			"him", "his", "how", "its", "may", "new", "now", "old", "see",
			"two", "who", "boy", "did", "man", "men", "put", "say", "she",
			"too", "use",
		),
		ProblemCategories: []CategoryRule{
			{Keywords: []string{"database", "connection", "timeout"}, Category: "Database/Infrastructure"},
			{Keywords: []string{"authentication", "login", "auth"}, Category: "Authentication"},
			{Keywords: []string{"deployment", "deploy", "hosting"}, Category: "Deployment"},
			{Keywords: []string{"problem", "statement", "understanding"}, Category: "Problem Understanding"},
			{Keywords: []string{"api", "endpoint", "request"}, Category: "API Issues"},
		},
		QuestionCategories: []CategoryRule{
			{Keywords: []string{"how", "tutorial", "guide"}, Category: "How-to"},
			{Keywords: []string{"what", "explain", "clarify"}, Category: "Clarification"},
			{Keywords: []string{"where", "find", "location"}, Category: "Resource Location"},
		},
		PositiveEmojis: runeSet("😂😄😃😀😊🙂😍🥳😎😁😅😆🎉"),
		NegativeEmojis: runeSet("😢😭😞😔😡😠😤😰😱😩😫😒😓😕"),
		Themes: []ThemeRule{
			{
				Keywords:    []string{"problem statement"},
				Name:        "Problem Statement Clarification",
				Description: "Multiple participants are struggling to understand the problem statement.",
				Urgency:     "high",
			},
			{
				Keywords:    []string{"authentication", "api", "auth", "login"},
				Name:        "API & Authentication Issues",
				Description: "Several teams are reporting problems with API authentication and general authentication flows.",
				Urgency:     "high",
			},
			{
				Keywords:    []string{"deployment", "deploy", "hosting", "database connection"},
				Name:        "Deployment & Infrastructure",
				Description: "Questions about deploying apps and database connection timeouts highlight infrastructure challenges.",
				Urgency:     "medium",
			},
		},
	}
}

const (
	DefaultProblemCategory  = "General Technical"
	DefaultQuestionCategory = "General Question"
)

func stringSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func runeSet(emojis string) map[rune]struct{} {
	s := make(map[rune]struct{})
	for _, r := range emojis {
		s[r] = struct{}{}
	}
	return s
}

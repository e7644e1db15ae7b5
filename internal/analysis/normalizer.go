package analysis

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"huddle/internal/constants"
)

var (
	mentionPattern   = regexp.MustCompile(`<@([A-Z0-9]+)>`)
	broadcastPattern = regexp.MustCompile(`<!(channel|here|everyone)>`)
)

// UserResolver maps a platform user ID to a display name. Implementations must
// always return a usable name; resolution failures surface as placeholders,
// never as errors.
type UserResolver interface {
	DisplayName(ctx context.Context, userID string) string
}

// Normalizer prepares raw message bodies for matching and display. Matching
// uses the lowercased form; display keeps the original casing with platform
// tokens replaced.
type Normalizer struct {
	resolver UserResolver
}

func NewNormalizer(resolver UserResolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Lower returns the case-folded form used for keyword containment checks.
func (n *Normalizer) Lower(text string) string {
	return strings.ToLower(text)
}

// Clean replaces mention and broadcast tokens with display names. Malformed
// token syntax is left verbatim.
func (n *Normalizer) Clean(ctx context.Context, text string) string {
	text = mentionPattern.ReplaceAllStringFunc(text, func(match string) string {
		userID := mentionPattern.FindStringSubmatch(match)[1]
		if n.resolver != nil {
			return n.resolver.DisplayName(ctx, userID)
		}
		return PlaceholderName(userID)
	})
	return broadcastPattern.ReplaceAllString(text, "@$1")
}

// ExtractContext builds the display context: the first two sentences longer
// than the minimum length, each capitalized. When no sentence qualifies, the
// first 100 characters of the cleaned text are used instead.
func (n *Normalizer) ExtractContext(ctx context.Context, text string) string {
	cleaned := n.Clean(ctx, text)

	sentences := strings.Split(cleaned, ".")
	var formatted []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) > constants.MinSentenceLength {
			formatted = append(formatted, capitalizeFirst(s))
			if len(formatted) == 2 {
				break
			}
		}
	}

	if len(formatted) > 0 {
		return strings.Join(formatted, ". ")
	}

	if runes := []rune(cleaned); len(runes) > constants.ProblemContextLimit {
		cleaned = string(runes[:constants.ProblemContextLimit])
	}
	return capitalizeFirst(cleaned)
}

// PlaceholderName derives the fallback display name from the last four
// characters of the user ID.
func PlaceholderName(userID string) string {
	if len(userID) > 4 {
		userID = userID[len(userID)-4:]
	}
	return "User " + userID
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	if unicode.IsUpper(runes[0]) {
		return text
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

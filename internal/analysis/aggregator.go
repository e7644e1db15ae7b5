package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"huddle/internal/constants"
	"huddle/pkg/models"
)

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Aggregator computes window-level rollups. Every method takes the message
// snapshot as input and derives its result in one pass; nothing is cached
// between calls.
type Aggregator struct {
	tax Taxonomy
}

func NewAggregator(tax Taxonomy) *Aggregator {
	return &Aggregator{tax: tax}
}

// TopWords counts alphabetic tokens of three or more letters across all
// bodies, minus stop words. Ties break by first-encountered order so repeated
// runs over the same window produce identical rankings.
func (a *Aggregator) TopWords(msgs []models.Message, n int) []WordCount {
	var bodies []string
	for _, m := range msgs {
		bodies = append(bodies, m.Body)
	}
	allText := strings.ToLower(strings.Join(bodies, " "))

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, word := range wordPattern.FindAllString(allText, -1) {
		if _, stop := a.tax.StopWords[word]; stop {
			continue
		}
		if _, seen := counts[word]; !seen {
			firstSeen[word] = order
			order++
		}
		counts[word]++
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return firstSeen[words[i].Word] < firstSeen[words[j].Word]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

// Themes evaluates the fixed theme predicates and emits only those with at
// least one matching message.
func (a *Aggregator) Themes(msgs []models.Message) []Theme {
	var themes []Theme
	for _, rule := range a.tax.Themes {
		count := 0
		for _, m := range msgs {
			if containsAny(strings.ToLower(m.Body), rule.Keywords) {
				count++
			}
		}
		if count > 0 {
			themes = append(themes, Theme{
				Name:        rule.Name,
				Description: rule.Description,
				Count:       count,
				Urgency:     rule.Urgency,
			})
		}
	}
	return themes
}

func (a *Aggregator) TeamActivity(msgs []models.Message) ActivitySummary {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, m := range msgs {
		author := m.Author
		if author == "" {
			author = "unknown"
		}
		if _, seen := counts[author]; !seen {
			firstSeen[author] = order
			order++
		}
		counts[author]++
	}

	users := make([]UserActivity, 0, len(counts))
	for author, count := range counts {
		users = append(users, UserActivity{Author: author, Count: count})
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Count != users[j].Count {
			return users[i].Count > users[j].Count
		}
		return firstSeen[users[i].Author] < firstSeen[users[j].Author]
	})

	if len(users) > constants.TopActiveUsers {
		users = users[:constants.TopActiveUsers]
	}

	level := "low"
	switch {
	case len(counts) > 3:
		level = "high"
	case len(counts) > 1:
		level = "medium"
	}

	return ActivitySummary{
		MostActiveUsers:  users,
		TotalActiveUsers: len(counts),
		ActivityLevel:    level,
	}
}

// Mood tallies positive and negative emoji occurrences and labels the window.
func (a *Aggregator) Mood(msgs []models.Message) MoodSummary {
	emojiCounts := make(map[string]int)
	positives, negatives := 0, 0

	for _, m := range msgs {
		for _, r := range m.Body {
			if _, ok := a.tax.PositiveEmojis[r]; ok {
				emojiCounts[string(r)]++
				positives++
			} else if _, ok := a.tax.NegativeEmojis[r]; ok {
				emojiCounts[string(r)]++
				negatives++
			}
		}
	}

	var mood string
	switch {
	case positives == 0 && negatives == 0:
		mood = "😐 Neutral"
	case positives > negatives:
		mood = "😃 Happy"
	case negatives > positives:
		mood = "😡 Stressed"
	default:
		mood = "🙂 Balanced"
	}

	return MoodSummary{
		EmojiCounts: emojiCounts,
		Positives:   positives,
		Negatives:   negatives,
		Mood:        mood,
	}
}

// Buckets groups classified messages into fixed-width intervals keyed by the
// truncated timestamp. Messages without a parseable timestamp land in the
// current interval.
func (a *Aggregator) Buckets(msgs []ClassifiedMessage, width time.Duration) []TimeBucket {
	if width <= 0 {
		width = time.Duration(constants.DefaultBucketMinutes) * time.Minute
	}

	byKey := make(map[string]*TimeBucket)
	var keys []string

	for _, cm := range msgs {
		t, ok := cm.Message.Time()
		if !ok {
			t = time.Now()
		}
		key := t.Truncate(width).Format("2006-01-02 15:04")

		b, exists := byKey[key]
		if !exists {
			b = &TimeBucket{Bucket: key}
			byKey[key] = b
			keys = append(keys, key)
		}
		b.Total++
		if cm.IsProblem {
			b.Problems++
		}
		if cm.IsQuestion {
			b.Questions++
		}
	}

	sort.Strings(keys)
	buckets := make([]TimeBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byKey[k])
	}
	return buckets
}

func (a *Aggregator) Stats(msgs []ClassifiedMessage) WindowStats {
	stats := WindowStats{LastUpdated: time.Now()}
	if len(msgs) == 0 {
		return stats
	}

	authors := make(map[string]struct{})
	totalLength := 0

	for _, cm := range msgs {
		authors[cm.Message.Author] = struct{}{}
		totalLength += len(cm.Message.Body)
		if cm.IsQuestion {
			stats.QuestionsCount++
		}
		if cm.IsProblem {
			stats.ProblemsCount++
		}
	}

	stats.TotalMessages = len(msgs)
	stats.UniqueUsers = len(authors)
	stats.AvgMessageLength = math.Round(float64(totalLength)/float64(len(msgs))*10) / 10
	return stats
}

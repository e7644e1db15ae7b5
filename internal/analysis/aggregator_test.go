package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/pkg/models"
)

func msg(author, body, ts string) models.Message {
	return models.Message{Author: author, Body: body, TS: ts}
}

func TestAggregator_TopWords(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	msgs := []models.Message{
		msg("U1", "deploy deploy deploy", ""),
		msg("U2", "database deploy database", ""),
		msg("U3", "the and for are", ""),
	}

	words := a.TopWords(msgs, 10)

	require.Len(t, words, 2)
	assert.Equal(t, WordCount{Word: "deploy", Count: 4}, words[0])
	assert.Equal(t, WordCount{Word: "database", Count: 2}, words[1])
}

func TestAggregator_TopWords_TieBreakByFirstSeen(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	msgs := []models.Message{
		msg("U1", "zebra apple zebra apple", ""),
	}

	words := a.TopWords(msgs, 10)

	require.Len(t, words, 2)
	assert.Equal(t, "zebra", words[0].Word)
	assert.Equal(t, "apple", words[1].Word)
}

func TestAggregator_TopWords_SkipsShortAndNonAlpha(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	words := a.TopWords([]models.Message{msg("U1", "go is ok x1 but kubernetes rules", "")}, 10)

	got := make(map[string]bool)
	for _, w := range words {
		got[w.Word] = true
	}
	assert.False(t, got["go"])
	assert.False(t, got["x1"])
	assert.True(t, got["kubernetes"])
	assert.True(t, got["rules"])
}

func TestAggregator_Themes(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	msgs := []models.Message{
		msg("U1", "the problem statement is confusing", ""),
		msg("U2", "api auth keeps failing", ""),
		msg("U3", "also login is broken", ""),
	}

	themes := a.Themes(msgs)

	require.Len(t, themes, 2)
	assert.Equal(t, "Problem Statement Clarification", themes[0].Name)
	assert.Equal(t, 1, themes[0].Count)
	assert.Equal(t, "high", themes[0].Urgency)
	assert.Equal(t, "API & Authentication Issues", themes[1].Name)
	assert.Equal(t, 2, themes[1].Count)
}

func TestAggregator_Themes_EmptyWindow(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())
	assert.Empty(t, a.Themes(nil))
}

func TestAggregator_TeamActivity(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	msgs := []models.Message{
		msg("alice", "one", ""),
		msg("bob", "two", ""),
		msg("alice", "three", ""),
		msg("", "anonymous", ""),
	}

	activity := a.TeamActivity(msgs)

	assert.Equal(t, 3, activity.TotalActiveUsers)
	assert.Equal(t, "medium", activity.ActivityLevel)
	require.NotEmpty(t, activity.MostActiveUsers)
	assert.Equal(t, UserActivity{Author: "alice", Count: 2}, activity.MostActiveUsers[0])
	// missing author is tallied under "unknown"
	assert.Equal(t, "unknown", activity.MostActiveUsers[2].Author)
}

func TestAggregator_TeamActivity_Levels(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	assert.Equal(t, "low", a.TeamActivity([]models.Message{msg("a", "x", "")}).ActivityLevel)
	assert.Equal(t, "high", a.TeamActivity([]models.Message{
		msg("a", "x", ""), msg("b", "x", ""), msg("c", "x", ""), msg("d", "x", ""),
	}).ActivityLevel)
}

func TestAggregator_Mood(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	neutral := a.Mood([]models.Message{msg("U1", "no emojis here", "")})
	assert.Equal(t, "😐 Neutral", neutral.Mood)
	assert.Empty(t, neutral.EmojiCounts)

	happy := a.Mood([]models.Message{msg("U1", "shipped it 🎉🎉 😄", "")})
	assert.Equal(t, "😃 Happy", happy.Mood)
	assert.Equal(t, 3, happy.Positives)
	assert.Equal(t, 2, happy.EmojiCounts["🎉"])

	stressed := a.Mood([]models.Message{msg("U1", "😭😭 🎉", "")})
	assert.Equal(t, "😡 Stressed", stressed.Mood)

	balanced := a.Mood([]models.Message{msg("U1", "😄😭", "")})
	assert.Equal(t, "🙂 Balanced", balanced.Mood)
}

func TestAggregator_Buckets(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	base := time.Date(2026, 8, 30, 10, 3, 0, 0, time.Local)
	later := base.Add(7 * time.Minute)

	classified := []ClassifiedMessage{
		{Message: msg("U1", "database error", tsOf(base)), IsProblem: true},
		{Message: msg("U2", "is it down?", tsOf(base.Add(time.Minute))), IsQuestion: true},
		{Message: msg("U3", "restarting", tsOf(later))},
	}

	buckets := a.Buckets(classified, 5*time.Minute)

	require.Len(t, buckets, 2)
	assert.Equal(t, 2, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Problems)
	assert.Equal(t, 1, buckets[0].Questions)
	assert.Equal(t, 1, buckets[1].Total)
	assert.True(t, buckets[0].Bucket < buckets[1].Bucket)
}

func TestAggregator_Buckets_UnparseableTimestamp(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	buckets := a.Buckets([]ClassifiedMessage{
		{Message: msg("U1", "no ts", "")},
		{Message: msg("U2", "bad ts", "not-a-number")},
	}, 5*time.Minute)

	// both land in the current interval
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Total)
}

func TestAggregator_Stats(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	classified := []ClassifiedMessage{
		{Message: msg("U1", "abcd", ""), IsProblem: true},
		{Message: msg("U2", "abcdefg", ""), IsQuestion: true},
		{Message: msg("U1", "ab", "")},
	}

	stats := a.Stats(classified)

	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 2, stats.UniqueUsers)
	assert.Equal(t, 1, stats.ProblemsCount)
	assert.Equal(t, 1, stats.QuestionsCount)
	// (4+7+2)/3 = 4.333 rounded to one decimal
	assert.Equal(t, 4.3, stats.AvgMessageLength)
	assert.False(t, stats.LastUpdated.IsZero())
}

func TestAggregator_Stats_EmptyWindow(t *testing.T) {
	a := NewAggregator(DefaultTaxonomy())

	stats := a.Stats(nil)

	assert.Equal(t, 0, stats.TotalMessages)
	assert.Equal(t, 0.0, stats.AvgMessageLength)
	assert.False(t, stats.LastUpdated.IsZero())
}

func tsOf(t time.Time) string {
	return fmt.Sprintf("%d.000000", t.Unix())
}

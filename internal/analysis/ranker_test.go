package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/pkg/models"
)

func TestRanker_RankProblems_UrgencyDescStable(t *testing.T) {
	r := NewRanker()

	classified := []ClassifiedMessage{
		{Message: msg("U1", "a", ""), IsProblem: true, Urgency: 2},
		{Message: msg("U2", "b", ""), IsProblem: true, Urgency: 5},
		{Message: msg("U3", "c", ""), IsProblem: true, Urgency: 2},
		{Message: msg("U4", "d", ""), IsQuestion: true, Urgency: 5},
	}

	ranked := r.RankProblems(classified)

	require.Len(t, ranked, 3)
	assert.Equal(t, "U2", ranked[0].Message.Author)
	// equal urgency keeps window order
	assert.Equal(t, "U1", ranked[1].Message.Author)
	assert.Equal(t, "U3", ranked[2].Message.Author)
}

func TestRanker_RankProblems_TopFive(t *testing.T) {
	r := NewRanker()

	var classified []ClassifiedMessage
	for i := 0; i < 8; i++ {
		classified = append(classified, ClassifiedMessage{
			Message: msg("U", "x", ""), IsProblem: true, Urgency: 1,
		})
	}

	assert.Len(t, r.RankProblems(classified), 5)
}

func TestRanker_RankQuestions_OriginalOrder(t *testing.T) {
	r := NewRanker()

	classified := []ClassifiedMessage{
		{Message: msg("U1", "q1", ""), IsQuestion: true, Urgency: 1},
		{Message: msg("U2", "p", ""), IsProblem: true, Urgency: 5},
		{Message: msg("U3", "q2", ""), IsQuestion: true, Urgency: 5},
	}

	questions := r.RankQuestions(classified)

	require.Len(t, questions, 2)
	assert.Equal(t, "U1", questions[0].Message.Author)
	assert.Equal(t, "U3", questions[1].Message.Author)
}

func TestRanker_Search_OverlapScore(t *testing.T) {
	r := NewRanker()

	msgs := []models.Message{
		msg("U1", "the deploy failed on staging", "3.0"),
		msg("U2", "deploy went fine", "2.0"),
		msg("U3", "lunch anyone", "1.0"),
	}

	hits := r.Search(msgs, "deploy failed", 5)

	require.Len(t, hits, 2)
	assert.Equal(t, "U1", hits[0].Message.Author)
	assert.Equal(t, 2, hits[0].Score)
	assert.Equal(t, "U2", hits[1].Message.Author)
	assert.Equal(t, 1, hits[1].Score)
}

func TestRanker_Search_NoOverlapReturnsRecent(t *testing.T) {
	r := NewRanker()

	msgs := []models.Message{
		msg("U1", "alpha", "1.0"),
		msg("U2", "beta", "3.0"),
		msg("U3", "gamma", "2.0"),
	}

	hits := r.Search(msgs, "zzz", 2)

	require.Len(t, hits, 2)
	assert.Equal(t, "U2", hits[0].Message.Author)
	assert.Equal(t, "U3", hits[1].Message.Author)
	assert.Zero(t, hits[0].Score)
}

func TestRanker_Search_RecentFallbackParsesTimestamps(t *testing.T) {
	r := NewRanker()

	// "1000.1" is newer than "999.5" even though it sorts lower as a string
	msgs := []models.Message{
		msg("U1", "alpha", "999.5"),
		msg("U2", "beta", "1000.1"),
		msg("U3", "gamma", ""),
	}

	hits := r.Search(msgs, "zzz", 5)

	require.Len(t, hits, 3)
	assert.Equal(t, "U2", hits[0].Message.Author)
	assert.Equal(t, "U1", hits[1].Message.Author)
	// unparseable timestamps sort last
	assert.Equal(t, "U3", hits[2].Message.Author)
}

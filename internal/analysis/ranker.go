package analysis

import (
	"sort"
	"strings"

	"huddle/internal/constants"
	"huddle/pkg/models"
)

// Ranker orders classified messages for presentation. It never re-derives
// labels; it only filters and sorts what the classifier produced.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// RankProblems returns the top problems, most urgent first. The sort is
// stable so equally urgent problems keep their window order.
func (r *Ranker) RankProblems(msgs []ClassifiedMessage) []ClassifiedMessage {
	var problems []ClassifiedMessage
	for _, cm := range msgs {
		if cm.IsProblem {
			problems = append(problems, cm)
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Urgency > problems[j].Urgency
	})

	if len(problems) > constants.TopProblems {
		problems = problems[:constants.TopProblems]
	}
	return problems
}

// RankQuestions returns the first questions in window order. Grouping by
// category is a display concern handled by the formatter.
func (r *Ranker) RankQuestions(msgs []ClassifiedMessage) []ClassifiedMessage {
	var questions []ClassifiedMessage
	for _, cm := range msgs {
		if cm.IsQuestion {
			questions = append(questions, cm)
			if len(questions) == constants.TopQuestions {
				break
			}
		}
	}
	return questions
}

// Search scores messages by keyword overlap with the query. With no overlap
// anywhere, the most recent messages are returned with zero scores.
func (r *Ranker) Search(msgs []models.Message, query string, topK int) []ScoredMessage {
	if topK <= 0 {
		topK = constants.TopProblems
	}

	queryWords := wordSet(strings.ToLower(query))

	var scored []ScoredMessage
	for _, m := range msgs {
		msgWords := wordSet(strings.ToLower(m.Body))
		overlap := 0
		for w := range queryWords {
			if _, ok := msgWords[w]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			scored = append(scored, ScoredMessage{Message: m, Score: overlap})
		}
	}

	if len(scored) == 0 {
		recent := make([]models.Message, len(msgs))
		copy(recent, msgs)
		sort.SliceStable(recent, func(i, j int) bool {
			return moreRecent(recent[i], recent[j])
		})
		if len(recent) > topK {
			recent = recent[:topK]
		}
		for _, m := range recent {
			scored = append(scored, ScoredMessage{Message: m})
		}
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// moreRecent orders by parsed timestamp, newest first. Comparing the decimal
// strings directly would misorder timestamps of different widths. Messages
// with unparseable timestamps sort last.
func moreRecent(a, b models.Message) bool {
	at, aok := a.Time()
	bt, bok := b.Time()
	if aok != bok {
		return aok
	}
	return at.After(bt)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

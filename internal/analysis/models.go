package analysis

import (
	"time"

	"huddle/pkg/models"
)

// ClassifiedMessage pairs a source message with its derived labels. It is
// produced once per message per analysis pass and never mutated afterwards.
type ClassifiedMessage struct {
	Message          models.Message `json:"message"`
	IsQuestion       bool           `json:"is_question"`
	IsProblem        bool           `json:"is_problem"`
	Urgency          int            `json:"urgency"`
	ProblemCategory  string         `json:"problem_category,omitempty"`
	QuestionCategory string         `json:"question_category,omitempty"`
	Context          string         `json:"context"`
}

// Theme is a recurring topic matched by a fixed predicate.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Urgency     string `json:"urgency"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type UserActivity struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type ActivitySummary struct {
	MostActiveUsers  []UserActivity `json:"most_active_users"`
	TotalActiveUsers int            `json:"total_active_users"`
	ActivityLevel    string         `json:"activity_level"`
}

type MoodSummary struct {
	EmojiCounts map[string]int `json:"emoji_counts"`
	Positives   int            `json:"positives"`
	Negatives   int            `json:"negatives"`
	Mood        string         `json:"mood"`
}

type TimeBucket struct {
	Bucket    string `json:"bucket"`
	Total     int    `json:"total"`
	Problems  int    `json:"problems"`
	Questions int    `json:"questions"`
}

type WindowStats struct {
	TotalMessages    int       `json:"total_messages"`
	UniqueUsers      int       `json:"unique_users"`
	AvgMessageLength float64   `json:"avg_message_length"`
	QuestionsCount   int       `json:"questions_count"`
	ProblemsCount    int       `json:"problems_count"`
	LastUpdated      time.Time `json:"last_updated"`
}

type TrendingTopics struct {
	TopWords     []WordCount     `json:"top_words"`
	Themes       []Theme         `json:"themes"`
	TeamActivity ActivitySummary `json:"team_activity"`
}

// InsightBundle is the full analysis result: display strings per section plus
// the structured payload they were rendered from. Built fresh per query.
type InsightBundle struct {
	Problems  string `json:"problems"`
	Questions string `json:"questions"`
	Trending  string `json:"trending"`

	ProblemRecords  []ClassifiedMessage `json:"problem_records"`
	QuestionRecords []ClassifiedMessage `json:"question_records"`
	Topics          TrendingTopics      `json:"topics"`
}

// ScoredMessage is a keyword-overlap search hit.
type ScoredMessage struct {
	Message models.Message `json:"message"`
	Score   int            `json:"score"`
}

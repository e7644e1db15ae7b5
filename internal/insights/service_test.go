package insights

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/analysis"
	"huddle/internal/config"
	"huddle/internal/logger"
	"huddle/internal/store"
	"huddle/pkg/models"
)

func newTestService(window *store.Window) *Service {
	engine := analysis.NewEngine(analysis.DefaultTaxonomy(), nil, nil, logger.NopLogger())
	return NewService(window, engine, nil, config.AnalysisConfig{}, logger.NopLogger())
}

func recentTS(offset time.Duration) string {
	return fmt.Sprintf("%d.000000", time.Now().Add(offset).Unix())
}

func TestService_HandleEvent_AddsToWindow(t *testing.T) {
	window := store.NewWindow(10)
	svc := newTestService(window)

	err := svc.HandleEvent(context.Background(), models.ChatEvent{
		ID:      "1_U1",
		Message: models.Message{ID: "1_U1", Author: "U1", Body: "hello there", TS: recentTS(0)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, window.Len())
}

func TestService_Insights_EmptyWindow(t *testing.T) {
	svc := newTestService(store.NewWindow(10))

	bundle := svc.Insights(context.Background())

	assert.Equal(t, analysis.EmptyProblems, bundle.Problems)
}

func TestService_Insights_WithMessages(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "urgent: deploy is broken", TS: recentTS(-time.Minute)})
	window.Add(models.Message{Author: "U2", Body: "how do I rollback?", TS: recentTS(0)})
	svc := newTestService(window)

	bundle := svc.Insights(context.Background())

	assert.NotEmpty(t, bundle.ProblemRecords)
	assert.NotEmpty(t, bundle.QuestionRecords)
}

func TestService_RecentMessages_MostRecentFirst(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{ID: "a", Author: "U1", Body: "first", TS: recentTS(-2 * time.Minute)})
	window.Add(models.Message{ID: "b", Author: "U2", Body: "second", TS: recentTS(-time.Minute)})
	svc := newTestService(window)

	msgs := svc.RecentMessages(0, 0)

	require.Len(t, msgs, 2)
	assert.Equal(t, "b", msgs[0].ID)
	assert.Equal(t, "a", msgs[1].ID)
}

func TestService_RecentMessages_ParsedTimestampOrder(t *testing.T) {
	window := store.NewWindow(10)
	// "1000.1" is newer than "999.5" even though it sorts lower as a string
	window.Add(models.Message{ID: "old", Author: "U1", Body: "alpha", TS: "999.5"})
	window.Add(models.Message{ID: "new", Author: "U2", Body: "beta", TS: "1000.1"})
	svc := newTestService(window)

	msgs := svc.RecentMessages(1000000, 10)

	require.Len(t, msgs, 2)
	assert.Equal(t, "new", msgs[0].ID)
	assert.Equal(t, "old", msgs[1].ID)
}

func TestService_RecentMessages_HoursCutoff(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{ID: "old", Author: "U1", Body: "old", TS: recentTS(-3 * time.Hour)})
	window.Add(models.Message{ID: "new", Author: "U2", Body: "new", TS: recentTS(0)})
	svc := newTestService(window)

	msgs := svc.RecentMessages(1, 10)

	require.Len(t, msgs, 1)
	assert.Equal(t, "new", msgs[0].ID)
}

func TestService_RecentMessages_Limit(t *testing.T) {
	window := store.NewWindow(20)
	for i := 0; i < 10; i++ {
		window.Add(models.Message{ID: fmt.Sprintf("%d", i), Author: "U1", Body: "msg", TS: recentTS(0)})
	}
	svc := newTestService(window)

	assert.Len(t, svc.RecentMessages(0, 3), 3)
}

func TestService_Search_ChannelFilter(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "deploy failed", Channel: "ops", TS: recentTS(0)})
	window.Add(models.Message{Author: "U2", Body: "deploy done", Channel: "general", TS: recentTS(0)})
	svc := newTestService(window)

	results := svc.Search(SearchRequest{Query: "deploy", Channel: "ops", Limit: 10})

	require.Len(t, results, 1)
	assert.Equal(t, "ops", results[0].Message.Channel)
}

func TestService_Problems_Questions_Urgent(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "critical error, blocking the release", TS: recentTS(0)})
	window.Add(models.Message{Author: "U2", Body: "where is the runbook?", TS: recentTS(0)})
	window.Add(models.Message{Author: "U3", Body: "lunch time", TS: recentTS(0)})
	svc := newTestService(window)
	ctx := context.Background()

	problems := svc.Problems(ctx, 0, 0)
	require.Len(t, problems, 1)
	assert.Equal(t, "U1", problems[0].Message.Author)

	questions := svc.Questions(ctx, 0, 0)
	require.Len(t, questions, 1)
	assert.Equal(t, "U2", questions[0].Message.Author)

	urgent := svc.Urgent(ctx, 0, 0)
	require.Len(t, urgent, 1)
	assert.Equal(t, "U1", urgent[0].Message.Author)
	assert.GreaterOrEqual(t, urgent[0].Urgency, UrgentThreshold)
}

func TestService_Timeline(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "database error", TS: recentTS(0)})
	svc := newTestService(window)

	buckets := svc.Timeline(context.Background(), 5)

	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Problems)
}

func TestService_Mood(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "shipped 🎉", TS: recentTS(0)})
	svc := newTestService(window)

	mood := svc.Mood()

	assert.Equal(t, "😃 Happy", mood.Mood)
}

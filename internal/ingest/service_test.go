package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/constants"
	"huddle/internal/logger"
	"huddle/pkg/models"
)

type fakeProducer struct {
	published []models.ChatEvent
	topics    []string
	err       error
}

func (p *fakeProducer) Publish(_ context.Context, topic string, event models.ChatEvent) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.published = append(p.published, event)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func newTestService(producer *fakeProducer) *Service {
	return NewService(producer, "", logger.NopLogger())
}

func TestService_Admit_PublishesChatEvent(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)

	admitted, err := svc.Admit(context.Background(), MessageEvent{
		Type: "message", User: "U1", Text: "deploy failed", TS: "12.5", Channel: "ops",
	})

	require.NoError(t, err)
	assert.True(t, admitted)
	require.Len(t, producer.published, 1)

	event := producer.published[0]
	assert.Equal(t, constants.DefaultMessageTopic, producer.topics[0])
	assert.Equal(t, "12.5_U1", event.ID)
	assert.Equal(t, "slack", event.Source)
	assert.Equal(t, "U1", event.Message.Author)
	assert.Equal(t, "ops", event.Message.Channel)
	assert.NotEmpty(t, event.Metadata.TraceID)
	require.NotNil(t, event.Metadata.Admission)
}

func TestService_Admit_DefaultsChannel(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)

	_, err := svc.Admit(context.Background(), MessageEvent{User: "U1", Text: "hello there", TS: "1.0"})

	require.NoError(t, err)
	require.Len(t, producer.published, 1)
	assert.Equal(t, constants.DefaultChannel, producer.published[0].Message.Channel)
}

func TestService_Admit_GeneratesIDWithoutTimestamp(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)

	_, err := svc.Admit(context.Background(), MessageEvent{User: "U1", Text: "hello there"})

	require.NoError(t, err)
	require.Len(t, producer.published, 1)
	assert.NotEmpty(t, producer.published[0].ID)
	assert.NotContains(t, producer.published[0].ID, "_")
}

func TestService_Admit_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		event MessageEvent
	}{
		{"missing author", MessageEvent{Text: "hello there"}},
		{"empty body", MessageEvent{User: "U1", Text: "   "}},
		{"too short", MessageEvent{User: "U1", Text: "ok"}},
		{"bot message", MessageEvent{User: "U1", Text: "automated notice", BotID: "B1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := &fakeProducer{}
			svc := newTestService(producer)

			admitted, err := svc.Admit(context.Background(), tt.event)

			require.NoError(t, err)
			assert.False(t, admitted)
			assert.Empty(t, producer.published)
		})
	}
}

func TestService_Admit_PublishError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	svc := newTestService(producer)

	admitted, err := svc.Admit(context.Background(), MessageEvent{User: "U1", Text: "hello there", TS: "1.0"})

	require.Error(t, err)
	assert.False(t, admitted)
}

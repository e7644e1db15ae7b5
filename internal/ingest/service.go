package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"huddle/internal/broker"
	"huddle/internal/constants"
	"huddle/internal/logger"
	"huddle/pkg/errors"
	"huddle/pkg/logging"
	"huddle/pkg/metrics"
	"huddle/pkg/models"
)

// Service admits webhook message events and publishes them to the broker.
// Admission is intentionally strict and silent: rejected messages are counted
// and dropped, never errored back to the platform.
type Service struct {
	producer    broker.Producer
	topic       string
	serviceName string
	logger      logger.Logger
}

func NewService(producer broker.Producer, topic string, log logger.Logger) *Service {
	if topic == "" {
		topic = constants.DefaultMessageTopic
	}
	return &Service{
		producer:    producer,
		topic:       topic,
		serviceName: "ingest-service",
		logger:      log,
	}
}

// Admit validates a message event and publishes it. The returned bool says
// whether the event was admitted; an error is only returned for publish
// failures, not for rejections.
func (s *Service) Admit(ctx context.Context, event MessageEvent) (bool, error) {
	reason := s.rejectReason(event)
	if reason != "" {
		metrics.IngestEventsTotal.WithLabelValues("rejected_" + reason).Inc()
		s.logger.DebugwCtx(ctx, "Message rejected",
			"reason", reason,
			"author", event.User,
		)
		return false, nil
	}

	msg := s.buildMessage(event)
	chatEvent := models.ChatEvent{
		ID:        msg.ID,
		Source:    "slack",
		Timestamp: time.Now(),
		Message:   msg,
		Metadata: models.Metadata{
			TraceID:   uuid.NewString(),
			Admission: &models.AdmissionInfo{AdmittedAt: time.Now()},
		},
	}

	ctx = logging.WithTraceID(ctx, chatEvent.Metadata.TraceID)
	ctx = logging.WithMessageID(ctx, chatEvent.ID)
	ctx = logging.WithChannel(ctx, msg.Channel)

	if err := s.producer.Publish(ctx, s.topic, chatEvent); err != nil {
		metrics.IngestEventsTotal.WithLabelValues("publish_error").Inc()
		return false, errors.ErrServiceUnavailable.WithCause(err)
	}

	metrics.IngestEventsTotal.WithLabelValues("admitted").Inc()
	metrics.IncKafkaMessagesWritten(s.serviceName, s.topic)
	s.logger.InfowCtx(ctx, "Message admitted",
		"channel", msg.Channel,
		"author", msg.Author,
	)

	return true, nil
}

func (s *Service) rejectReason(event MessageEvent) string {
	if event.BotID != "" {
		return "bot"
	}
	if event.User == "" {
		return "no_author"
	}
	if strings.TrimSpace(event.Text) == "" {
		return "empty_body"
	}
	if len(event.Text) <= constants.MinMessageLength {
		return "too_short"
	}
	return ""
}

func (s *Service) buildMessage(event MessageEvent) models.Message {
	channel := event.Channel
	if channel == "" {
		channel = constants.DefaultChannel
	}

	id := event.TS + "_" + event.User
	if event.TS == "" {
		id = uuid.NewString()
	}

	return models.Message{
		ID:       id,
		Author:   event.User,
		Body:     event.Text,
		TS:       event.TS,
		Channel:  channel,
		ThreadTS: event.ThreadTS,
	}
}

package dedup

import (
	"context"
	"fmt"
	"time"

	"huddle/internal/config"
	"huddle/internal/constants"
	"huddle/internal/logger"
	"huddle/pkg/metrics"
	"huddle/pkg/models"
)

// Service decides whether a message was seen before. Identity is the message
// key (explicit ID or ts_author), marked in Redis with a TTL so the seen set
// ages out with the analysis window.
type Service struct {
	repo   Repository
	cfg    config.DeduplicationConfig
	logger logger.Logger
}

func NewService(repo Repository, cfg config.DeduplicationConfig, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: log,
	}
}

// Process returns true when the message is unique. On Redis errors the
// configured fallback applies: "allow" passes the message through, anything
// else rejects it with the underlying error.
func (s *Service) Process(ctx context.Context, msg models.Message) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := constants.CacheKeyPrefixSeen + msg.Key()
	ttl := time.Duration(s.cfg.TTLSeconds) * time.Second

	unique, err := s.repo.SetNX(ctx, key, time.Now().Unix(), ttl)
	if err != nil {
		if s.cfg.OnRedisError == constants.FallbackAllow {
			metrics.FallbackUsageTotal.WithLabelValues("dedup", "allow_on_error", "redis_error").Inc()
			s.logger.WarnwCtx(ctx, "Redis error during dedup check, allowing message (fallback: allow)",
				"error", err,
			)
			return true, nil
		}
		metrics.DedupMessagesTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("redis error during dedup check for message %s: %w", msg.Key(), err)
	}

	status := "duplicate"
	if unique {
		status = "unique"
	}
	metrics.DedupMessagesTotal.WithLabelValues(status).Inc()

	return unique, nil
}

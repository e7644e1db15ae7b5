package insights

import (
	"context"
	"sort"
	"time"

	"huddle/internal/analysis"
	"huddle/internal/config"
	"huddle/internal/constants"
	"huddle/internal/dedup"
	"huddle/internal/logger"
	"huddle/internal/store"
	"huddle/pkg/models"
)

// UrgentThreshold is the minimum urgency for the urgent-messages view.
const UrgentThreshold = 4

// Service answers query-API requests from an immutable snapshot of the
// message window. It also feeds the window from the broker, deduplicating on
// the way in.
type Service struct {
	window *store.Window
	engine *analysis.Engine
	dedup  *dedup.Service
	cfg    config.AnalysisConfig
	logger logger.Logger
}

func NewService(window *store.Window, engine *analysis.Engine, dedupSvc *dedup.Service, cfg config.AnalysisConfig, log logger.Logger) *Service {
	return &Service{
		window: window,
		engine: engine,
		dedup:  dedupSvc,
		cfg:    cfg,
		logger: log,
	}
}

// HandleEvent is the broker consumer entry point: dedup check, then window
// admission. Duplicates are dropped silently.
func (s *Service) HandleEvent(ctx context.Context, event models.ChatEvent) error {
	if s.dedup != nil {
		unique, err := s.dedup.Process(ctx, event.Message)
		if err != nil {
			return err
		}
		if !unique {
			s.logger.DebugwCtx(ctx, "Duplicate message dropped",
				"message_key", event.Message.Key(),
			)
			return nil
		}
	}

	s.window.Add(event.Message)
	return nil
}

func (s *Service) Insights(ctx context.Context) analysis.InsightBundle {
	return s.engine.Analyze(ctx, s.snapshot())
}

func (s *Service) Stats(ctx context.Context) analysis.WindowStats {
	return s.engine.Stats(ctx, s.snapshot())
}

// RecentMessages returns window messages newer than the cutoff, most recent
// first.
func (s *Service) RecentMessages(hours, limit int) []models.Message {
	if hours <= 0 {
		hours = s.windowHours()
	}
	if limit <= 0 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}

	msgs := s.window.SnapshotSince(time.Now().Add(-time.Duration(hours) * time.Hour))
	sort.SliceStable(msgs, func(i, j int) bool {
		// parsed comparison: the decimal strings misorder across widths
		ti, iok := msgs[i].Time()
		tj, jok := msgs[j].Time()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})

	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs
}

func (s *Service) Search(req SearchRequest) []analysis.ScoredMessage {
	msgs := s.snapshot()

	if req.Channel != "" {
		filtered := msgs[:0:0]
		for _, m := range msgs {
			if m.Channel == req.Channel {
				filtered = append(filtered, m)
			}
		}
		msgs = filtered
	}

	limit := req.Limit
	if limit <= 0 {
		limit = constants.TopProblems
	}
	return s.engine.Search(msgs, req.Query, limit)
}

func (s *Service) Problems(ctx context.Context, hours, limit int) []analysis.ClassifiedMessage {
	return s.filtered(ctx, hours, limit, func(cm analysis.ClassifiedMessage) bool {
		return cm.IsProblem
	})
}

func (s *Service) Questions(ctx context.Context, hours, limit int) []analysis.ClassifiedMessage {
	return s.filtered(ctx, hours, limit, func(cm analysis.ClassifiedMessage) bool {
		return cm.IsQuestion
	})
}

func (s *Service) Urgent(ctx context.Context, hours, limit int) []analysis.ClassifiedMessage {
	return s.filtered(ctx, hours, limit, func(cm analysis.ClassifiedMessage) bool {
		return cm.Urgency >= UrgentThreshold
	})
}

func (s *Service) Timeline(ctx context.Context, minutes int) []analysis.TimeBucket {
	if minutes <= 0 {
		minutes = s.bucketMinutes()
	}
	return s.engine.Timeline(ctx, s.snapshot(), time.Duration(minutes)*time.Minute)
}

func (s *Service) Mood() analysis.MoodSummary {
	return s.engine.Mood(s.snapshot())
}

func (s *Service) filtered(ctx context.Context, hours, limit int, keep func(analysis.ClassifiedMessage) bool) []analysis.ClassifiedMessage {
	if hours <= 0 {
		hours = s.windowHours()
	}
	if limit <= 0 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}

	msgs := s.window.SnapshotSince(time.Now().Add(-time.Duration(hours) * time.Hour))
	classified := s.engine.Classify(ctx, msgs)

	result := make([]analysis.ClassifiedMessage, 0, limit)
	for _, cm := range classified {
		if keep(cm) {
			result = append(result, cm)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

func (s *Service) snapshot() []models.Message {
	return s.window.SnapshotSince(time.Now().Add(-time.Duration(s.windowHours()) * time.Hour))
}

func (s *Service) windowHours() int {
	if s.cfg.WindowHours > 0 {
		return s.cfg.WindowHours
	}
	return constants.DefaultWindowHours
}

func (s *Service) bucketMinutes() int {
	if s.cfg.BucketMinutes > 0 {
		return s.cfg.BucketMinutes
	}
	return constants.DefaultBucketMinutes
}

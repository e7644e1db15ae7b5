package analysis

import (
	"context"
	"time"

	"huddle/internal/constants"
	"huddle/internal/logger"
	"huddle/pkg/errors"
	"huddle/pkg/metrics"
	"huddle/pkg/models"
)

// Summarizer rewrites a rendered section into friendlier prose. Any error
// means the template rendering stands; analysis never depends on it.
type Summarizer interface {
	Rewrite(ctx context.Context, section string, rendered string, bundle InsightBundle) (string, error)
}

// Engine ties the analysis stages together. It is stateless: every call
// operates on the snapshot it is given.
type Engine struct {
	classifier *Classifier
	aggregator *Aggregator
	ranker     *Ranker
	formatter  *Formatter
	summarizer Summarizer
	logger     logger.Logger
}

func NewEngine(tax Taxonomy, resolver UserResolver, summarizer Summarizer, log logger.Logger) *Engine {
	normalizer := NewNormalizer(resolver)
	return &Engine{
		classifier: NewClassifier(tax, normalizer),
		aggregator: NewAggregator(tax),
		ranker:     NewRanker(),
		formatter:  NewFormatter(),
		summarizer: summarizer,
		logger:     log,
	}
}

// Classify labels every message in the snapshot in a single pass. Rankers and
// rollups work from this shared result; nothing downstream re-derives labels.
func (e *Engine) Classify(ctx context.Context, msgs []models.Message) []ClassifiedMessage {
	classified := make([]ClassifiedMessage, 0, len(msgs))
	for _, m := range msgs {
		classified = append(classified, e.classifier.Classify(ctx, ClassifiedMessage{Message: m}))
	}
	return classified
}

// Analyze produces the full insight bundle for a window snapshot. It never
// panics: any failure in a stage degrades to the empty bundle.
func (e *Engine) Analyze(ctx context.Context, msgs []models.Message) (bundle InsightBundle) {
	start := time.Now()
	status := "success"

	defer func() {
		if r := recover(); r != nil {
			err := errors.RecoverPanic(r)
			e.logger.ErrorwCtx(ctx, "Panic recovered during analysis",
				"error", err,
				"window_size", len(msgs),
			)
			status = "panic"
			bundle = e.formatter.EmptyBundle()
		}
		metrics.ObserveAnalysisDuration(time.Since(start), status)
		metrics.AnalysisRequestsTotal.WithLabelValues(status).Inc()
	}()

	if len(msgs) == 0 {
		return e.formatter.EmptyBundle()
	}

	classified := e.Classify(ctx, msgs)

	problems := e.ranker.RankProblems(classified)
	questions := e.ranker.RankQuestions(classified)
	topics := TrendingTopics{
		TopWords:     e.aggregator.TopWords(msgs, constants.TopWords),
		Themes:       e.aggregator.Themes(msgs),
		TeamActivity: e.aggregator.TeamActivity(msgs),
	}

	bundle = InsightBundle{
		Problems:        e.formatter.FormatProblems(problems),
		Questions:       e.formatter.FormatQuestions(questions),
		Trending:        e.formatter.FormatTrending(topics),
		ProblemRecords:  problems,
		QuestionRecords: questions,
		Topics:          topics,
	}

	bundle = e.summarize(ctx, bundle)
	return bundle
}

// Stats computes window statistics over a classified snapshot.
func (e *Engine) Stats(ctx context.Context, msgs []models.Message) WindowStats {
	return e.aggregator.Stats(e.Classify(ctx, msgs))
}

// Timeline groups the snapshot into fixed-width buckets.
func (e *Engine) Timeline(ctx context.Context, msgs []models.Message, width time.Duration) []TimeBucket {
	return e.aggregator.Buckets(e.Classify(ctx, msgs), width)
}

func (e *Engine) Mood(msgs []models.Message) MoodSummary {
	return e.aggregator.Mood(msgs)
}

func (e *Engine) Search(msgs []models.Message, query string, topK int) []ScoredMessage {
	return e.ranker.Search(msgs, query, topK)
}

// summarize optionally rewrites each section. Rewrite failures keep the
// template text and count a fallback; the structured payload is untouched.
func (e *Engine) summarize(ctx context.Context, bundle InsightBundle) InsightBundle {
	if e.summarizer == nil {
		return bundle
	}

	sections := []struct {
		name     string
		rendered string
		target   *string
	}{
		{"problems", bundle.Problems, &bundle.Problems},
		{"questions", bundle.Questions, &bundle.Questions},
		{"trending", bundle.Trending, &bundle.Trending},
	}

	for _, s := range sections {
		rewritten, err := e.summarizer.Rewrite(ctx, s.name, s.rendered, bundle)
		if err != nil {
			metrics.SummarizerRequestsTotal.WithLabelValues("error").Inc()
			metrics.FallbackUsageTotal.WithLabelValues("analysis", "template", "summarizer_error").Inc()
			e.logger.WarnwCtx(ctx, "Summarizer failed, keeping template rendering",
				"section", s.name,
				"error", err,
			)
			continue
		}
		metrics.SummarizerRequestsTotal.WithLabelValues("success").Inc()
		*s.target = MarkdownToHTML(rewritten)
	}

	return bundle
}

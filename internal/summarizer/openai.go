package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"huddle/internal/analysis"
	"huddle/internal/config"
	"huddle/internal/logger"
)

// OpenAISummarizer rewrites a rendered insight section into friendlier prose.
// It is strictly optional: callers must treat every error as "keep the
// template text". The structured analysis never passes through the model.
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

func NewOpenAISummarizer(cfg config.SummarizerConfig, log logger.Logger) *OpenAISummarizer {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &OpenAISummarizer{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      log,
	}
}

func (s *OpenAISummarizer) Rewrite(ctx context.Context, section string, rendered string, bundle analysis.InsightBundle) (string, error) {
	payload, err := json.Marshal(sectionPayload(section, bundle))
	if err != nil {
		return "", fmt.Errorf("failed to marshal section payload: %w", err)
	}

	prompt := fmt.Sprintf(`You are summarizing team-chat analytics for a status dashboard.
Rewrite the "%s" section below as one or two short paragraphs of plain prose.
Keep every fact from the data; do not invent counts, names or topics.
Use markdown for emphasis only (**bold**, *italic*, bullet lines starting with "• ").

Data: %s

Current rendering: %s`, section, payload, rendered)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	rewritten := strings.TrimSpace(resp.Choices[0].Message.Content)
	if rewritten == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	return rewritten, nil
}

// sectionPayload narrows the bundle to the facts relevant for one section so
// the prompt stays small.
func sectionPayload(section string, bundle analysis.InsightBundle) interface{} {
	switch section {
	case "problems":
		return bundle.ProblemRecords
	case "questions":
		return bundle.QuestionRecords
	case "trending":
		return bundle.Topics
	default:
		return bundle
	}
}

var _ analysis.Summarizer = (*OpenAISummarizer)(nil)

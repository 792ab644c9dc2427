package services

import (
	"context"
	"strings"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/config"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Placeholder texts used when no summary can be generated. The run
// never fails because of the narrative step.
const (
	MissingKeyPlaceholder = "⚠️ OpenAI key missing – summary not generated.\n"
	FailedPlaceholder     = "⚠️ Summary generation failed – summary not generated.\n"
)

const summaryTimeout = 60 * time.Second

// ChatCompleter is the narrow slice of the OpenAI client the summarizer
// needs; tests substitute a deterministic stub.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService generates executive summaries from rendered KPI tables.
type AIService struct {
	client ChatCompleter
	cfg    config.OpenAIConfig
}

// NewAIService creates a new AI summary service. Without an API key the
// service still works and returns the missing-key placeholder.
func NewAIService(cfg config.OpenAIConfig) *AIService {
	s := &AIService{cfg: cfg}
	if cfg.APIKey != "" {
		s.client = openai.NewClient(cfg.APIKey)
	}
	return s
}

// NewAIServiceWithClient creates an AI service around an existing
// chat-completion client.
func NewAIServiceWithClient(client ChatCompleter, cfg config.OpenAIConfig) *AIService {
	return &AIService{client: client, cfg: cfg}
}

// Summarize requests a six-bullet executive summary for the given
// prompt. Best effort: any failure returns a placeholder instead of an
// error.
func (s *AIService) Summarize(ctx context.Context, prompt string) string {
	if s.client == nil {
		return MissingKeyPlaceholder
	}

	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: float32(s.cfg.Temperature),
		MaxTokens:   s.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("summary generation failed")
		return FailedPlaceholder
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Warn().Msg("summary generation returned an empty completion")
		return FailedPlaceholder
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// CallSummaryPrompt builds the call-report prompt around a rendered KPI
// table.
func CallSummaryPrompt(kpiTable string) string {
	return "You are Call-Intel, a data analyst for UCaaS admins.\n" +
		"Write a six-bullet executive summary with actionable points.\n\n" +
		"Metrics:\n" + kpiTable
}

// QueueSummaryPrompt builds the queue-report prompt around a rendered
// KPI table.
func QueueSummaryPrompt(kpiTable string) string {
	return "You are a Call Center Analytics Expert. " +
		"Write a six-bullet executive summary for call center management " +
		"focusing on service level, abandonment rates, agent performance, and actionable recommendations.\n\n" +
		"Queue Performance Data:\n" + kpiTable
}

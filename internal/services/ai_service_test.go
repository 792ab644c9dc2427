package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nycdan-n2p/call-intel-widget/internal/config"
	"github.com/nycdan-n2p/call-intel-widget/internal/services"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

type stubChatCompleter struct {
	content string
	err     error
	prompt  string
}

func (s *stubChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if len(req.Messages) > 0 {
		s.prompt = req.Messages[0].Content
	}
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestSummarize(t *testing.T) {
	stub := &stubChatCompleter{content: "  - bullet one\n- bullet two  "}
	svc := services.NewAIServiceWithClient(stub, config.OpenAIConfig{Model: "gpt-4o-mini"})

	got := svc.Summarize(context.Background(), services.CallSummaryPrompt("| Metric | Value |"))

	assert.Equal(t, "- bullet one\n- bullet two", got)
	assert.Contains(t, stub.prompt, "Call-Intel")
	assert.Contains(t, stub.prompt, "| Metric | Value |")
}

func TestSummarizeFailure(t *testing.T) {
	stub := &stubChatCompleter{err: errors.New("rate limited")}
	svc := services.NewAIServiceWithClient(stub, config.OpenAIConfig{})

	got := svc.Summarize(context.Background(), "prompt")

	assert.Equal(t, services.FailedPlaceholder, got)
}

func TestSummarizeEmptyCompletion(t *testing.T) {
	stub := &stubChatCompleter{content: "   "}
	svc := services.NewAIServiceWithClient(stub, config.OpenAIConfig{})

	got := svc.Summarize(context.Background(), "prompt")

	assert.Equal(t, services.FailedPlaceholder, got)
}

func TestSummarizeWithoutKey(t *testing.T) {
	svc := services.NewAIService(config.OpenAIConfig{})

	got := svc.Summarize(context.Background(), "prompt")

	assert.Equal(t, services.MissingKeyPlaceholder, got)
}

func TestQueueSummaryPrompt(t *testing.T) {
	prompt := services.QueueSummaryPrompt("| Metric | Value |")

	assert.Contains(t, prompt, "Call Center Analytics Expert")
	assert.Contains(t, prompt, "Queue Performance Data:\n| Metric | Value |")
}

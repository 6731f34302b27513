package sentiment

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/coinscope/pkg/config"
)

// default system prompt for headline sentiment
const defaultSystemPrompt = `You are a financial news analyst. You receive the title and short description of a cryptocurrency news article.
Decide whether the news is good (POSITIVE), bad (NEGATIVE) or neither (NEUTRAL) for the coin it is about.
Answer with exactly one word: POSITIVE, NEGATIVE or NEUTRAL.`

// LLMScorer asks an OpenAI-compatible chat model for the sentiment label
type LLMScorer struct {
	client    *openai.Client
	config    config.SentimentConfig
	systemMsg string
}

// NewLLMScorer creates a scorer for the configured endpoint and model
func NewLLMScorer(cfg config.SentimentConfig) *LLMScorer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &LLMScorer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// Score implements Scorer. The returned label is the first word of the model's answer, upper-cased.
func (s *LLMScorer) Score(ctx context.Context, text string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return parseLabel(resp.Choices[0].Message.Content), nil
}

// parseLabel picks the first word of the answer, models tend to add punctuation or explanations
func parseLabel(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	word := strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) })
	return strings.ToUpper(word)
}

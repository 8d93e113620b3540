// Package assistant wraps the chat-completion API used by the recipe chat endpoint.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/macro-app-api/pkg/circuitbreaker"
	"github.com/sashabaranov/go-openai"
)

// Sampling parameters are fixed for every completion.
const (
	maxTokens        = 1000
	temperature      = 0.7
	presencePenalty  = 0.6
	frequencyPenalty = 0.3
)

var ErrEmptyCompletion = errors.New("assistant: completion has no content")

// Completion is one stateless answer. ID doubles as the conversation identifier returned to clients.
type Completion struct {
	ID      string
	Content string
}

type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // Optional, defaults to the public OpenAI endpoint
	Timeout time.Duration
	Breaker *circuitbreaker.Config // Optional
	Logger  Logger                 // Optional
}

type Logger interface {
	Warn(msg string, args ...any)
}

type OpenAIClient struct {
	client  *openai.Client
	model   string
	breaker *circuitbreaker.Breaker
}

func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("assistant: api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}

	breakerCfg := *circuitbreaker.DefaultConfig()
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
	}
	breakerCfg.IsFailure = isUpstreamFailure
	if cfg.Logger != nil {
		logger := cfg.Logger
		breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
			logger.Warn("Chat completion circuit changed state", "from", from.String(), "to", to.String())
		}
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		breaker: circuitbreaker.New(&breakerCfg),
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	var completion Completion

	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			MaxTokens:        maxTokens,
			Temperature:      temperature,
			PresencePenalty:  presencePenalty,
			FrequencyPenalty: frequencyPenalty,
		})
		if err != nil {
			return fmt.Errorf("assistant: create chat completion: %w", err)
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return ErrEmptyCompletion
		}

		completion = Completion{ID: resp.ID, Content: resp.Choices[0].Message.Content}
		return nil
	})
	if err != nil {
		return Completion{}, err
	}

	return completion, nil
}

func (c *OpenAIClient) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// An empty answer or a caller that went away says nothing about upstream health.
func isUpstreamFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrEmptyCompletion) &&
		!errors.Is(err, context.Canceled)
}

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/birmacher/prompt-guide/common"
	"github.com/birmacher/prompt-guide/logger"
	"github.com/google/uuid"
)

const (
	defaultAnthropicModel = "claude-3-5-haiku-latest"

	// The Messages API has no server-side default for max_tokens
	defaultAnthropicMaxTokens = 1024
)

// AnthropicModel implements the LLM interface using Anthropic's Messages API
type AnthropicModel struct {
	client     anthropic.Client
	modelName  string
	maxTokens  int
	apiTimeout int // in seconds
}

// Compile-time check that AnthropicModel satisfies the LLM interface.
var _ LLM = (*AnthropicModel)(nil)

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		logger.Error("Anthropic API key cannot be empty")
		return nil, fmt.Errorf("Anthropic %w", ErrEmptyAPIKey)
	}

	s := settings{modelName: defaultAnthropicModel}
	applyOptions(&s, opts)
	if s.maxTokens <= 0 {
		s.maxTokens = defaultAnthropicMaxTokens
	}

	retryConfig := common.DefaultRetryConfig()
	retryConfig.RetryMax = s.retryMax
	retryConfig.HTTPClient = s.httpClient
	retryClient := common.NewRetryableClient(retryConfig)

	// Retries belong to the retryable transport, the SDK's own are switched off
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(retryClient.StandardClient()),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(s.baseURL))
	}

	model := &AnthropicModel{
		client:     anthropic.NewClient(clientOpts...),
		modelName:  s.modelName,
		maxTokens:  s.maxTokens,
		apiTimeout: s.apiTimeout,
	}

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Model returns the default model used when a request names none
func (a *AnthropicModel) Model() string {
	return a.modelName
}

// Prompt sends the prompt as a single user message and returns the reply text
func (a *AnthropicModel) Prompt(ctx context.Context, req Request) (Response, error) {
	model := a.modelName
	if req.Model != "" {
		model = req.Model
	}

	log := logger.With("request_id", uuid.NewString(), "provider", ProviderAnthropic, "model", model)

	ctx, cancel := withTimeout(ctx, a.apiTimeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(Temperature),
	}

	log.Debugw("Sending prompt to Anthropic", "prompt", req.Prompt)

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		log.Errorw("Message creation failed", "error", err)
		return Response{}, fmt.Errorf("failed to create message: %w", err)
	}

	var content string
	var hasText bool
	for _, block := range message.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += b.Text
			hasText = true
		}
	}
	if !hasText {
		log.Error("Anthropic response contained no text")
		return Response{}, errors.New("Anthropic response contained no text")
	}

	log.Debugw("Received completion", "stop_reason", message.StopReason,
		"input_tokens", message.Usage.InputTokens, "output_tokens", message.Usage.OutputTokens)

	return Response{
		Content: content,
		Model:   string(message.Model),
	}, nil
}

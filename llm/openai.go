package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/birmacher/prompt-guide/common"
	"github.com/birmacher/prompt-guide/logger"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAIModel implements the LLM interface using OpenAI's chat completions API
type OpenAIModel struct {
	client     *openai.Client
	modelName  string
	maxTokens  int
	apiTimeout int // in seconds
}

// Compile-time check that OpenAIModel satisfies the LLM interface.
var _ LLM = (*OpenAIModel)(nil)

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		logger.Error("OpenAI API key cannot be empty")
		return nil, fmt.Errorf("OpenAI %w", ErrEmptyAPIKey)
	}

	s := settings{modelName: defaultOpenAIModel}
	applyOptions(&s, opts)

	retryConfig := common.DefaultRetryConfig()
	retryConfig.RetryMax = s.retryMax
	retryConfig.HTTPClient = s.httpClient
	retryClient := common.NewRetryableClient(retryConfig)

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{
		Transport: &zeroTemperatureTransport{next: retryClient.StandardClient().Transport},
	}
	if s.baseURL != "" {
		config.BaseURL = s.baseURL
	}

	model := &OpenAIModel{
		client:     openai.NewClientWithConfig(config),
		modelName:  s.modelName,
		maxTokens:  s.maxTokens,
		apiTimeout: s.apiTimeout,
	}

	logger.Debugf("OpenAI client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Model returns the default model used when a request names none
func (o *OpenAIModel) Model() string {
	return o.modelName
}

// Prompt sends the prompt as a single user message and returns the first choice
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) (Response, error) {
	model := o.modelName
	if req.Model != "" {
		model = req.Model
	}

	log := logger.With("request_id", uuid.NewString(), "provider", ProviderOpenAI, "model", model)

	ctx, cancel := withTimeout(ctx, o.apiTimeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		MaxTokens: o.maxTokens,
		// Left at zero, go-openai omits it and zeroTemperatureTransport writes it back
		Temperature: Temperature,
	}

	log.Debugw("Sending prompt to OpenAI", "prompt", req.Prompt)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		log.Errorw("Chat completion failed", "error", err)
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Error("OpenAI response contained no choices")
		return Response{}, errors.New("OpenAI response contained no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Debugw("Received completion", "finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)

	return Response{
		Content: content,
		Model:   resp.Model,
	}, nil
}

// zeroTemperatureTransport sets "temperature": 0 on chat completion bodies.
// go-openai drops a zero temperature (omitempty) and the service would then
// sample at its default of 1.
type zeroTemperatureTransport struct {
	next http.RoundTripper
}

func (t *zeroTemperatureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil || req.Method != http.MethodPost || !strings.HasSuffix(req.URL.Path, "/chat/completions") {
		return t.next.RoundTrip(req)
	}

	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat completion request: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode chat completion request: %w", err)
	}
	fields["temperature"] = json.RawMessage("0")

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat completion request: %w", err)
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return t.next.RoundTrip(out)
}

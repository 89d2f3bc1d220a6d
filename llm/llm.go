package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/birmacher/prompt-guide/logger"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Temperature is the decoding temperature sent with every request.
// Zero asks the service for its most likely continuation.
const Temperature = 0

var (
	ErrEmptyAPIKey         = errors.New("API key cannot be empty")
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption  OptionType = "model"
	MaxTokensOption  OptionType = "max_tokens"
	APITimeoutOption OptionType = "api_timeout"
	BaseURLOption    OptionType = "base_url"
	HTTPClientOption OptionType = "http_client"
	RetryMaxOption   OptionType = "retry_max"
	APIKeyOption     OptionType = "api_key"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel sets the default model, used when a Request leaves Model empty
func WithModel(model string) Option {
	return Option{Type: ModelNameOption, Value: model}
}

// WithMaxTokens sets the max tokens, zero keeps the provider default
func WithMaxTokens(maxTokens int) Option {
	return Option{Type: MaxTokensOption, Value: maxTokens}
}

// WithAPITimeout sets the API timeout in seconds, zero disables it
func WithAPITimeout(timeout int) Option {
	return Option{Type: APITimeoutOption, Value: timeout}
}

// WithBaseURL points the provider at a different API endpoint
func WithBaseURL(baseURL string) Option {
	return Option{Type: BaseURLOption, Value: baseURL}
}

// WithHTTPClient sets the client the retryable transport sends through
func WithHTTPClient(client *http.Client) Option {
	return Option{Type: HTTPClientOption, Value: client}
}

// WithRetryMax sets how many times a failed request is retried, zero by default
func WithRetryMax(retryMax int) Option {
	return Option{Type: RetryMaxOption, Value: retryMax}
}

// WithAPIKey makes NewLLM use the given key instead of reading the environment
func WithAPIKey(apiKey string) Option {
	return Option{Type: APIKeyOption, Value: apiKey}
}

// Request is a single-turn completion request
type Request struct {
	// Model selects the hosted model, empty uses the provider default
	Model string
	// Prompt is sent unmodified as the only user message
	Prompt string
}

// Response represents the response from the LLM
type Response struct {
	// Content is the text of the first generated choice, verbatim
	Content string
	// Model is the model the service reports having used
	Model string
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(ctx context.Context, req Request) (Response, error)
}

// GetCompletion sends prompt to model through client and returns the generated text.
func GetCompletion(ctx context.Context, client LLM, prompt, model string) (string, error) {
	resp, err := client.Prompt(ctx, Request{Model: model, Prompt: prompt})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// settings is the option set shared by the providers
type settings struct {
	modelName  string
	maxTokens  int
	apiTimeout int // in seconds
	baseURL    string
	httpClient *http.Client
	retryMax   int
	apiKey     string
}

func applyOptions(s *settings, opts []Option) {
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				s.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok {
				s.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok {
				s.apiTimeout = timeout
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok {
				s.baseURL = baseURL
			}
		case HTTPClientOption:
			if client, ok := opt.Value.(*http.Client); ok {
				s.httpClient = client
			}
		case RetryMaxOption:
			if retryMax, ok := opt.Value.(int); ok && retryMax >= 0 {
				s.retryMax = retryMax
			}
		case APIKeyOption:
			if apiKey, ok := opt.Value.(string); ok {
				s.apiKey = apiKey
			}
		}
	}
}

// DefaultModel returns the model a provider uses when none is configured,
// or "" for an unknown provider.
func DefaultModel(providerName string) string {
	switch providerName {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderAnthropic:
		return defaultAnthropicModel
	}
	return ""
}

// APIKeyEnvVars returns the environment variables consulted for a provider's
// key, most specific first.
func APIKeyEnvVars(providerName string) []string {
	switch providerName {
	case ProviderOpenAI:
		return []string{"OPENAI_API_KEY", "LLM_API_KEY"}
	case ProviderAnthropic:
		return []string{"ANTHROPIC_API_KEY", "LLM_API_KEY"}
	}
	return []string{"LLM_API_KEY"}
}

func getAPIKey(providerName string) (string, error) {
	envVars := APIKeyEnvVars(providerName)
	for _, name := range envVars {
		if apiKey := os.Getenv(name); apiKey != "" {
			logger.Debugf("Using API key from %s", name)
			return apiKey, nil
		}
	}
	return "", fmt.Errorf("%w: none of %v is set", ErrEmptyAPIKey, envVars)
}

// NewLLM creates the client for providerName. The API key comes from a
// WithAPIKey option or, failing that, from the provider's environment variables.
func NewLLM(providerName string, opts ...Option) (LLM, error) {
	var s settings
	applyOptions(&s, opts)

	switch providerName {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerName)
	}

	apiKey := s.apiKey
	if apiKey == "" {
		var err error
		apiKey, err = getAPIKey(providerName)
		if err != nil {
			return nil, err
		}
	}

	var llmClient LLM
	var err error
	switch providerName {
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, opts...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, opts...)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("Using LLM provider: %s", providerName)
	return llmClient, nil
}

// withTimeout bounds ctx when a timeout is configured
func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

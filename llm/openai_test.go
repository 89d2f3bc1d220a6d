package llm_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/birmacher/prompt-guide/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summarizePrompt = "Summarize the text delimited by triple backticks into a single sentence. ```<some text>```"

func newTestOpenAI(t *testing.T, baseURL string, opts ...llm.Option) *llm.OpenAIModel {
	t.Helper()

	opts = append([]llm.Option{llm.WithBaseURL(baseURL + "/v1")}, opts...)
	client, err := llm.NewOpenAI("test-key", opts...)
	require.NoError(t, err)
	return client
}

func TestNewOpenAI_EmptyKey(t *testing.T) {
	client, err := llm.NewOpenAI("")
	assert.Nil(t, client)
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrEmptyAPIKey)
}

func TestNewOpenAI_DefaultModel(t *testing.T) {
	client, err := llm.NewOpenAI("test-key")
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", client.Model())
}

func TestNewOpenAI_CustomModel(t *testing.T) {
	client, err := llm.NewOpenAI("test-key", llm.WithModel("gpt-4o-mini"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.Model())
}

func TestOpenAIPrompt_SendsSingleUserTurn(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, "A single sentence."))
	client := newTestOpenAI(t, srv.URL)

	resp, err := client.Prompt(context.Background(), llm.Request{
		Model:  "gpt-3.5-turbo-equivalent",
		Prompt: summarizePrompt,
	})
	require.NoError(t, err)
	assert.Equal(t, "A single sentence.", resp.Content)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	got := reqs[0]

	assert.Equal(t, "/v1/chat/completions", got.Path)
	assert.Equal(t, "Bearer test-key", got.Header.Get("Authorization"))
	assert.Equal(t, "gpt-3.5-turbo-equivalent", got.Body["model"])

	messages, ok := got.Body["messages"].([]interface{})
	require.True(t, ok, "messages should be a list")
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, summarizePrompt, msg["content"])

	require.Contains(t, got.Body, "temperature")
	assert.Equal(t, float64(0), got.Body["temperature"])
	assert.Contains(t, got.RawBody, `"temperature":0`)

	_, hasMaxTokens := got.Body["max_tokens"]
	assert.False(t, hasMaxTokens, "max_tokens should be left to the service by default")
}

func TestOpenAIPrompt_ZeroTemperatureKeepsThePromptIntact(t *testing.T) {
	prompt := "Fence check: <tag> & \"quotes\" ```\n\tindented```"
	srv := newFakeService(t, openAIChatReply(t, "ok"), openAIChatReply(t, "ok"))
	client := newTestOpenAI(t, srv.URL, llm.WithMaxTokens(32), llm.WithRetryMax(1))

	_, err := client.Prompt(context.Background(), llm.Request{Prompt: prompt})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	body := reqs[0].Body
	assert.Equal(t, float64(0), body["temperature"])
	assert.Equal(t, float64(32), body["max_tokens"])

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, prompt, messages[0].(map[string]interface{})["content"])
}

func TestOpenAIPrompt_UsesDefaultModelWhenRequestHasNone(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, "ok"))
	client := newTestOpenAI(t, srv.URL, llm.WithModel("gpt-4o"))

	_, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "gpt-4o", reqs[0].Body["model"])
}

func TestOpenAIPrompt_MaxTokensOption(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, "ok"))
	client := newTestOpenAI(t, srv.URL, llm.WithMaxTokens(256))

	_, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, float64(256), reqs[0].Body["max_tokens"])
}

func TestOpenAIPrompt_ReturnsFirstChoiceVerbatim(t *testing.T) {
	first := "  {\n  \"book_id\": 1,\n  \"title\": \"The Lost Key\"\n}\n\n"
	srv := newFakeService(t, openAIChatReply(t, first, "second choice"))
	client := newTestOpenAI(t, srv.URL)

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: "Generate a list of three made-up book titles."})
	require.NoError(t, err)
	assert.Equal(t, first, resp.Content)
}

func TestOpenAIPrompt_EmptyContentIsReturned(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, ""))
	client := newTestOpenAI(t, srv.URL)

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Content)
}

func TestOpenAIPrompt_NoChoices(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t))
	client := newTestOpenAI(t, srv.URL)

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
	assert.Empty(t, resp.Content)
}

func TestOpenAIPrompt_AuthenticationErrorPropagates(t *testing.T) {
	srv := newFakeService(t, openAIErrorReply(t, http.StatusUnauthorized, "Incorrect API key provided", "invalid_api_key"))
	client := newTestOpenAI(t, srv.URL)

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Empty(t, resp.Content)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr), "expected *openai.APIError in chain, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
	assert.Len(t, srv.Requests(), 1)
}

func TestOpenAIPrompt_ServerErrorIsNotRetriedByDefault(t *testing.T) {
	srv := newFakeService(t, openAIErrorReply(t, http.StatusInternalServerError, "The server had an error", "server_error"))
	client := newTestOpenAI(t, srv.URL)

	_, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Len(t, srv.Requests(), 1)
}

func TestOpenAIPrompt_RetryMaxOption(t *testing.T) {
	unavailable := openAIErrorReply(t, http.StatusServiceUnavailable, "Overloaded", "server_error")
	unavailable.Header = map[string]string{"Retry-After": "0"}
	srv := newFakeService(t, unavailable, openAIChatReply(t, "recovered"))
	client := newTestOpenAI(t, srv.URL, llm.WithRetryMax(1))

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Content)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0].RawBody, reqs[1].RawBody, "a retry resends the same body")
	assert.Equal(t, float64(0), reqs[1].Body["temperature"])
}

func TestOpenAIPrompt_TransportFailurePropagates(t *testing.T) {
	transport := &failingTransport{}
	client, err := llm.NewOpenAI("test-key",
		llm.WithBaseURL("http://openai.invalid/v1"),
		llm.WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)

	resp, err := client.Prompt(context.Background(), llm.Request{Prompt: summarizePrompt})
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Empty(t, resp.Content)
	assert.Equal(t, 1, transport.Calls())
}

func TestOpenAIPrompt_CanceledContext(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, "never"))
	client := newTestOpenAI(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Prompt(ctx, llm.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenAIPrompt_IdenticalCallsYieldIdenticalText(t *testing.T) {
	srv := newFakeService(t, openAIChatReply(t, "deterministic"))
	client := newTestOpenAI(t, srv.URL)

	req := llm.Request{Model: "gpt-3.5-turbo", Prompt: summarizePrompt}
	first, err := client.Prompt(context.Background(), req)
	require.NoError(t, err)
	second, err := client.Prompt(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0].RawBody, reqs[1].RawBody)
}

package llm_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// capturedRequest is what the fake service saw for one call.
type capturedRequest struct {
	Path    string
	Header  http.Header
	RawBody string
	Body    map[string]interface{}
}

// reply is one canned HTTP response of the fake service.
type reply struct {
	Status int
	Header map[string]string
	Body   string
}

// fakeService replays replies in order, repeating the last one, and records
// every request it receives.
type fakeService struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []reply
	requests []capturedRequest
}

func newFakeService(t *testing.T, replies ...reply) *fakeService {
	t.Helper()

	fs := &fakeService{replies: replies}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		_ = json.Unmarshal(raw, &body)

		fs.mu.Lock()
		idx := len(fs.requests)
		fs.requests = append(fs.requests, capturedRequest{
			Path:    r.URL.Path,
			Header:  r.Header.Clone(),
			RawBody: string(raw),
			Body:    body,
		})
		if idx >= len(fs.replies) {
			idx = len(fs.replies) - 1
		}
		rep := fs.replies[idx]
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		for k, v := range rep.Header {
			w.Header().Set(k, v)
		}
		w.WriteHeader(rep.Status)
		_, _ = io.WriteString(w, rep.Body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeService) Requests() []capturedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make([]capturedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return string(b)
}

// openAIChatReply builds a chat.completion body with one choice per content.
func openAIChatReply(t *testing.T, contents ...string) reply {
	t.Helper()

	choices := make([]map[string]interface{}, 0, len(contents))
	for i, c := range contents {
		choices = append(choices, map[string]interface{}{
			"index":         i,
			"message":       map[string]interface{}{"role": "assistant", "content": c},
			"finish_reason": "stop",
		})
	}

	return reply{
		Status: http.StatusOK,
		Body: mustJSON(t, map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-3.5-turbo-0125",
			"choices": choices,
			"usage": map[string]interface{}{
				"prompt_tokens":     10,
				"completion_tokens": 5,
				"total_tokens":      15,
			},
		}),
	}
}

func openAIErrorReply(t *testing.T, status int, message, code string) reply {
	t.Helper()
	return reply{
		Status: status,
		Body: mustJSON(t, map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
				"type":    "invalid_request_error",
				"code":    code,
			},
		}),
	}
}

// anthropicMessageReply builds a Messages API body with one text block per text.
func anthropicMessageReply(t *testing.T, texts ...string) reply {
	t.Helper()

	content := make([]map[string]interface{}, 0, len(texts))
	for _, text := range texts {
		content = append(content, map[string]interface{}{"type": "text", "text": text})
	}

	return reply{
		Status: http.StatusOK,
		Body: mustJSON(t, map[string]interface{}{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"content":       content,
			"model":         "claude-3-5-haiku-20241022",
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"usage":         map[string]interface{}{"input_tokens": 10, "output_tokens": 5},
		}),
	}
}

func anthropicErrorReply(t *testing.T, status int, errType, message string) reply {
	t.Helper()
	return reply{
		Status: status,
		Body: mustJSON(t, map[string]interface{}{
			"type":  "error",
			"error": map[string]interface{}{"type": errType, "message": message},
		}),
	}
}

var errInjected = errors.New("injected transport failure")

// failingTransport fails every round trip without touching the network.
type failingTransport struct {
	mu    sync.Mutex
	calls int
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return nil, errInjected
}

func (f *failingTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

package llm

import (
	"context"
	"sync"
)

// MockResponse defines a canned response for the mock client.
type MockResponse struct {
	Content string
	Err     error
}

// MockLLM is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every request for later assertion.
type MockLLM struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
	idx       int
}

// Compile-time check that MockLLM satisfies the LLM interface.
var _ LLM = (*MockLLM)(nil)

// NewMockLLM creates a mock that returns the given responses in order.
func NewMockLLM(responses ...MockResponse) *MockLLM {
	return &MockLLM{responses: responses}
}

// Prompt returns the next canned response and records the request.
func (m *MockLLM) Prompt(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return Response{Model: req.Model}, nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return Response{}, r.Err
	}
	return Response{Content: r.Content, Model: req.Model}, nil
}

// Calls returns a copy of all requests received by this mock.
func (m *MockLLM) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

package llm

import (
	"context"
	"sync"
	"time"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// MockCall represents a recorded Complete call on the mock chat model.
type MockCall struct {
	Request   CompletionRequest
	Timestamp time.Time
}

// MockChatModel is a scripted ChatModel for testing. Responses are consumed
// in FIFO order; when the script is exhausted the model echoes the last
// user message, which keeps verifier pass-through tests trivial to read.
type MockChatModel struct {
	mu            sync.Mutex
	responses     []string
	completeError error
	calls         []MockCall
	healthStatus  types.HealthStatus
}

// NewMockChatModel creates a new mock chat model for testing.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{
		healthStatus: types.Healthy("mock chat model"),
	}
}

// Script queues responses to return from successive Complete calls.
func (m *MockChatModel) Script(responses ...string) *MockChatModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
	return m
}

// SetCompleteError configures all Complete calls to fail with err.
func (m *MockChatModel) SetCompleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeError = err
}

// SetHealthStatus configures the status returned by Health.
func (m *MockChatModel) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// Calls returns a copy of all recorded Complete calls.
func (m *MockChatModel) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Name returns the provider name.
func (m *MockChatModel) Name() string {
	return "mock"
}

// Complete returns the next scripted response, or echoes the last user
// message when the script is exhausted.
func (m *MockChatModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Request: req, Timestamp: time.Now()})

	if m.completeError != nil {
		return nil, m.completeError
	}

	if len(m.responses) > 0 {
		content := m.responses[0]
		m.responses = m.responses[1:]
		return &CompletionResponse{Content: content, Model: "mock"}, nil
	}

	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			return &CompletionResponse{Content: req.Messages[i].Content, Model: "mock"}, nil
		}
	}
	return &CompletionResponse{Content: "", Model: "mock"}, nil
}

// Health returns the configured health status.
func (m *MockChatModel) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthStatus
}

package graph

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Cypher    string
	Params    map[string]any
	Timestamp time.Time
}

// MockGraphClient is a mock implementation of GraphClient for testing.
// It provides configurable responses and tracks all method calls for
// verification. Results are registered with StubResult under a key that is
// matched against the Cypher text and string parameter values, so concurrent
// callers (e.g. the three index lookups of a hybrid search) each receive
// their own result set regardless of scheduling order.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	// Stubbed responses, checked in registration order.
	stubs []stub

	// Configurable errors
	queryError   error
	executeError error
	connectError error
	closeError   error
}

type stub struct {
	key    string
	result QueryResult
	err    error
}

// NewMockGraphClient creates a new mock graph client for testing.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
		calls:        make([]MockCall, 0),
	}
}

// StubResult registers a result for queries whose Cypher text or string
// parameter values contain key. Stubs are matched in registration order.
func (m *MockGraphClient) StubResult(key string, result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{key: key, result: result})
}

// StubError registers an error for queries matching key, in the same way
// as StubResult.
func (m *MockGraphClient) StubError(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{key: key, err: err})
}

// SetQueryError configures all Query calls to fail with err.
func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

// SetExecuteError configures all Execute calls to fail with err.
func (m *MockGraphClient) SetExecuteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeError = err
}

// SetConnectError configures Connect to fail with err.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetHealthStatus configures the status returned by Health.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// Calls returns a copy of all recorded calls.
func (m *MockGraphClient) Calls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallsTo returns the recorded calls for a single method.
func (m *MockGraphClient) CallsTo(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []MockCall
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect", "", nil)
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close", "", nil)
	if m.closeError != nil {
		return m.closeError
	}
	m.connected = false
	return nil
}

// Health returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthStatus
}

// Query records the call and returns the first matching stubbed result.
// Unmatched queries return an empty result, mirroring a store with no rows.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Query", cypher, params)

	if m.queryError != nil {
		return QueryResult{}, m.queryError
	}

	if s, ok := m.match(cypher, params); ok {
		return s.result, s.err
	}
	return QueryResult{}, nil
}

// Execute records the call and returns the first matching stubbed result.
func (m *MockGraphClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Execute", cypher, params)

	if m.executeError != nil {
		return QueryResult{}, m.executeError
	}

	if s, ok := m.match(cypher, params); ok {
		return s.result, s.err
	}
	return QueryResult{}, nil
}

// record appends a call. Caller must hold the lock.
func (m *MockGraphClient) record(method, cypher string, params map[string]any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Cypher:    cypher,
		Params:    params,
		Timestamp: time.Now(),
	})
}

// match finds the first stub whose key appears in the Cypher text or in a
// string parameter value. Caller must hold the lock.
func (m *MockGraphClient) match(cypher string, params map[string]any) (stub, bool) {
	for _, s := range m.stubs {
		if strings.Contains(cypher, s.key) {
			return s, true
		}
		for _, v := range params {
			if str, ok := v.(string); ok && strings.Contains(str, s.key) {
				return s, true
			}
		}
	}
	return stub{}, false
}

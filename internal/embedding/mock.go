package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// MockCall represents a recorded method call on the mock embedder.
type MockCall struct {
	Method    string
	Texts     []string
	Timestamp time.Time
}

// MockEmbedder is a mock implementation of Embedder for testing.
// It generates deterministic embeddings based on a SHA256 hash of the text,
// so the same text always produces the same unit-length vector.
type MockEmbedder struct {
	mu           sync.RWMutex
	dimensions   int
	model        string
	calls        []MockCall
	embedError   error
	healthStatus types.HealthStatus
}

// NewMockEmbedder creates a new mock embedder producing 384-dimensional
// vectors, matching the catalog's default index definitions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		dimensions:   384,
		model:        "mock-embedder",
		healthStatus: types.Healthy("mock embedder"),
	}
}

// WithDimensions overrides the vector dimension. Returns the embedder for
// construction chaining in tests.
func (m *MockEmbedder) WithDimensions(dims int) *MockEmbedder {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions = dims
	return m
}

// SetEmbedError configures all Embed and EmbedBatch calls to fail with err.
func (m *MockEmbedder) SetEmbedError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedError = err
}

// SetHealthStatus configures the status returned by Health.
func (m *MockEmbedder) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// Calls returns a copy of all recorded calls.
func (m *MockEmbedder) Calls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Embed generates a deterministic embedding for a single text.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Embed", Texts: []string{text}, Timestamp: time.Now()})
	if m.embedError != nil {
		return nil, m.embedError
	}
	return m.vectorFor(text), nil
}

// EmbedBatch generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "EmbedBatch", Texts: texts, Timestamp: time.Now()})
	if m.embedError != nil {
		return nil, m.embedError
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = m.vectorFor(text)
	}
	return vectors, nil
}

// Dimensions returns the configured vector dimension.
func (m *MockEmbedder) Dimensions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dimensions
}

// Model returns the mock model name.
func (m *MockEmbedder) Model() string {
	return m.model
}

// Health returns the configured health status.
func (m *MockEmbedder) Health(ctx context.Context) types.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthStatus
}

// vectorFor derives a unit-length vector from the text hash. Caller must
// hold the lock (uses m.dimensions).
func (m *MockEmbedder) vectorFor(text string) []float64 {
	hash := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(hash[:8]))
	rng := rand.New(rand.NewSource(seed))

	vector := make([]float64, m.dimensions)
	var norm float64
	for i := range vector {
		vector[i] = rng.NormFloat64()
		norm += vector[i] * vector[i]
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}

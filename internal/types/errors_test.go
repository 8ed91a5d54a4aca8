package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CatalogError
		want string
	}{
		{
			name: "without cause",
			err:  NewError(GRAPH_QUERY_FAILED, "query execution failed"),
			want: "[GRAPH_QUERY_FAILED] query execution failed",
		},
		{
			name: "with cause",
			err:  WrapError(EMBEDDING_FAILED, "embed request failed", errors.New("connection refused")),
			want: "[EMBEDDING_FAILED] embed request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCatalogError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(GRAPH_CONNECTION_FAILED, "connect failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestCatalogError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(SEARCH_FAILED, "hybrid search failed"))

	assert.ErrorIs(t, err, NewError(SEARCH_FAILED, "different message, same code"))
	assert.NotErrorIs(t, err, NewError(AGGREGATE_FAILED, "count failed"))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewError(LLM_COMPLETION_FAILED, "timeout"))

	assert.Equal(t, LLM_COMPLETION_FAILED, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain error")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(GRAPH_CONNECTION_FAILED, "transient")))
	assert.False(t, IsRetryable(NewError(GRAPH_QUERY_FAILED, "bad cypher")))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.True(t, IsRetryable(fmt.Errorf("outer: %w",
		WrapRetryableError(EMBEDDER_UNAVAILABLE, "503", errors.New("service unavailable")))))
}

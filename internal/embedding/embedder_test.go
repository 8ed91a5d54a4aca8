package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

func TestEmbedderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  EmbedderConfig
		wantErr bool
	}{
		{
			name:   "valid default",
			config: DefaultEmbedderConfig(),
		},
		{
			name:    "empty provider",
			config:  EmbedderConfig{Model: "all-minilm", Dimensions: 384},
			wantErr: true,
		},
		{
			name:    "empty model",
			config:  EmbedderConfig{Provider: "ollama", Dimensions: 384},
			wantErr: true,
		},
		{
			name:    "zero dimensions",
			config:  EmbedderConfig{Provider: "ollama", Model: "all-minilm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.EMBEDDER_INVALID_CONFIG, types.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMockEmbedder_Deterministic(t *testing.T) {
	mock := NewMockEmbedder()
	ctx := context.Background()

	v1, err := mock.Embed(ctx, "books about space")
	require.NoError(t, err)
	v2, err := mock.Embed(ctx, "books about space")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, 384)

	v3, err := mock.Embed(ctx, "romantic books")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v3)
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	mock := NewMockEmbedder().WithDimensions(8)

	v, err := mock.Embed(context.Background(), "The Quantum Key")
	require.NoError(t, err)
	require.Len(t, v, 8)

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestMockEmbedder_BatchMatchesSingle(t *testing.T) {
	mock := NewMockEmbedder()
	ctx := context.Background()

	single, err := mock.Embed(ctx, "Edge of Tomorrow")
	require.NoError(t, err)

	batch, err := mock.EmbedBatch(ctx, []string{"Edge of Tomorrow", "Mapping the Stars"})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, single, batch[0])
}

func TestMockEmbedder_ConfiguredError(t *testing.T) {
	mock := NewMockEmbedder()
	embedErr := errors.New("provider unreachable")
	mock.SetEmbedError(embedErr)

	_, err := mock.Embed(context.Background(), "anything")
	assert.ErrorIs(t, err, embedErr)

	_, err = mock.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, embedErr)

	assert.Len(t, mock.Calls(), 2)
}

func TestCreateEmbedder(t *testing.T) {
	emb, err := CreateEmbedder(EmbedderConfig{Provider: "mock", Model: "mock-embedder", Dimensions: 16})
	require.NoError(t, err)
	assert.Equal(t, 16, emb.Dimensions())

	_, err = CreateEmbedder(EmbedderConfig{Provider: "sentencepiece", Model: "x", Dimensions: 1})
	require.Error(t, err)
	assert.Equal(t, types.EMBEDDER_INVALID_CONFIG, types.CodeOf(err))

	_, err = CreateEmbedder(EmbedderConfig{})
	assert.Error(t, err)
}

package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

func TestService_FindSimilarTokens(t *testing.T) {
	ctx := context.Background()

	tokens := []token.Token{
		{ID: 1, Symbol: "SOL", Name: "Solana", Network: "solana"},
		{ID: 2, Symbol: "sol", Name: "Lowercase Sol", Network: "base"},
		{ID: 3, Symbol: "WSOL", Name: "Wrapped SOL", Network: "ethereum"},
		{ID: 4, Symbol: "SOLAMI", Name: "Solami", Network: "solana"},
		{ID: 5, Symbol: "BONK", Name: "Bonk", Network: "solana"},
	}
	repo := &mockTokenRepo{
		listAllFunc: func(_ context.Context) ([]token.Token, error) { return tokens, nil },
	}

	t.Run("exact and containment matches ranked by similarity", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		similar, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{Symbol: "SOL", MinSimilarity: 0.5})
		require.NoError(t, err)

		require.Len(t, similar, 4)
		// Case-insensitive exact matches first
		assert.Equal(t, int64(1), similar[0].TokenID)
		assert.Equal(t, 1.0, similar[0].Similarity)
		assert.Equal(t, int64(2), similar[1].TokenID)
		// "sol" in "wsol": 3/4
		assert.Equal(t, int64(3), similar[2].TokenID)
		assert.Equal(t, 0.75, similar[2].Similarity)
		// "sol" in "solami": 3/6
		assert.Equal(t, int64(4), similar[3].TokenID)
		assert.Equal(t, 0.5, similar[3].Similarity)
	})

	t.Run("threshold drops weak matches", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		similar, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{Symbol: "SOL", MinSimilarity: 0.7})
		require.NoError(t, err)

		require.Len(t, similar, 3)
		for _, s := range similar {
			assert.GreaterOrEqual(t, s.Similarity, 0.7)
		}
	})

	t.Run("excludes the queried token itself", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		similar, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{
			Symbol:         "SOL",
			ExcludeTokenID: 1,
			MinSimilarity:  0.5,
		})
		require.NoError(t, err)

		for _, s := range similar {
			assert.NotEqual(t, int64(1), s.TokenID)
		}
	})

	t.Run("unrelated symbols never match", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		similar, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{Symbol: "PEPE", MinSimilarity: 0.1})
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("empty symbol", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		_, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("out of range threshold", func(t *testing.T) {
		svc := newTestService(&mockReader{}, repo)

		_, err := svc.FindSimilarTokens(ctx, analytics.SimilarParams{Symbol: "SOL", MinSimilarity: 1.5})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

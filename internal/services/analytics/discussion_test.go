package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/sentiment"
	"delphi/pkg/errors"
)

func TestService_MostDiscussedTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks tokens with per-token sentiment", func(t *testing.T) {
		reader := &mockReader{
			topTokensFunc: func(_ context.Context, network string, _ analytics.Window, minMentions, limit int) ([]analytics.TokenMentions, error) {
				assert.Empty(t, network)
				assert.Equal(t, 5, minMentions)
				assert.Equal(t, 10, limit)
				return []analytics.TokenMentions{
					{TokenID: 1, Symbol: "SOL", Name: "Solana", Network: "solana", Mentions: 30},
					{TokenID: 2, Symbol: "BONK", Name: "Bonk", Network: "solana", Mentions: 12},
				}, nil
			},
			sentimentCountsFunc: func(_ context.Context, tokenIDs []int64, _ analytics.Window) ([]analytics.LabelCount, error) {
				if tokenIDs[0] == 1 {
					return []analytics.LabelCount{
						{Sentiment: sentiment.Positive, Count: 2},
						{Sentiment: sentiment.Negative, Count: 1},
					}, nil
				}
				return nil, nil
			},
		}
		svc := newTestService(reader, &mockTokenRepo{})

		result, err := svc.MostDiscussedTokens(ctx, analytics.MostDiscussedParams{})
		require.NoError(t, err)

		require.Len(t, result.Tokens, 2)
		sol := result.Tokens[0]
		assert.Equal(t, "SOL (solana)", sol.DisplayName)
		assert.Equal(t, 30, sol.MentionCount)
		assert.Equal(t, 66.67, sol.Breakdown.Positive.Percentage)
		// Score derives from the rounded percentages: (66.67-33.33)/100
		assert.Equal(t, 0.33, sol.Score)

		// Mention count comes from raw mentions; labeled counts may be lower
		bonk := result.Tokens[1]
		assert.Equal(t, 12, bonk.MentionCount)
		assert.Equal(t, 0.0, bonk.Score)
	})

	t.Run("network filter must name an existing network", func(t *testing.T) {
		svc := newTestService(&mockReader{}, &mockTokenRepo{})

		_, err := svc.MostDiscussedTokens(ctx, analytics.MostDiscussedParams{Network: "atlantis"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("negative limit", func(t *testing.T) {
		svc := newTestService(&mockReader{}, &mockTokenRepo{})

		_, err := svc.MostDiscussedTokens(ctx, analytics.MostDiscussedParams{Limit: -1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

func TestService_TopUsersByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks authors with engagement heuristics", func(t *testing.T) {
		reader := &mockReader{
			topAuthorsFunc: func(_ context.Context, tokenIDs []int64, _ analytics.Window, limit int) ([]analytics.AuthorEngagement, error) {
				assert.Equal(t, []int64{1}, tokenIDs)
				assert.Equal(t, 10, limit)
				return []analytics.AuthorEngagement{
					{AuthorID: "a1", Username: "sol_maxi", PostCount: 8, TotalLikes: 100, TotalReposts: 10},
					{AuthorID: "a2", Username: "quiet_lurker", PostCount: 2, TotalLikes: 0, TotalReposts: 0},
				}, nil
			},
			authorSentimentCountsFunc: func(_ context.Context, authorID string, _ []int64, _ analytics.Window) ([]analytics.LabelCount, error) {
				if authorID == "a1" {
					return []analytics.LabelCount{
						{Sentiment: sentiment.Positive, Count: 6},
						{Sentiment: sentiment.Negative, Count: 2},
					}, nil
				}
				return nil, nil
			},
		}
		svc := newTestService(reader, singleTokenRepo(solToken()))

		result, err := svc.TopUsersByToken(ctx, analytics.TopUsersParams{
			Token: analytics.TokenSelector{Symbol: "SOL"},
		})
		require.NoError(t, err)

		require.Len(t, result.Users, 2)
		top := result.Users[0]
		assert.Equal(t, "sol_maxi", top.Username)
		// (100 + 2*10) / 8 = 15, influence 15*8/1000 = 0.12
		assert.Equal(t, 15.0, top.EngagementRate)
		assert.Equal(t, 0.12, top.InfluenceScore)
		assert.Equal(t, 75.0, top.Distribution.Positive.Percentage)

		lurker := result.Users[1]
		assert.Equal(t, 0.0, lurker.EngagementRate)
		assert.Equal(t, 0.0, lurker.InfluenceScore)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := newTestService(&mockReader{}, &mockTokenRepo{})

		_, err := svc.TopUsersByToken(ctx, analytics.TopUsersParams{
			Token: analytics.TokenSelector{Symbol: "NOPE"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

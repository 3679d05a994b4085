package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/sentiment"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

func TestService_TokenSentimentStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates counts, percentages and score", func(t *testing.T) {
		reader := &mockReader{
			sentimentCountsFunc: func(_ context.Context, tokenIDs []int64, win analytics.Window) ([]analytics.LabelCount, error) {
				assert.Equal(t, []int64{1}, tokenIDs)
				assert.Equal(t, testNow, win.End)
				assert.Equal(t, testNow.AddDate(0, 0, -7), win.Start)
				return []analytics.LabelCount{
					{Sentiment: sentiment.Positive, Count: 5, AvgConfidence: 0.85},
					{Sentiment: sentiment.Neutral, Count: 3, AvgConfidence: 0.6},
					{Sentiment: sentiment.Negative, Count: 2, AvgConfidence: 0.7},
				}, nil
			},
		}
		svc := newTestService(reader, singleTokenRepo(solToken()))

		stats, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{
			Token: analytics.TokenSelector{Symbol: "SOL"},
		})
		require.NoError(t, err)

		assert.Equal(t, token.Key{Symbol: "SOL"}, stats.Token)
		assert.Equal(t, 10, stats.TotalMentions)
		assert.Equal(t, 0.3, stats.Score)

		assert.Equal(t, 5, stats.Breakdown.Positive.Count)
		assert.Equal(t, 50.0, stats.Breakdown.Positive.Percentage)
		assert.Equal(t, 0.85, stats.Breakdown.Positive.AvgConfidence)
		assert.Equal(t, 2, stats.Breakdown.Negative.Count)
		assert.Equal(t, 20.0, stats.Breakdown.Negative.Percentage)
		assert.Equal(t, 3, stats.Breakdown.Neutral.Count)
		assert.Equal(t, 30.0, stats.Breakdown.Neutral.Percentage)

		// Selector carried no id, so none is reported
		assert.Zero(t, stats.TokenID)
	})

	t.Run("empty window yields zeroes, not an error", func(t *testing.T) {
		svc := newTestService(&mockReader{}, singleTokenRepo(solToken()))

		stats, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{
			Token: analytics.TokenSelector{Symbol: "SOL"},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, stats.TotalMentions)
		assert.Equal(t, 0.0, stats.Score)
		assert.Equal(t, 0.0, stats.Breakdown.Positive.Percentage)
	})

	t.Run("aggregates all networks hosting the symbol", func(t *testing.T) {
		eth := token.Token{ID: 2, Symbol: "SOL", Name: "Wrapped Solana", Network: "ethereum"}

		var gotIDs []int64
		reader := &mockReader{
			sentimentCountsFunc: func(_ context.Context, tokenIDs []int64, _ analytics.Window) ([]analytics.LabelCount, error) {
				gotIDs = tokenIDs
				return nil, nil
			},
		}
		svc := newTestService(reader, singleTokenRepo(solToken(), eth))

		_, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{
			Token: analytics.TokenSelector{Symbol: "SOL"},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, gotIDs)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		svc := newTestService(&mockReader{}, &mockTokenRepo{})

		_, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{
			Token: analytics.TokenSelector{Symbol: "NOPE"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("empty selector", func(t *testing.T) {
		svc := newTestService(&mockReader{}, &mockTokenRepo{})

		_, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("negative days back", func(t *testing.T) {
		svc := newTestService(&mockReader{}, singleTokenRepo(solToken()))

		_, err := svc.TokenSentimentStats(ctx, analytics.StatsParams{
			Token:    analytics.TokenSelector{Symbol: "SOL"},
			DaysBack: -3,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

func TestService_TokenMentionStats(t *testing.T) {
	ctx := context.Background()

	t.Run("all-time footprint with unrounded score", func(t *testing.T) {
		first := time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)
		last := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)

		reader := &mockReader{
			mentionTotalsFunc: func(_ context.Context, tokenID int64) (analytics.MentionTotals, error) {
				assert.Equal(t, int64(1), tokenID)
				return analytics.MentionTotals{Count: 12, FirstSeen: &first, LastSeen: &last}, nil
			},
			allTimeSentimentCountsFunc: func(_ context.Context, _ int64) ([]analytics.LabelCount, error) {
				return []analytics.LabelCount{
					{Sentiment: sentiment.Positive, Count: 2},
					{Sentiment: sentiment.Negative, Count: 1},
					{Sentiment: sentiment.Neutral, Count: 3},
				}, nil
			},
		}
		svc := newTestService(reader, singleTokenRepo(solToken()))

		stats, err := svc.TokenMentionStats(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "SOL", stats.Symbol)
		assert.Equal(t, 12, stats.MentionCount)
		assert.Equal(t, &first, stats.FirstSeen)
		assert.Equal(t, &last, stats.LastSeen)

		// (2-1)/6 stays unrounded
		assert.InDelta(t, 1.0/6.0, stats.Score, 1e-12)
		assert.Equal(t, 33.3, stats.Distribution.Positive.Percentage)
		assert.Equal(t, 50.0, stats.Distribution.Neutral.Percentage)
	})

	t.Run("never mentioned token", func(t *testing.T) {
		svc := newTestService(&mockReader{}, singleTokenRepo(solToken()))

		stats, err := svc.TokenMentionStats(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 0, stats.MentionCount)
		assert.Nil(t, stats.FirstSeen)
		assert.Nil(t, stats.LastSeen)
		assert.Equal(t, 0.0, stats.Score)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newTestService(&mockReader{}, singleTokenRepo(solToken()))

		_, err := svc.TokenMentionStats(ctx, 99)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/sentiment"
	postgres "delphi/internal/repository/postgres"
	"delphi/internal/testsupport"
	"delphi/internal/testsupport/seeds"
)

// window spanning the last daysBack days, ending just past now so freshly
// seeded posts fall inside the half-open range
func testWindow(daysBack int) analytics.Window {
	end := time.Now().UTC().Add(time.Minute)
	return analytics.Window{Start: end.AddDate(0, 0, -daysBack), End: end}
}

func TestAnalyticsRepository_SentimentCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()

	for i := 0; i < 3; i++ {
		seeder.Post().
			WithSentiment(sentiment.Positive, 0.9).
			WithMentions(sol.ID).
			MustInsert()
	}
	seeder.Post().WithSentiment(sentiment.Negative, 0.7).WithMentions(sol.ID).MustInsert()
	// Labeled post outside the window
	seeder.Post().
		WithCreatedAt(time.Now().UTC().AddDate(0, 0, -30)).
		WithSentiment(sentiment.Negative, 0.8).
		WithMentions(sol.ID).
		MustInsert()
	// Unlabeled post contributes nothing
	seeder.Post().WithMentions(sol.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())

	rows, err := repo.SentimentCounts(context.Background(), []int64{sol.ID}, testWindow(7))
	require.NoError(t, err)

	counts := make(map[sentiment.Sentiment]analytics.LabelCount)
	for _, row := range rows {
		counts[row.Sentiment] = row
	}
	require.Len(t, counts, 2)
	assert.Equal(t, 3, counts[sentiment.Positive].Count)
	assert.InDelta(t, 0.9, counts[sentiment.Positive].AvgConfidence, 1e-9)
	assert.Equal(t, 1, counts[sentiment.Negative].Count)
}

func TestAnalyticsRepository_SentimentCounts_MentionLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()
	bonk := seeder.Token().WithSymbol("BONK").WithNetwork("solana").MustInsert()

	// One post mentioning both tokens counts once per mention when both ids
	// are in the set
	seeder.Post().
		WithSentiment(sentiment.Positive, 0.8).
		WithMentions(sol.ID, bonk.ID).
		MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())

	rows, err := repo.SentimentCounts(context.Background(), []int64{sol.ID, bonk.ID}, testWindow(7))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Count)
}

func TestAnalyticsRepository_TopTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()
	bonk := seeder.Token().WithSymbol("BONK").WithNetwork("solana").MustInsert()
	pepe := seeder.Token().WithSymbol("PEPE").WithNetwork("ethereum").MustInsert()

	for i := 0; i < 5; i++ {
		seeder.Post().WithMentions(sol.ID).MustInsert()
	}
	for i := 0; i < 3; i++ {
		seeder.Post().WithMentions(bonk.ID).MustInsert()
	}
	seeder.Post().WithMentions(pepe.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())
	ctx := context.Background()

	t.Run("ranked with mention floor", func(t *testing.T) {
		rows, err := repo.TopTokens(ctx, "", testWindow(7), 2, 10)
		require.NoError(t, err)

		require.Len(t, rows, 2) // PEPE's single mention is below the floor
		assert.Equal(t, "SOL", rows[0].Symbol)
		assert.Equal(t, 5, rows[0].Mentions)
		assert.Equal(t, "BONK", rows[1].Symbol)
	})

	t.Run("network restricted", func(t *testing.T) {
		rows, err := repo.TopTokens(ctx, "ethereum", testWindow(7), 1, 10)
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, "PEPE", rows[0].Symbol)
	})
}

func TestAnalyticsRepository_CoMentions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()
	bonk := seeder.Token().WithSymbol("BONK").WithNetwork("solana").MustInsert()
	wif := seeder.Token().WithSymbol("WIF").WithNetwork("solana").MustInsert()

	// Two posts share SOL and BONK; one of them mentions BONK twice, which
	// must not inflate the distinct-post count
	seeder.Post().
		WithSentiment(sentiment.Positive, 0.9).
		WithMentions(sol.ID, bonk.ID, bonk.ID).
		MustInsert()
	seeder.Post().
		WithSentiment(sentiment.Negative, 0.6).
		WithMentions(sol.ID, bonk.ID).
		MustInsert()
	// One post shares SOL and WIF
	seeder.Post().WithMentions(sol.ID, wif.ID).MustInsert()
	// BONK alone never counts
	seeder.Post().WithMentions(bonk.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())
	ctx := context.Background()

	t.Run("distinct shared posts", func(t *testing.T) {
		rows, err := repo.CoMentionedTokens(ctx, sol.ID, testWindow(7), 1, 10)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, "BONK", rows[0].Symbol)
		assert.Equal(t, 2, rows[0].Mentions)
		assert.Equal(t, "WIF", rows[1].Symbol)
		assert.Equal(t, 1, rows[1].Mentions)
	})

	t.Run("floor drops weak pairs", func(t *testing.T) {
		rows, err := repo.CoMentionedTokens(ctx, sol.ID, testWindow(7), 2, 10)
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, "BONK", rows[0].Symbol)
	})

	t.Run("combined sentiment over shared posts", func(t *testing.T) {
		rows, err := repo.CombinedSentimentCounts(ctx, sol.ID, bonk.ID, testWindow(7))
		require.NoError(t, err)

		counts := make(map[sentiment.Sentiment]int)
		for _, row := range rows {
			counts[row.Sentiment] = row.Count
		}
		assert.Equal(t, 1, counts[sentiment.Positive])
		assert.Equal(t, 1, counts[sentiment.Negative])
	})
}

func TestAnalyticsRepository_TimelineCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()

	// Noon timestamps keep both posts of the recent day inside one bucket
	// regardless of the session timezone
	recent := time.Now().UTC().AddDate(0, 0, -2)
	noon := time.Date(recent.Year(), recent.Month(), recent.Day(), 12, 0, 0, 0, time.UTC)
	seeder.Post().WithCreatedAt(noon).WithSentiment(sentiment.Positive, 0.9).WithMentions(sol.ID).MustInsert()
	seeder.Post().WithCreatedAt(noon.Add(time.Hour)).WithSentiment(sentiment.Positive, 0.8).WithMentions(sol.ID).MustInsert()
	seeder.Post().WithCreatedAt(noon.AddDate(0, 0, -1)).WithSentiment(sentiment.Negative, 0.7).WithMentions(sol.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())

	rows, err := repo.TimelineCounts(context.Background(), []int64{sol.ID}, analytics.IntervalDay, testWindow(7))
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	byBucket := make(map[time.Time]int)
	for i, row := range rows {
		byBucket[row.Bucket] += row.Count
		if i > 0 {
			assert.False(t, row.Bucket.Before(rows[i-1].Bucket))
		}
	}
	require.Len(t, byBucket, 2)

	for bucket, count := range byBucket {
		if bucket.Before(rows[len(rows)-1].Bucket) {
			assert.Equal(t, 1, count)
		} else {
			assert.Equal(t, 2, count)
		}
	}
}

func TestAnalyticsRepository_TopAuthors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()

	for i := 0; i < 3; i++ {
		seeder.Post().
			WithAuthor("a1", "sol_maxi").
			WithLikes(10).
			WithReposts(2).
			WithMentions(sol.ID).
			MustInsert()
	}
	seeder.Post().WithAuthor("a2", "lurker").WithLikes(100).WithMentions(sol.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())

	rows, err := repo.TopAuthors(context.Background(), []int64{sol.ID}, testWindow(7), 10)
	require.NoError(t, err)

	// Post count outranks likes
	require.Len(t, rows, 2)
	assert.Equal(t, "sol_maxi", rows[0].Username)
	assert.Equal(t, 3, rows[0].PostCount)
	assert.Equal(t, 30, rows[0].TotalLikes)
	assert.Equal(t, 6, rows[0].TotalReposts)
	assert.Equal(t, "lurker", rows[1].Username)
}

func TestAnalyticsRepository_MentionTotals(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()
	ghost := seeder.Token().WithSymbol("GHOST").WithNetwork("solana").MustInsert()

	// Mention timestamps deliberately diverge from post creation times;
	// first/last seen follow the mentions, not the posts
	early := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seeder.Post().
		WithCreatedAt(early.AddDate(0, 0, -9)).
		WithMentionedAt(early).
		WithMentions(sol.ID).
		MustInsert()
	seeder.Post().
		WithCreatedAt(late.AddDate(0, 0, -5)).
		WithMentionedAt(late).
		WithMentions(sol.ID).
		MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())
	ctx := context.Background()

	totals, err := repo.MentionTotals(ctx, sol.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Count)
	require.NotNil(t, totals.FirstSeen)
	require.NotNil(t, totals.LastSeen)
	assert.True(t, totals.FirstSeen.Equal(early))
	assert.True(t, totals.LastSeen.Equal(late))

	empty, err := repo.MentionTotals(ctx, ghost.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Nil(t, empty.FirstSeen)
	assert.Nil(t, empty.LastSeen)
}

func TestAnalyticsRepository_TopNetworks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	seeder := seeds.New(testDB.Tx())

	sol := seeder.Token().WithSymbol("SOL").WithNetwork("solana").MustInsert()
	pepe := seeder.Token().WithSymbol("PEPE").WithNetwork("ethereum").MustInsert()
	orphan := seeder.Token().WithSymbol("ORPHAN").WithNetwork("").MustInsert()

	for i := 0; i < 3; i++ {
		seeder.Post().WithMentions(sol.ID).MustInsert()
	}
	seeder.Post().WithMentions(pepe.ID).MustInsert()
	seeder.Post().WithMentions(orphan.ID).MustInsert()

	repo := postgres.NewAnalyticsRepository(testDB.Tx())

	rows, err := repo.TopNetworks(context.Background(), testWindow(7), 1, 10)
	require.NoError(t, err)

	// Tokens without a network never form a network row
	require.Len(t, rows, 2)
	assert.Equal(t, "solana", rows[0].Network)
	assert.Equal(t, 3, rows[0].Mentions)
	assert.Equal(t, "ethereum", rows[1].Network)
}

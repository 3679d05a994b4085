package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"delphi/internal/domain/analytics"
)

// Compile-time check that we implement the interface
var _ analytics.Reader = (*AnalyticsRepository)(nil)

// AnalyticsRepository implements analytics.Reader using sqlx. Every method is
// a single grouped aggregate over posts, sentiment_labels, token_mentions,
// tokens and networks; nothing here writes.
type AnalyticsRepository struct {
	db DBTX
}

// NewAnalyticsRepository creates a new analytics reader
func NewAnalyticsRepository(db DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// SentimentCounts returns per-label counts with average confidence over
// labeled posts mentioning any of tokenIDs inside the window. A post
// mentioning several tokens of the set contributes one row per mention,
// matching mention-level (not post-level) accounting.
func (r *AnalyticsRepository) SentimentCounts(ctx context.Context, tokenIDs []int64, win analytics.Window) ([]analytics.LabelCount, error) {
	query := `
		SELECT sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		WHERE tm.token_id = ANY($1)
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY sl.sentiment
		ORDER BY count DESC`

	var rows []analytics.LabelCount
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tokenIDs), win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// NetworkSentimentCounts is SentimentCounts restricted by token network
func (r *AnalyticsRepository) NetworkSentimentCounts(ctx context.Context, network string, win analytics.Window) ([]analytics.LabelCount, error) {
	query := `
		SELECT sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		JOIN tokens t ON t.id = tm.token_id
		WHERE t.network = $1
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY sl.sentiment
		ORDER BY count DESC`

	var rows []analytics.LabelCount
	if err := r.db.SelectContext(ctx, &rows, query, network, win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// AllTimeSentimentCounts returns per-label counts for one token without a
// window restriction
func (r *AnalyticsRepository) AllTimeSentimentCounts(ctx context.Context, tokenID int64) ([]analytics.LabelCount, error) {
	query := `
		SELECT sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN token_mentions tm ON tm.post_id = sl.post_id
		WHERE tm.token_id = $1
		GROUP BY sl.sentiment
		ORDER BY count DESC`

	var rows []analytics.LabelCount
	if err := r.db.SelectContext(ctx, &rows, query, tokenID); err != nil {
		return nil, err
	}

	return rows, nil
}

// TokenSentimentCounts returns per-token per-label counts for the given
// symbols or ids, optionally restricted to networks
func (r *AnalyticsRepository) TokenSentimentCounts(ctx context.Context, symbols []string, ids []int64, networks []string, win analytics.Window) ([]analytics.TokenLabelCount, error) {
	query := `
		SELECT t.id AS token_id, t.symbol, COALESCE(t.network, '') AS network,
			   sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		JOIN tokens t ON t.id = tm.token_id
		WHERE p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{win.Start, win.End}

	switch {
	case len(symbols) > 0:
		args = append(args, pq.Array(symbols))
		query += fmt.Sprintf(" AND t.symbol = ANY($%d)", len(args))
		if len(networks) > 0 {
			args = append(args, pq.Array(networks))
			query += fmt.Sprintf(" AND t.network = ANY($%d)", len(args))
		}
	case len(ids) > 0:
		args = append(args, pq.Array(ids))
		query += fmt.Sprintf(" AND t.id = ANY($%d)", len(args))
	}

	query += `
		GROUP BY t.id, t.symbol, t.network, sl.sentiment
		ORDER BY t.id, sl.sentiment`

	var rows []analytics.TokenLabelCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// TimelineCounts returns per-bucket per-label counts for the token set,
// bucketed by truncating post creation time to the interval boundary
func (r *AnalyticsRepository) TimelineCounts(ctx context.Context, tokenIDs []int64, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	query := `
		SELECT date_trunc($1, p.created_at) AS bucket, sl.sentiment, COUNT(sl.id) AS count
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		WHERE tm.token_id = ANY($2)
		  AND p.created_at >= $3 AND p.created_at < $4
		GROUP BY bucket, sl.sentiment
		ORDER BY bucket`

	var rows []analytics.BucketLabelCount
	if err := r.db.SelectContext(ctx, &rows, query, interval.String(), pq.Array(tokenIDs), win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// NetworkTimelineCounts is TimelineCounts restricted by network
func (r *AnalyticsRepository) NetworkTimelineCounts(ctx context.Context, network string, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	query := `
		SELECT date_trunc($1, p.created_at) AS bucket, sl.sentiment, COUNT(sl.id) AS count
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		JOIN tokens t ON t.id = tm.token_id
		WHERE t.network = $2
		  AND p.created_at >= $3 AND p.created_at < $4
		GROUP BY bucket, sl.sentiment
		ORDER BY bucket`

	var rows []analytics.BucketLabelCount
	if err := r.db.SelectContext(ctx, &rows, query, interval.String(), network, win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// GlobalTimelineCounts is TimelineCounts over all tokens, optionally
// restricted to a network set (nil means all)
func (r *AnalyticsRepository) GlobalTimelineCounts(ctx context.Context, networks []string, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	query := `
		SELECT date_trunc($1, p.created_at) AS bucket, sl.sentiment, COUNT(sl.id) AS count
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		JOIN tokens t ON t.id = tm.token_id
		WHERE p.created_at >= $2 AND p.created_at < $3`
	args := []interface{}{interval.String(), win.Start, win.End}

	if len(networks) > 0 {
		args = append(args, pq.Array(networks))
		query += fmt.Sprintf(" AND t.network = ANY($%d)", len(args))
	}

	query += `
		GROUP BY bucket, sl.sentiment
		ORDER BY bucket`

	var rows []analytics.BucketLabelCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// NetworkLabelCounts returns per-network per-label counts, optionally
// restricted to a network set (nil means all)
func (r *AnalyticsRepository) NetworkLabelCounts(ctx context.Context, networks []string, win analytics.Window) ([]analytics.NetworkLabelCount, error) {
	query := `
		SELECT t.network, sl.sentiment, COUNT(sl.id) AS count
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		JOIN tokens t ON t.id = tm.token_id
		WHERE t.network IS NOT NULL AND t.network <> ''
		  AND p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{win.Start, win.End}

	if len(networks) > 0 {
		args = append(args, pq.Array(networks))
		query += fmt.Sprintf(" AND t.network = ANY($%d)", len(args))
	}

	query += `
		GROUP BY t.network, sl.sentiment
		ORDER BY t.network, sl.sentiment`

	var rows []analytics.NetworkLabelCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// DailyMentionCounts returns day-bucketed raw mention counts for the token set
func (r *AnalyticsRepository) DailyMentionCounts(ctx context.Context, tokenIDs []int64, win analytics.Window) ([]analytics.BucketCount, error) {
	query := `
		SELECT date_trunc('day', p.created_at) AS bucket, COUNT(tm.id) AS count
		FROM token_mentions tm
		JOIN posts p ON p.id = tm.post_id
		WHERE tm.token_id = ANY($1)
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY bucket
		ORDER BY bucket`

	var rows []analytics.BucketCount
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tokenIDs), win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopTokens ranks tokens by mention count, descending, optionally restricted
// to one network, keeping tokens with at least minMentions
func (r *AnalyticsRepository) TopTokens(ctx context.Context, network string, win analytics.Window, minMentions, limit int) ([]analytics.TokenMentions, error) {
	query := `
		SELECT t.id AS token_id, t.symbol, t.name, COALESCE(t.network, '') AS network,
			   COUNT(tm.id) AS mentions
		FROM tokens t
		JOIN token_mentions tm ON tm.token_id = t.id
		JOIN posts p ON p.id = tm.post_id
		WHERE p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{win.Start, win.End}

	if network != "" {
		args = append(args, network)
		query += fmt.Sprintf(" AND t.network = $%d", len(args))
	}

	args = append(args, minMentions)
	query += fmt.Sprintf(`
		GROUP BY t.id, t.symbol, t.name, t.network
		HAVING COUNT(tm.id) >= $%d`, len(args))

	args = append(args, limit)
	query += fmt.Sprintf(`
		ORDER BY mentions DESC
		LIMIT $%d`, len(args))

	var rows []analytics.TokenMentions
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// QualifyingTokens returns every token of a network with at least minMentions
// mentions, ordered by mention count descending
func (r *AnalyticsRepository) QualifyingTokens(ctx context.Context, network string, win analytics.Window, minMentions int) ([]analytics.TokenMentions, error) {
	query := `
		SELECT t.id AS token_id, t.symbol, t.name, COALESCE(t.network, '') AS network,
			   COUNT(tm.id) AS mentions
		FROM tokens t
		JOIN token_mentions tm ON tm.token_id = t.id
		JOIN posts p ON p.id = tm.post_id
		WHERE t.network = $1
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY t.id, t.symbol, t.name, t.network
		HAVING COUNT(tm.id) >= $4
		ORDER BY mentions DESC`

	var rows []analytics.TokenMentions
	if err := r.db.SelectContext(ctx, &rows, query, network, win.Start, win.End, minMentions); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopTokenKeys ranks (symbol, network) pairs by mention count
func (r *AnalyticsRepository) TopTokenKeys(ctx context.Context, networks []string, win analytics.Window, minMentions, limit int) ([]analytics.KeyMentions, error) {
	query := `
		SELECT t.symbol, COALESCE(t.network, '') AS network, COUNT(tm.id) AS mentions
		FROM tokens t
		JOIN token_mentions tm ON tm.token_id = t.id
		JOIN posts p ON p.id = tm.post_id
		WHERE p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{win.Start, win.End}

	if len(networks) > 0 {
		args = append(args, pq.Array(networks))
		query += fmt.Sprintf(" AND t.network = ANY($%d)", len(args))
	}

	args = append(args, minMentions)
	query += fmt.Sprintf(`
		GROUP BY t.symbol, t.network
		HAVING COUNT(tm.id) >= $%d`, len(args))

	args = append(args, limit)
	query += fmt.Sprintf(`
		ORDER BY mentions DESC
		LIMIT $%d`, len(args))

	var rows []analytics.KeyMentions
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopNetworks ranks networks by mention count
func (r *AnalyticsRepository) TopNetworks(ctx context.Context, win analytics.Window, minMentions, limit int) ([]analytics.NetworkMentions, error) {
	query := `
		SELECT t.network, COUNT(tm.id) AS mentions
		FROM tokens t
		JOIN token_mentions tm ON tm.token_id = t.id
		JOIN posts p ON p.id = tm.post_id
		WHERE t.network IS NOT NULL AND t.network <> ''
		  AND p.created_at >= $1 AND p.created_at < $2
		GROUP BY t.network
		HAVING COUNT(tm.id) >= $3
		ORDER BY mentions DESC
		LIMIT $4`

	var rows []analytics.NetworkMentions
	if err := r.db.SelectContext(ctx, &rows, query, win.Start, win.End, minMentions, limit); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopSymbols ranks symbols by mention count within the given networks
func (r *AnalyticsRepository) TopSymbols(ctx context.Context, networks []string, win analytics.Window, minMentions, limit int) ([]analytics.SymbolMentions, error) {
	query := `
		SELECT t.symbol, COUNT(tm.id) AS mentions
		FROM tokens t
		JOIN token_mentions tm ON tm.token_id = t.id
		JOIN posts p ON p.id = tm.post_id
		WHERE p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{win.Start, win.End}

	if len(networks) > 0 {
		args = append(args, pq.Array(networks))
		query += fmt.Sprintf(" AND t.network = ANY($%d)", len(args))
	}

	args = append(args, minMentions)
	query += fmt.Sprintf(`
		GROUP BY t.symbol
		HAVING COUNT(tm.id) >= $%d`, len(args))

	args = append(args, limit)
	query += fmt.Sprintf(`
		ORDER BY mentions DESC
		LIMIT $%d`, len(args))

	var rows []analytics.SymbolMentions
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopAuthors ranks post authors for the token set by post count, ties broken
// by total likes, both descending
func (r *AnalyticsRepository) TopAuthors(ctx context.Context, tokenIDs []int64, win analytics.Window, limit int) ([]analytics.AuthorEngagement, error) {
	query := `
		SELECT p.author_id, p.author_username, COUNT(p.id) AS post_count,
			   COALESCE(SUM(p.like_count), 0) AS total_likes,
			   COALESCE(SUM(p.repost_count), 0) AS total_reposts
		FROM posts p
		JOIN token_mentions tm ON tm.post_id = p.id
		WHERE tm.token_id = ANY($1)
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY p.author_id, p.author_username
		ORDER BY post_count DESC, total_likes DESC
		LIMIT $4`

	var rows []analytics.AuthorEngagement
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tokenIDs), win.Start, win.End, limit); err != nil {
		return nil, err
	}

	return rows, nil
}

// AuthorSentimentCounts returns per-label counts of one author's labeled
// posts mentioning the token set
func (r *AnalyticsRepository) AuthorSentimentCounts(ctx context.Context, authorID string, tokenIDs []int64, win analytics.Window) ([]analytics.LabelCount, error) {
	query := `
		SELECT sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		JOIN token_mentions tm ON tm.post_id = p.id
		WHERE p.author_id = $1
		  AND tm.token_id = ANY($2)
		  AND p.created_at >= $3 AND p.created_at < $4
		GROUP BY sl.sentiment`

	var rows []analytics.LabelCount
	if err := r.db.SelectContext(ctx, &rows, query, authorID, pq.Array(tokenIDs), win.Start, win.End); err != nil {
		return nil, err
	}

	return rows, nil
}

// TopPosters returns the most active usernames for the token set
func (r *AnalyticsRepository) TopPosters(ctx context.Context, tokenIDs []int64, win analytics.Window, limit int) ([]analytics.AuthorPosts, error) {
	query := `
		SELECT p.author_username, COUNT(p.id) AS post_count
		FROM posts p
		JOIN token_mentions tm ON tm.post_id = p.id
		WHERE tm.token_id = ANY($1)
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY p.author_username
		ORDER BY post_count DESC
		LIMIT $4`

	var rows []analytics.AuthorPosts
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tokenIDs), win.Start, win.End, limit); err != nil {
		return nil, err
	}

	return rows, nil
}

// PrimaryMentionCount counts mentions of one token inside the window
func (r *AnalyticsRepository) PrimaryMentionCount(ctx context.Context, tokenID int64, win analytics.Window) (int, error) {
	query := `
		SELECT COUNT(tm.id)
		FROM token_mentions tm
		JOIN posts p ON p.id = tm.post_id
		WHERE tm.token_id = $1
		  AND p.created_at >= $2 AND p.created_at < $3`

	var count int
	if err := r.db.GetContext(ctx, &count, query, tokenID, win.Start, win.End); err != nil {
		return 0, err
	}

	return count, nil
}

// CoMentionedTokens finds tokens sharing posts with the primary token,
// counting distinct shared posts, primary excluded
func (r *AnalyticsRepository) CoMentionedTokens(ctx context.Context, tokenID int64, win analytics.Window, minCoMentions, limit int) ([]analytics.TokenMentions, error) {
	query := `
		SELECT t.id AS token_id, t.symbol, t.name, COALESCE(t.network, '') AS network,
			   COUNT(DISTINCT tm.post_id) AS mentions
		FROM token_mentions tm
		JOIN tokens t ON t.id = tm.token_id
		WHERE tm.token_id <> $1
		  AND tm.post_id IN (
			SELECT tm2.post_id
			FROM token_mentions tm2
			JOIN posts p ON p.id = tm2.post_id
			WHERE tm2.token_id = $1
			  AND p.created_at >= $2 AND p.created_at < $3
		  )
		GROUP BY t.id, t.symbol, t.name, t.network
		HAVING COUNT(DISTINCT tm.post_id) >= $4
		ORDER BY mentions DESC
		LIMIT $5`

	var rows []analytics.TokenMentions
	if err := r.db.SelectContext(ctx, &rows, query, tokenID, win.Start, win.End, minCoMentions, limit); err != nil {
		return nil, err
	}

	return rows, nil
}

// CombinedSentimentCounts returns per-label counts over posts mentioning both
// tokens
func (r *AnalyticsRepository) CombinedSentimentCounts(ctx context.Context, primaryID, otherID int64, win analytics.Window) ([]analytics.LabelCount, error) {
	query := `
		SELECT sl.sentiment, COUNT(sl.id) AS count, AVG(sl.confidence_score) AS avg_confidence
		FROM sentiment_labels sl
		JOIN posts p ON p.id = sl.post_id
		WHERE p.created_at >= $1 AND p.created_at < $2
		  AND EXISTS (
			SELECT 1 FROM token_mentions WHERE post_id = p.id AND token_id = $3
		  )
		  AND EXISTS (
			SELECT 1 FROM token_mentions WHERE post_id = p.id AND token_id = $4
		  )
		GROUP BY sl.sentiment`

	var rows []analytics.LabelCount
	if err := r.db.SelectContext(ctx, &rows, query, win.Start, win.End, primaryID, otherID); err != nil {
		return nil, err
	}

	return rows, nil
}

// MentionTotals returns the all-time mention count and first/last seen
// timestamps for one token
func (r *AnalyticsRepository) MentionTotals(ctx context.Context, tokenID int64) (analytics.MentionTotals, error) {
	query := `
		SELECT COUNT(tm.id) AS count,
			   MIN(tm.mentioned_at) AS first_seen,
			   MAX(tm.mentioned_at) AS last_seen
		FROM token_mentions tm
		WHERE tm.token_id = $1`

	var totals analytics.MentionTotals
	if err := r.db.GetContext(ctx, &totals, query, tokenID); err != nil {
		return analytics.MentionTotals{}, err
	}

	return totals, nil
}

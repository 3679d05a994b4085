package analytics

import (
	"time"

	"delphi/internal/domain/sentiment"
)

// Row types returned by the Reader. These are grouped aggregates straight out
// of the store; the engine turns them into the result types in results.go.

// LabelCount is a per-sentiment aggregate over a set of labeled posts.
type LabelCount struct {
	Sentiment     sentiment.Sentiment `db:"sentiment"`
	Count         int                 `db:"count"`
	AvgConfidence float64             `db:"avg_confidence"`
}

// TokenLabelCount is a per-token, per-sentiment aggregate used by
// comparisons.
type TokenLabelCount struct {
	TokenID       int64               `db:"token_id"`
	Symbol        string              `db:"symbol"`
	Network       string              `db:"network"`
	Sentiment     sentiment.Sentiment `db:"sentiment"`
	Count         int                 `db:"count"`
	AvgConfidence float64             `db:"avg_confidence"`
}

// BucketLabelCount is a per-bucket, per-sentiment aggregate used by
// timelines.
type BucketLabelCount struct {
	Bucket    time.Time           `db:"bucket"`
	Sentiment sentiment.Sentiment `db:"sentiment"`
	Count     int                 `db:"count"`
}

// BucketCount is a per-bucket mention count.
type BucketCount struct {
	Bucket time.Time `db:"bucket"`
	Count  int       `db:"count"`
}

// TokenMentions is a token ranked by mention volume.
type TokenMentions struct {
	TokenID  int64  `db:"token_id"`
	Symbol   string `db:"symbol"`
	Name     string `db:"name"`
	Network  string `db:"network"`
	Mentions int    `db:"mentions"`
}

// KeyMentions is a (symbol, network) pair ranked by mention volume.
type KeyMentions struct {
	Symbol   string `db:"symbol"`
	Network  string `db:"network"`
	Mentions int    `db:"mentions"`
}

// NetworkMentions is a network ranked by mention volume.
type NetworkMentions struct {
	Network  string `db:"network"`
	Mentions int    `db:"mentions"`
}

// SymbolMentions is a symbol ranked by mention volume across networks.
type SymbolMentions struct {
	Symbol   string `db:"symbol"`
	Mentions int    `db:"mentions"`
}

// NetworkLabelCount is a per-network, per-sentiment aggregate.
type NetworkLabelCount struct {
	Network   string              `db:"network"`
	Sentiment sentiment.Sentiment `db:"sentiment"`
	Count     int                 `db:"count"`
}

// AuthorEngagement is a per-author aggregate of activity and engagement.
type AuthorEngagement struct {
	AuthorID     string `db:"author_id"`
	Username     string `db:"author_username"`
	PostCount    int    `db:"post_count"`
	TotalLikes   int    `db:"total_likes"`
	TotalReposts int    `db:"total_reposts"`
}

// AuthorPosts is a per-author post count (lightweight top-user ranking).
type AuthorPosts struct {
	Username  string `db:"author_username"`
	PostCount int    `db:"post_count"`
}

// MentionTotals is the all-time mention footprint of one token.
type MentionTotals struct {
	Count     int        `db:"count"`
	FirstSeen *time.Time `db:"first_seen"`
	LastSeen  *time.Time `db:"last_seen"`
}

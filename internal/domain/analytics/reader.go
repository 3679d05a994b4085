package analytics

import (
	"context"
)

// Reader is the queryable read boundary the engine computes against. Every
// method issues one filtered/joined/grouped aggregate over the five fact and
// dimension tables and returns plain row structs. Implementations never
// write. Calls within one engine operation are read-only but not atomic;
// slight staleness between sub-queries under concurrent ingestion is
// tolerated.
type Reader interface {
	// SentimentCounts returns per-label counts with average confidence over
	// labeled posts mentioning any of tokenIDs inside the window.
	SentimentCounts(ctx context.Context, tokenIDs []int64, win Window) ([]LabelCount, error)

	// NetworkSentimentCounts is SentimentCounts restricted by token network
	// instead of token ids.
	NetworkSentimentCounts(ctx context.Context, network string, win Window) ([]LabelCount, error)

	// AllTimeSentimentCounts returns per-label counts for one token with no
	// window restriction.
	AllTimeSentimentCounts(ctx context.Context, tokenID int64) ([]LabelCount, error)

	// TokenSentimentCounts returns per-token per-label counts for the given
	// symbols or ids, optionally restricted to networks. Exactly one of
	// symbols/ids is non-empty.
	TokenSentimentCounts(ctx context.Context, symbols []string, ids []int64, networks []string, win Window) ([]TokenLabelCount, error)

	// TimelineCounts returns per-bucket per-label counts for the token set,
	// bucketed by truncating post creation time to the interval.
	TimelineCounts(ctx context.Context, tokenIDs []int64, interval Interval, win Window) ([]BucketLabelCount, error)

	// NetworkTimelineCounts is TimelineCounts restricted by network.
	NetworkTimelineCounts(ctx context.Context, network string, interval Interval, win Window) ([]BucketLabelCount, error)

	// GlobalTimelineCounts is TimelineCounts over all tokens, optionally
	// restricted to a network set (nil means all).
	GlobalTimelineCounts(ctx context.Context, networks []string, interval Interval, win Window) ([]BucketLabelCount, error)

	// NetworkLabelCounts returns per-network per-label counts, optionally
	// restricted to a network set (nil means all).
	NetworkLabelCounts(ctx context.Context, networks []string, win Window) ([]NetworkLabelCount, error)

	// DailyMentionCounts returns day-bucketed raw mention counts for the
	// token set.
	DailyMentionCounts(ctx context.Context, tokenIDs []int64, win Window) ([]BucketCount, error)

	// TopTokens ranks tokens by mention count, descending, optionally
	// restricted to one network, keeping tokens with at least minMentions.
	TopTokens(ctx context.Context, network string, win Window, minMentions, limit int) ([]TokenMentions, error)

	// QualifyingTokens returns every token of a network with at least
	// minMentions mentions, ordered by mention count descending.
	QualifyingTokens(ctx context.Context, network string, win Window, minMentions int) ([]TokenMentions, error)

	// TopTokenKeys ranks (symbol, network) pairs by mention count.
	TopTokenKeys(ctx context.Context, networks []string, win Window, minMentions, limit int) ([]KeyMentions, error)

	// TopNetworks ranks networks by mention count.
	TopNetworks(ctx context.Context, win Window, minMentions, limit int) ([]NetworkMentions, error)

	// TopSymbols ranks symbols by mention count within the given networks.
	TopSymbols(ctx context.Context, networks []string, win Window, minMentions, limit int) ([]SymbolMentions, error)

	// TopAuthors ranks post authors for the token set by post count, ties
	// broken by total likes, both descending.
	TopAuthors(ctx context.Context, tokenIDs []int64, win Window, limit int) ([]AuthorEngagement, error)

	// AuthorSentimentCounts returns per-label counts of one author's labeled
	// posts mentioning the token set.
	AuthorSentimentCounts(ctx context.Context, authorID string, tokenIDs []int64, win Window) ([]LabelCount, error)

	// TopPosters returns the most active usernames for the token set.
	TopPosters(ctx context.Context, tokenIDs []int64, win Window, limit int) ([]AuthorPosts, error)

	// PrimaryMentionCount counts mentions of one token inside the window.
	PrimaryMentionCount(ctx context.Context, tokenID int64, win Window) (int, error)

	// CoMentionedTokens finds tokens sharing posts with the primary token at
	// least minCoMentions times, counting distinct posts, primary excluded,
	// ordered by co-mention count descending.
	CoMentionedTokens(ctx context.Context, tokenID int64, win Window, minCoMentions, limit int) ([]TokenMentions, error)

	// CombinedSentimentCounts returns per-label counts over posts mentioning
	// both tokens.
	CombinedSentimentCounts(ctx context.Context, primaryID, otherID int64, win Window) ([]LabelCount, error)

	// MentionTotals returns the all-time mention count and first/last seen
	// timestamps for one token.
	MentionTotals(ctx context.Context, tokenID int64) (MentionTotals, error)
}

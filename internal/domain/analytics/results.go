package analytics

import (
	"time"

	"delphi/internal/domain/token"
)

// Typed result objects, one per engine operation. Field sets mirror the
// aggregates the operations compute; wire serialization is the concern of
// whatever outer layer consumes the engine.

// CategoryStats describes one sentiment category inside a breakdown.
type CategoryStats struct {
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// Breakdown holds the full per-category statistics for one subject.
// The three counts always sum to the total they were derived from.
type Breakdown struct {
	Positive CategoryStats `json:"positive"`
	Negative CategoryStats `json:"negative"`
	Neutral  CategoryStats `json:"neutral"`
}

// Total returns the sum of the three category counts.
func (b Breakdown) Total() int {
	return b.Positive.Count + b.Negative.Count + b.Neutral.Count
}

// Share is a count plus its percentage of a total.
type Share struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution is a breakdown without confidence data, used where the
// underlying aggregate does not carry confidence scores.
type Distribution struct {
	Positive Share `json:"positive"`
	Negative Share `json:"negative"`
	Neutral  Share `json:"neutral"`
}

// Total returns the sum of the three category counts.
func (d Distribution) Total() int {
	return d.Positive.Count + d.Negative.Count + d.Neutral.Count
}

// TokenSentimentStats is the per-token aggregate of operation
// TokenSentimentStats.
type TokenSentimentStats struct {
	Token         token.Key `json:"token"`
	TokenID       int64     `json:"token_id,omitempty"` // set when selected by id
	Window        Window    `json:"window"`
	TotalMentions int       `json:"total_mentions"`
	Score         float64   `json:"sentiment_score"`
	Breakdown     Breakdown `json:"sentiment_breakdown"`
}

// TimelinePoint is one bucket of a sentiment timeline. Counts sum to Total;
// buckets with zero mentions are not emitted.
type TimelinePoint struct {
	Bucket      time.Time `json:"bucket"`
	Total       int       `json:"total"`
	Positive    int       `json:"positive"`
	Negative    int       `json:"negative"`
	Neutral     int       `json:"neutral"`
	PositivePct float64   `json:"positive_pct"`
	NegativePct float64   `json:"negative_pct"`
	NeutralPct  float64   `json:"neutral_pct"`
	Score       float64   `json:"sentiment_score"`
}

// TokenTimeline is the ordered bucket sequence of operation
// TokenSentimentTimeline.
type TokenTimeline struct {
	Token    token.Key       `json:"token"`
	Window   Window          `json:"window"`
	Interval Interval        `json:"interval"`
	Points   []TimelinePoint `json:"timeline"`
}

// TokenComparisonEntry is one token's statistics inside a comparison.
type TokenComparisonEntry struct {
	TokenID       int64     `json:"token_id,omitempty"`
	Token         token.Key `json:"token"`
	TotalMentions int       `json:"total_mentions"`
	Score         float64   `json:"sentiment_score"`
	Breakdown     Breakdown `json:"sentiments"`
}

// TokenComparison maps each requested token to its statistics block.
type TokenComparison struct {
	Window Window                             `json:"window"`
	Tokens map[token.Key]TokenComparisonEntry `json:"tokens"`
}

// DiscussedToken is one entry of the most-discussed ranking.
type DiscussedToken struct {
	TokenID      int64        `json:"token_id"`
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Network      string       `json:"network,omitempty"`
	DisplayName  string       `json:"display_name"`
	MentionCount int          `json:"mention_count"`
	Score        float64      `json:"sentiment_score"`
	Breakdown    Distribution `json:"sentiment_breakdown"`
}

// MostDiscussed ranks tokens by mention count, descending.
type MostDiscussed struct {
	Window  Window           `json:"window"`
	Network string           `json:"network,omitempty"`
	Tokens  []DiscussedToken `json:"tokens"`
}

// UserActivity describes one author discussing a token. EngagementRate and
// InfluenceScore are presentation heuristics, not calibrated statistics:
// rate = (likes + 2*reposts) / posts, influence = rate * posts / 1000.
type UserActivity struct {
	AuthorID       string       `json:"author_id"`
	Username       string       `json:"username"`
	PostCount      int          `json:"post_count"`
	TotalLikes     int          `json:"total_likes"`
	TotalReposts   int          `json:"total_reposts"`
	EngagementRate float64      `json:"engagement_rate"`
	InfluenceScore float64      `json:"influence_score"`
	Distribution   Distribution `json:"sentiment_distribution"`
}

// TopUsers is the result of operation TopUsersByToken.
type TopUsers struct {
	Token  token.Key      `json:"token"`
	Window Window         `json:"window"`
	Users  []UserActivity `json:"top_users"`
}

// PrimaryToken describes the subject of a correlation analysis.
type PrimaryToken struct {
	TokenID       int64  `json:"token_id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Network       string `json:"network,omitempty"`
	DisplayName   string `json:"display_name"`
	TotalMentions int    `json:"total_mentions"`
}

// CorrelatedToken is a token co-mentioned with the primary subject.
// CorrelationPct = co-mentions / primary mentions * 100.
type CorrelatedToken struct {
	TokenID           int64        `json:"token_id"`
	Symbol            string       `json:"symbol"`
	Name              string       `json:"name"`
	Network           string       `json:"network,omitempty"`
	DisplayName       string       `json:"display_name"`
	CoMentions        int          `json:"co_mention_count"`
	CorrelationPct    float64      `json:"correlation_percentage"`
	CombinedSentiment Distribution `json:"combined_sentiment"`
}

// Correlation is the result of operation TokenCorrelation, ranked by
// co-mention count descending.
type Correlation struct {
	Primary    PrimaryToken      `json:"primary_token"`
	Window     Window            `json:"window"`
	Correlated []CorrelatedToken `json:"correlated_tokens"`
}

// PeriodStats is one half-window aggregate inside a momentum result.
type PeriodStats struct {
	TotalMentions int          `json:"total_mentions"`
	Score         float64      `json:"sentiment_score"`
	Distribution  Distribution `json:"sentiment_breakdown"`
}

// TokenMomentum is the sentiment delta of one token between two adjacent
// windows. UnboundedGrowth marks the period1=0, period2>0 case where the
// growth percentage is undefined.
type TokenMomentum struct {
	Token            token.Key   `json:"token"`
	DisplayName      string      `json:"display_name"`
	Period1          PeriodStats `json:"period_1"`
	Period2          PeriodStats `json:"period_2"`
	Momentum         float64     `json:"momentum"`
	MentionGrowthPct float64     `json:"mention_growth_percentage"`
	UnboundedGrowth  bool        `json:"unbounded_growth,omitempty"`
}

// Momentum is the result of operation SentimentMomentum, sorted by momentum
// descending.
type Momentum struct {
	Period1 Window          `json:"period_1"`
	Period2 Window          `json:"period_2"`
	Tokens  []TokenMomentum `json:"tokens"`
}

// NetworkStats is one network's aggregate inside a network comparison.
type NetworkStats struct {
	Name          string          `json:"name"`
	TotalTokens   int             `json:"total_tokens"`
	TotalMentions int             `json:"total_mentions"`
	Score         float64         `json:"sentiment_score"`
	Breakdown     Breakdown       `json:"sentiment_breakdown"`
	TopTokens     []TokenMentions `json:"top_tokens"`
}

// NetworkComparison compares sentiment across networks, sorted by total
// mentions descending.
type NetworkComparison struct {
	Window   Window         `json:"window"`
	Networks []NetworkStats `json:"networks"`
}

// OverallSentiment sums a timeline into one aggregate.
type OverallSentiment struct {
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	Score       float64 `json:"sentiment_score"`
}

// NetworkTimeline is the result of operation NetworkSentimentTimeline.
type NetworkTimeline struct {
	Network       string           `json:"network"`
	DisplayName   string           `json:"display_name"`
	Window        Window           `json:"window"`
	TotalMentions int              `json:"total_mentions"`
	Overall       OverallSentiment `json:"overall_sentiment"`
	TopTokens     []SymbolMentions `json:"top_tokens"`
	Points        []TimelinePoint  `json:"timeline"`
}

// NetworkTokenStats is one network's view of a symbol in a cross-network
// comparison.
type NetworkTokenStats struct {
	Network       string        `json:"network"`
	TotalMentions int           `json:"total_mentions"`
	Score         float64       `json:"sentiment_score"`
	Breakdown     Breakdown     `json:"sentiment_breakdown"`
	Timeline      []BucketCount `json:"timeline"`
	TopUsers      []AuthorPosts `json:"top_users"`
	PopularityPct float64       `json:"popularity_percentage"`
}

// CrossNetworkComparison compares one symbol across the networks hosting it,
// sorted by total mentions descending.
type CrossNetworkComparison struct {
	Symbol        string              `json:"token_symbol"`
	Window        Window              `json:"window"`
	TotalMentions int                 `json:"total_mentions_all_networks"`
	NetworkCount  int                 `json:"network_count"`
	Networks      []NetworkTokenStats `json:"networks"`
}

// MatrixCell is the sentiment aggregate of one (token, network) pair. A nil
// cell in a row marks an absent pair (no data or below the mention floor).
type MatrixCell struct {
	Mentions int     `json:"mentions"`
	Score    float64 `json:"sentiment_score"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Neutral  int     `json:"neutral"`
}

// MatrixRow is one symbol's cells keyed by network name.
type MatrixRow struct {
	Symbol string                 `json:"token"`
	Cells  map[string]*MatrixCell `json:"networks"`
}

// Matrix is the token x network sentiment grid. Both axes are ordered by
// descending mention volume.
type Matrix struct {
	Window   Window      `json:"window"`
	Networks []string    `json:"networks"`
	Tokens   []string    `json:"tokens"`
	Rows     []MatrixRow `json:"matrix"`
}

// MentionStats is the all-time mention footprint of one token.
type MentionStats struct {
	TokenID      int64        `json:"token_id"`
	Symbol       string       `json:"token_symbol"`
	Name         string       `json:"token_name"`
	Network      string       `json:"network,omitempty"`
	MentionCount int          `json:"mention_count"`
	FirstSeen    *time.Time   `json:"first_seen"`
	LastSeen     *time.Time   `json:"last_seen"`
	Score        float64      `json:"sentiment_score"`
	Distribution Distribution `json:"sentiment_distribution"`
}

// SimilarToken is one candidate of a symbol similarity ranking.
type SimilarToken struct {
	TokenID    int64   `json:"id"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Network    string  `json:"network,omitempty"`
	Similarity float64 `json:"similarity"`
}

// NetworkTrend is one network's aggregate inside the global trends result.
type NetworkTrend struct {
	Network     string  `json:"network"`
	Total       int     `json:"total"`
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	Score       float64 `json:"sentiment_score"`
}

// GlobalTrends is the result of operation GlobalSentimentTrends.
type GlobalTrends struct {
	Window           Window           `json:"window"`
	TotalMentions    int              `json:"total_mentions"`
	Overall          OverallSentiment `json:"overall_sentiment"`
	Points           []TimelinePoint  `json:"timeline"`
	Networks         []NetworkTrend   `json:"network_sentiment"`
	NetworksIncluded []string         `json:"networks_included,omitempty"`
}

package analytics

// Parameter structs for the engine operations. Zero values of optional
// fields fall back to the documented defaults; the engine applies them
// before validation so callers can leave fields unset.

// TokenSelector picks a token by symbol or by id. Exactly one of Symbol/ID
// must be set; Network optionally narrows a symbol lookup to one network.
// Symbols resolving to several tokens across networks are treated as the
// union of those tokens.
type TokenSelector struct {
	Symbol  string
	ID      int64
	Network string
}

// Empty reports whether neither symbol nor id is set.
func (s TokenSelector) Empty() bool {
	return s.Symbol == "" && s.ID == 0
}

// StatsParams selects a token and window for TokenSentimentStats.
// DaysBack defaults to 7.
type StatsParams struct {
	Token    TokenSelector
	DaysBack int
}

// TimelineParams selects a token, window and bucket width for
// TokenSentimentTimeline. DaysBack defaults to 30, Interval to day.
type TimelineParams struct {
	Token    TokenSelector
	DaysBack int
	Interval Interval
}

// CompareParams selects the token set for CompareTokenSentiments. Exactly
// one of Symbols/IDs must be non-empty; Networks optionally narrows symbol
// resolution. DaysBack defaults to 7.
type CompareParams struct {
	Symbols  []string
	IDs      []int64
	Networks []string
	DaysBack int
}

// MostDiscussedParams bounds the most-discussed ranking. Defaults:
// DaysBack 7, Limit 10, MinMentions 5.
type MostDiscussedParams struct {
	DaysBack    int
	Limit       int
	MinMentions int
	Network     string
}

// TopUsersParams selects a token and caps the author ranking. Defaults:
// DaysBack 30, Limit 10.
type TopUsersParams struct {
	Token    TokenSelector
	DaysBack int
	Limit    int
}

// CorrelationParams configures TokenCorrelation. Defaults: DaysBack 30,
// MinCoMentions 3, Limit 10.
type CorrelationParams struct {
	Symbol        string
	Network       string
	DaysBack      int
	MinCoMentions int
	Limit         int
}

// MomentumParams configures SentimentMomentum. When Symbols is empty the
// top TopN most-mentioned tokens meeting MinMentions are analyzed instead.
// Defaults: TopN 5, DaysBack 14, MinMentions 10.
type MomentumParams struct {
	Symbols     []string
	Networks    []string
	TopN        int
	DaysBack    int
	MinMentions int
}

// NetworkCompareParams configures CompareNetworks. A network is dropped
// from the result when fewer than MinTokensPerNetwork of its tokens reach
// MinMentionsPerToken. Defaults: DaysBack 30, MinTokensPerNetwork 5,
// MinMentionsPerToken 3.
type NetworkCompareParams struct {
	Networks            []string
	DaysBack            int
	MinTokensPerNetwork int
	MinMentionsPerToken int
}

// NetworkTimelineParams configures NetworkSentimentTimeline. Defaults:
// DaysBack 30, Interval day.
type NetworkTimelineParams struct {
	Network  string
	DaysBack int
	Interval Interval
}

// CrossNetworkParams configures CompareTokenAcrossNetworks. Nil Networks
// means every network hosting the symbol. DaysBack defaults to 30.
type CrossNetworkParams struct {
	Symbol   string
	Networks []string
	DaysBack int
}

// MatrixParams bounds the token x network matrix. Defaults: TopNTokens 10,
// TopNNetworks 5, DaysBack 30, MinMentions 5.
type MatrixParams struct {
	TopNTokens   int
	TopNNetworks int
	DaysBack     int
	MinMentions  int
}

// SimilarParams configures FindSimilarTokens. Candidates scoring below
// MinSimilarity are excluded; ExcludeTokenID removes the query token
// itself. MinSimilarity defaults to 0.7.
type SimilarParams struct {
	Symbol         string
	MinSimilarity  float64
	ExcludeTokenID int64
}

// GlobalTrendsParams configures GlobalSentimentTrends. TopNetworks 0 means
// all networks. Defaults: DaysBack 30, Interval day.
type GlobalTrendsParams struct {
	DaysBack    int
	Interval    Interval
	TopNetworks int
}

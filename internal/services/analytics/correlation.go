package analytics

import (
	"context"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

// TokenCorrelation finds tokens that co-occur in the same posts as a primary
// token, ranked by distinct shared posts descending. Correlation strength is
// the share of the primary token's mentions the co-mentions account for; each
// correlated token also carries the combined sentiment of the shared posts.
func (s *Service) TokenCorrelation(ctx context.Context, p analytics.CorrelationParams) (*analytics.Correlation, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.MinCoMentions == 0 {
		p.MinCoMentions = 3
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.MinCoMentions < 0 {
		return nil, errors.NewValidationError("min_co_mentions", "must be a positive integer", p.MinCoMentions)
	}
	if p.Limit < 0 {
		return nil, errors.NewValidationError("limit", "must be a positive integer", p.Limit)
	}
	if p.Symbol == "" {
		return nil, errors.NewValidationError("symbol", "must not be empty", p.Symbol)
	}

	res, err := s.resolveSelector(ctx, analytics.TokenSelector{Symbol: p.Symbol, Network: p.Network})
	if err != nil {
		return nil, err
	}
	primary := res.Primary

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	coMentioned, err := s.reader.CoMentionedTokens(ctx, primary.ID, win, p.MinCoMentions, p.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load co-mentioned tokens")
	}

	primaryMentions, err := s.reader.PrimaryMentionCount(ctx, primary.ID, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count primary mentions")
	}

	correlated := make([]analytics.CorrelatedToken, 0, len(coMentioned))
	for _, row := range coMentioned {
		counts, err := s.reader.CombinedSentimentCounts(ctx, primary.ID, row.TokenID, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load combined sentiment counts")
		}
		labels := tallyLabels(counts)

		correlated = append(correlated, analytics.CorrelatedToken{
			TokenID:           row.TokenID,
			Symbol:            row.Symbol,
			Name:              row.Name,
			Network:           row.Network,
			DisplayName:       token.Key{Symbol: row.Symbol, Network: row.Network}.Display(),
			CoMentions:        row.Mentions,
			CorrelationPct:    pct(row.Mentions, primaryMentions, 2),
			CombinedSentiment: labels.Distribution(2),
		})
	}

	return &analytics.Correlation{
		Primary: analytics.PrimaryToken{
			TokenID:       primary.ID,
			Symbol:        primary.Symbol,
			Name:          primary.Name,
			Network:       primary.Network,
			DisplayName:   token.Key{Symbol: p.Symbol, Network: p.Network}.Display(),
			TotalMentions: primaryMentions,
		},
		Window:     win,
		Correlated: correlated,
	}, nil
}

package analytics

import (
	"context"

	"delphi/internal/domain/analytics"
	"delphi/pkg/errors"
)

// TokenSentimentStats aggregates sentiment for one token over the window:
// total mentions, per-category counts with percentages and average
// confidence, and the derived sentiment score. A symbol hosted on several
// networks aggregates over all of them unless the selector narrows the
// network.
func (s *Service) TokenSentimentStats(ctx context.Context, p analytics.StatsParams) (*analytics.TokenSentimentStats, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 7
	}

	res, err := s.resolveSelector(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.SentimentCounts(ctx, res.IDs, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sentiment counts")
	}

	totals := tallyLabels(rows)
	result := &analytics.TokenSentimentStats{
		Token:         res.Key,
		Window:        win,
		TotalMentions: totals.Total(),
		Score:         totals.Score(2),
		Breakdown:     totals.Breakdown(2),
	}
	if p.Token.ID != 0 {
		result.TokenID = res.Primary.ID
	}

	return result, nil
}

// TokenMentionStats returns the all-time mention footprint of one token:
// total mentions, first and last time it was seen, and the sentiment
// distribution. FirstSeen/LastSeen are nil for a token never mentioned.
func (s *Service) TokenMentionStats(ctx context.Context, tokenID int64) (*analytics.MentionStats, error) {
	t, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	totals, err := s.reader.MentionTotals(ctx, tokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load mention totals")
	}

	rows, err := s.reader.AllTimeSentimentCounts(ctx, tokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sentiment counts")
	}
	labels := tallyLabels(rows)

	// Score stays unrounded here: downstream consumers rank on it and the
	// distribution already carries presentation-rounded percentages.
	var rawScore float64
	if total := labels.Total(); total > 0 {
		rawScore = float64(labels.Positive-labels.Negative) / float64(total)
	}

	return &analytics.MentionStats{
		TokenID:      t.ID,
		Symbol:       t.Symbol,
		Name:         t.Name,
		Network:      t.Network,
		MentionCount: totals.Count,
		FirstSeen:    totals.FirstSeen,
		LastSeen:     totals.LastSeen,
		Score:        rawScore,
		Distribution: labels.Distribution(1),
	}, nil
}

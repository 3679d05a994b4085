package analytics

import (
	"context"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

// MostDiscussedTokens ranks tokens by mention count inside the window,
// descending, keeping tokens with at least MinMentions mentions and
// attaching each token's sentiment breakdown and score.
func (s *Service) MostDiscussedTokens(ctx context.Context, p analytics.MostDiscussedParams) (*analytics.MostDiscussed, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 7
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.MinMentions == 0 {
		p.MinMentions = 5
	}
	if p.Limit < 0 {
		return nil, errors.NewValidationError("limit", "must be a positive integer", p.Limit)
	}
	if p.MinMentions < 0 {
		return nil, errors.NewValidationError("min_mentions", "cannot be negative", p.MinMentions)
	}

	if p.Network != "" {
		if _, err := s.tokens.GetNetworkByName(ctx, p.Network); err != nil {
			return nil, err
		}
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	ranked, err := s.reader.TopTokens(ctx, p.Network, win, p.MinMentions, p.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top tokens")
	}

	tokens := make([]analytics.DiscussedToken, 0, len(ranked))
	for _, row := range ranked {
		counts, err := s.reader.SentimentCounts(ctx, []int64{row.TokenID}, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load sentiment counts")
		}
		labels := tallyLabels(counts)
		breakdown := labels.Distribution(2)

		// The score derives from the already-rounded percentages so the two
		// presented values stay consistent with each other.
		tokenScore := round2((breakdown.Positive.Percentage - breakdown.Negative.Percentage) / 100)

		tokens = append(tokens, analytics.DiscussedToken{
			TokenID:      row.TokenID,
			Symbol:       row.Symbol,
			Name:         row.Name,
			Network:      row.Network,
			DisplayName:  token.Key{Symbol: row.Symbol, Network: row.Network}.Display(),
			MentionCount: row.Mentions,
			Score:        tokenScore,
			Breakdown:    breakdown,
		})
	}

	return &analytics.MostDiscussed{
		Window:  win,
		Network: p.Network,
		Tokens:  tokens,
	}, nil
}

// TopUsersByToken ranks the authors discussing one token by post count, ties
// broken by total likes. Engagement rate and influence score are presentation
// heuristics, not calibrated statistics.
func (s *Service) TopUsersByToken(ctx context.Context, p analytics.TopUsersParams) (*analytics.TopUsers, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.Limit < 0 {
		return nil, errors.NewValidationError("limit", "must be a positive integer", p.Limit)
	}

	res, err := s.resolveSelector(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	authors, err := s.reader.TopAuthors(ctx, res.IDs, win, p.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top authors")
	}

	users := make([]analytics.UserActivity, 0, len(authors))
	for _, a := range authors {
		counts, err := s.reader.AuthorSentimentCounts(ctx, a.AuthorID, res.IDs, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load author sentiment counts")
		}
		labels := tallyLabels(counts)

		var rate float64
		if a.PostCount > 0 {
			rate = float64(a.TotalLikes+a.TotalReposts*2) / float64(a.PostCount)
		}

		users = append(users, analytics.UserActivity{
			AuthorID:       a.AuthorID,
			Username:       a.Username,
			PostCount:      a.PostCount,
			TotalLikes:     a.TotalLikes,
			TotalReposts:   a.TotalReposts,
			EngagementRate: round2(rate),
			InfluenceScore: round2(rate * float64(a.PostCount) / 1000),
			Distribution:   labels.Distribution(1),
		})
	}

	return &analytics.TopUsers{
		Token:  res.Key,
		Window: win,
		Users:  users,
	}, nil
}

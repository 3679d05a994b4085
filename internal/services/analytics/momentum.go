package analytics

import (
	"context"
	"sort"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

// SentimentMomentum measures how sentiment shifted between two adjacent half
// windows. Candidates are either the supplied symbols (expanded to every
// network hosting them) or the top-N most mentioned (symbol, network) pairs
// of the full window. A candidate is dropped when either half has fewer than
// MinMentions/2 labeled mentions; the drop happens after candidate selection,
// so a busy token with a quiet half still consumes a top-N slot. Result is
// sorted by momentum descending.
func (s *Service) SentimentMomentum(ctx context.Context, p analytics.MomentumParams) (*analytics.Momentum, error) {
	if p.TopN == 0 {
		p.TopN = 5
	}
	if p.DaysBack == 0 {
		p.DaysBack = 14
	}
	if p.MinMentions == 0 {
		p.MinMentions = 10
	}
	if p.TopN < 0 {
		return nil, errors.NewValidationError("top_n", "must be a positive integer", p.TopN)
	}
	if p.MinMentions < 0 {
		return nil, errors.NewValidationError("min_mentions", "cannot be negative", p.MinMentions)
	}

	first, second, err := s.splitWindow(p.DaysBack)
	if err != nil {
		return nil, err
	}
	full := analytics.Window{Start: first.Start, End: second.End}

	candidates, err := s.momentumCandidates(ctx, p, full)
	if err != nil {
		return nil, err
	}

	halfFloor := p.MinMentions / 2

	var tokens []analytics.TokenMomentum
	for _, key := range candidates {
		matched, err := s.tokens.FindBySymbol(ctx, key.Symbol, key.Network)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve token symbol")
		}
		if len(matched) == 0 {
			continue
		}
		ids := make([]int64, len(matched))
		for i, t := range matched {
			ids[i] = t.ID
		}

		p1Rows, err := s.reader.SentimentCounts(ctx, ids, first)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load first period counts")
		}
		p2Rows, err := s.reader.SentimentCounts(ctx, ids, second)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load second period counts")
		}

		p1 := tallyLabels(p1Rows)
		p2 := tallyLabels(p2Rows)
		total1, total2 := p1.Total(), p2.Total()

		if total1 < halfFloor || total2 < halfFloor {
			continue
		}

		var score1, score2 float64
		if total1 > 0 {
			score1 = float64(p1.Positive-p1.Negative) / float64(total1)
		}
		if total2 > 0 {
			score2 = float64(p2.Positive-p2.Negative) / float64(total2)
		}

		tm := analytics.TokenMomentum{
			Token:       key,
			DisplayName: key.Display(),
			Period1: analytics.PeriodStats{
				TotalMentions: total1,
				Score:         round3(score1),
				Distribution:  p1.Distribution(1),
			},
			Period2: analytics.PeriodStats{
				TotalMentions: total2,
				Score:         round3(score2),
				Distribution:  p2.Distribution(1),
			},
			Momentum: round3(score2 - score1),
		}

		switch {
		case total1 > 0:
			tm.MentionGrowthPct = round1(float64(total2-total1) / float64(total1) * 100)
		case total2 > 0:
			tm.UnboundedGrowth = true
		}

		tokens = append(tokens, tm)
	}
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Momentum > tokens[j].Momentum })

	return &analytics.Momentum{
		Period1: first,
		Period2: second,
		Tokens:  tokens,
	}, nil
}

// momentumCandidates produces the (symbol, network) pairs to analyze.
func (s *Service) momentumCandidates(ctx context.Context, p analytics.MomentumParams, full analytics.Window) ([]token.Key, error) {
	if len(p.Symbols) == 0 {
		ranked, err := s.reader.TopTokenKeys(ctx, p.Networks, full, p.MinMentions, p.TopN)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load top token keys")
		}
		keys := make([]token.Key, len(ranked))
		for i, r := range ranked {
			keys[i] = token.Key{Symbol: r.Symbol, Network: r.Network}
		}
		return keys, nil
	}

	// One network per symbol means the pairs are explicit and must all exist.
	if len(p.Networks) == len(p.Symbols) {
		keys := make([]token.Key, len(p.Symbols))
		for i, symbol := range p.Symbols {
			matched, err := s.tokens.FindBySymbol(ctx, symbol, p.Networks[i])
			if err != nil {
				return nil, errors.Wrap(err, "failed to resolve token symbol")
			}
			if len(matched) == 0 {
				return nil, errors.Wrapf(errors.ErrTokenNotFound, "symbol %q on network %q", symbol, p.Networks[i])
			}
			keys[i] = token.Key{Symbol: symbol, Network: p.Networks[i]}
		}
		return keys, nil
	}

	// Otherwise expand each symbol to every network hosting it, restricted to
	// the network set when one is given.
	var keys []token.Key
	for _, symbol := range p.Symbols {
		matched, err := s.tokens.FindBySymbol(ctx, symbol, "")
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve token symbol")
		}
		if len(p.Networks) > 0 {
			matched = filterByNetworks(matched, p.Networks)
			if len(matched) == 0 {
				return nil, errors.Wrapf(errors.ErrTokenNotFound, "symbol %q in networks %v", symbol, p.Networks)
			}
		}
		seen := make(map[string]struct{})
		for _, t := range matched {
			if _, ok := seen[t.Network]; ok {
				continue
			}
			seen[t.Network] = struct{}{}
			keys = append(keys, token.Key{Symbol: symbol, Network: t.Network})
		}
	}
	return keys, nil
}

package analytics

import (
	"context"
	"sort"
	"strconv"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

// CompareTokenSentiments computes per-token sentiment statistics for a set of
// tokens in one pass. Validation is all-or-nothing: every requested symbol or
// id must resolve before anything is computed. When Networks has exactly one
// entry per symbol the pairs are validated 1:1; otherwise Networks acts as a
// set filter. Only tokens with labeled mentions in the window appear in the
// result map.
func (s *Service) CompareTokenSentiments(ctx context.Context, p analytics.CompareParams) (*analytics.TokenComparison, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 7
	}
	if len(p.Symbols) == 0 && len(p.IDs) == 0 {
		return nil, errors.NewValidationError("tokens", "must provide either symbols or ids", p)
	}
	if len(p.Symbols) > 0 && len(p.IDs) > 0 {
		return nil, errors.NewValidationError("tokens", "symbols and ids are mutually exclusive", p)
	}

	if err := s.validateComparisonTokens(ctx, p); err != nil {
		return nil, err
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.TokenSentimentCounts(ctx, p.Symbols, p.IDs, p.Networks, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token sentiment counts")
	}

	return &analytics.TokenComparison{
		Window: win,
		Tokens: groupComparisonRows(rows, len(p.IDs) > 0),
	}, nil
}

// validateComparisonTokens resolves every requested token, collecting all
// misses into one error instead of stopping at the first.
func (s *Service) validateComparisonTokens(ctx context.Context, p analytics.CompareParams) error {
	pairwise := len(p.Networks) > 0 && len(p.Networks) == len(p.Symbols)

	var missing []string
	for i, symbol := range p.Symbols {
		network := ""
		if pairwise {
			network = p.Networks[i]
		}
		tokens, err := s.tokens.FindBySymbol(ctx, symbol, network)
		if err != nil {
			return errors.Wrap(err, "failed to resolve token symbol")
		}
		if !pairwise && len(p.Networks) > 0 {
			tokens = filterByNetworks(tokens, p.Networks)
		}
		if len(tokens) == 0 {
			missing = append(missing, token.Key{Symbol: symbol, Network: network}.Display())
		}
	}
	for _, id := range p.IDs {
		if _, err := s.tokens.GetByID(ctx, id); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				missing = append(missing, "id "+strconv.FormatInt(id, 10))
				continue
			}
			return err
		}
	}

	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrTokenNotFound, "%v", missing)
	}
	return nil
}

func filterByNetworks(tokens []token.Token, networks []string) []token.Token {
	allowed := make(map[string]struct{}, len(networks))
	for _, n := range networks {
		allowed[n] = struct{}{}
	}
	var kept []token.Token
	for _, t := range tokens {
		if _, ok := allowed[t.Network]; ok {
			kept = append(kept, t)
		}
	}
	return kept
}

// groupComparisonRows folds per-token label rows into one entry per
// (symbol, network) key. Confidences of tokens sharing a key merge weighted
// by count.
func groupComparisonRows(rows []analytics.TokenLabelCount, byID bool) map[token.Key]analytics.TokenComparisonEntry {
	type agg struct {
		tokenID int64
		labels  labelTotals
	}
	grouped := make(map[token.Key]*agg)

	for _, row := range rows {
		key := token.Key{Symbol: row.Symbol, Network: row.Network}
		a, ok := grouped[key]
		if !ok {
			a = &agg{tokenID: row.TokenID}
			grouped[key] = a
		}
		a.labels.Add(row.Sentiment, row.Count, row.AvgConfidence)
	}

	result := make(map[token.Key]analytics.TokenComparisonEntry, len(grouped))
	for key, a := range grouped {
		entry := analytics.TokenComparisonEntry{
			Token:         key,
			TotalMentions: a.labels.Total(),
			Score:         a.labels.Score(2),
			Breakdown:     a.labels.Breakdown(2),
		}
		if byID {
			entry.TokenID = a.tokenID
		}
		result[key] = entry
	}
	return result
}

// CompareNetworkSentiments compares sentiment across blockchain networks.
// Every requested network must exist; networks where fewer than
// MinTokensPerNetwork tokens reach MinMentionsPerToken are dropped from the
// result, not reported as errors. Sorted by total mentions descending.
func (s *Service) CompareNetworkSentiments(ctx context.Context, p analytics.NetworkCompareParams) (*analytics.NetworkComparison, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.MinTokensPerNetwork == 0 {
		p.MinTokensPerNetwork = 5
	}
	if p.MinMentionsPerToken == 0 {
		p.MinMentionsPerToken = 3
	}
	if len(p.Networks) == 0 {
		return nil, errors.NewValidationError("networks", "must provide at least one network name", p.Networks)
	}

	existing, err := s.tokens.ExistingNetworkNames(ctx, p.Networks)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check networks")
	}
	if missing := missingNames(p.Networks, existing); len(missing) > 0 {
		return nil, errors.Wrapf(errors.ErrNetworkNotFound, "%v", missing)
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	var networks []analytics.NetworkStats
	for _, name := range p.Networks {
		tokens, err := s.reader.QualifyingTokens(ctx, name, win, p.MinMentionsPerToken)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load qualifying tokens")
		}
		if len(tokens) < p.MinTokensPerNetwork {
			continue
		}

		rows, err := s.reader.NetworkSentimentCounts(ctx, name, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load network sentiment counts")
		}
		labels := tallyLabels(rows)

		top := tokens
		if len(top) > 10 {
			top = top[:10]
		}

		networks = append(networks, analytics.NetworkStats{
			Name:          name,
			TotalTokens:   len(tokens),
			TotalMentions: labels.Total(),
			Score:         labels.Score(2),
			Breakdown:     labels.Breakdown(1),
			TopTokens:     top,
		})
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i].TotalMentions > networks[j].TotalMentions })

	return &analytics.NetworkComparison{Window: win, Networks: networks}, nil
}

// CompareTokenAcrossNetworks compares one symbol across every network hosting
// it (or the given subset): stats, a daily mention timeline, the busiest
// posters, and each network's share of the symbol's total mentions. Sorted
// by total mentions descending.
func (s *Service) CompareTokenAcrossNetworks(ctx context.Context, p analytics.CrossNetworkParams) (*analytics.CrossNetworkComparison, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.Symbol == "" {
		return nil, errors.NewValidationError("symbol", "must not be empty", p.Symbol)
	}

	networks := p.Networks
	if len(networks) == 0 {
		var err error
		networks, err = s.tokens.SymbolNetworks(ctx, p.Symbol)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve symbol networks")
		}
		if len(networks) == 0 {
			return nil, errors.Wrapf(errors.ErrTokenNotFound, "symbol %q", p.Symbol)
		}
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	var stats []analytics.NetworkTokenStats
	for _, network := range networks {
		tokens, err := s.tokens.FindBySymbol(ctx, p.Symbol, network)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve token symbol")
		}
		if len(tokens) == 0 {
			continue
		}
		ids := make([]int64, len(tokens))
		for i, t := range tokens {
			ids[i] = t.ID
		}

		rows, err := s.reader.SentimentCounts(ctx, ids, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load sentiment counts")
		}
		labels := tallyLabels(rows)
		if labels.Total() == 0 {
			continue
		}

		timeline, err := s.reader.DailyMentionCounts(ctx, ids, win)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load daily mention counts")
		}
		topUsers, err := s.reader.TopPosters(ctx, ids, win, 5)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load top posters")
		}

		stats = append(stats, analytics.NetworkTokenStats{
			Network:       network,
			TotalMentions: labels.Total(),
			Score:         labels.Score(2),
			Breakdown:     labels.Breakdown(1),
			Timeline:      timeline,
			TopUsers:      topUsers,
		})
	}

	totalAll := 0
	for _, st := range stats {
		totalAll += st.TotalMentions
	}
	for i := range stats {
		stats[i].PopularityPct = pct(stats[i].TotalMentions, totalAll, 1)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].TotalMentions > stats[j].TotalMentions })

	return &analytics.CrossNetworkComparison{
		Symbol:        p.Symbol,
		Window:        win,
		TotalMentions: totalAll,
		NetworkCount:  len(stats),
		Networks:      stats,
	}, nil
}

func missingNames(requested, existing []string) []string {
	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range requested {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

package analytics

import (
	"context"
	"sort"

	"delphi/internal/domain/analytics"
	"delphi/pkg/errors"
)

// NetworkTokenMatrix builds the token x network sentiment grid: the top-N
// networks by mention volume, the top-N symbols within those networks, and a
// cell per pair holding mentions, score and raw counts. A nil cell marks a
// pair with no data or one below the mention floor. Both axes end up ordered
// by descending mention volume.
func (s *Service) NetworkTokenMatrix(ctx context.Context, p analytics.MatrixParams) (*analytics.Matrix, error) {
	if p.TopNTokens == 0 {
		p.TopNTokens = 10
	}
	if p.TopNNetworks == 0 {
		p.TopNNetworks = 5
	}
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.MinMentions == 0 {
		p.MinMentions = 5
	}
	if p.TopNTokens < 0 || p.TopNNetworks < 0 {
		return nil, errors.NewValidationError("top_n", "must be a positive integer", p)
	}
	if p.MinMentions < 0 {
		return nil, errors.NewValidationError("min_mentions", "cannot be negative", p.MinMentions)
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	topNetworks, err := s.reader.TopNetworks(ctx, win, p.MinMentions, p.TopNNetworks)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top networks")
	}
	if len(topNetworks) == 0 {
		return &analytics.Matrix{Window: win}, nil
	}
	networks := make([]string, len(topNetworks))
	for i, n := range topNetworks {
		networks[i] = n.Network
	}

	topSymbols, err := s.reader.TopSymbols(ctx, networks, win, p.MinMentions, p.TopNTokens)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top symbols")
	}
	if len(topSymbols) == 0 {
		return &analytics.Matrix{Window: win}, nil
	}
	symbols := make([]string, len(topSymbols))
	for i, t := range topSymbols {
		symbols[i] = t.Symbol
	}

	rows := make([]analytics.MatrixRow, 0, len(symbols))
	networkTotals := make(map[string]int, len(networks))

	for _, symbol := range symbols {
		row := analytics.MatrixRow{
			Symbol: symbol,
			Cells:  make(map[string]*analytics.MatrixCell, len(networks)),
		}

		for _, network := range networks {
			matched, err := s.tokens.FindBySymbol(ctx, symbol, network)
			if err != nil {
				return nil, errors.Wrap(err, "failed to resolve token symbol")
			}
			if len(matched) == 0 {
				row.Cells[network] = nil
				continue
			}
			ids := make([]int64, len(matched))
			for i, t := range matched {
				ids[i] = t.ID
			}

			counts, err := s.reader.SentimentCounts(ctx, ids, win)
			if err != nil {
				return nil, errors.Wrap(err, "failed to load sentiment counts")
			}
			labels := tallyLabels(counts)
			mentions := labels.Total()
			if mentions < p.MinMentions {
				row.Cells[network] = nil
				continue
			}

			row.Cells[network] = &analytics.MatrixCell{
				Mentions: mentions,
				Score:    score(labels.Positive, labels.Negative, mentions, 2),
				Positive: labels.Positive,
				Negative: labels.Negative,
				Neutral:  labels.Neutral,
			}
			networkTotals[network] += mentions
		}

		rows = append(rows, row)
	}

	// Column order by aggregate mention volume across the grid.
	sort.SliceStable(networks, func(i, j int) bool {
		return networkTotals[networks[i]] > networkTotals[networks[j]]
	})

	return &analytics.Matrix{
		Window:   win,
		Networks: networks,
		Tokens:   symbols,
		Rows:     rows,
	}, nil
}

package analytics

import (
	"context"
	"sort"
	"strings"

	"delphi/internal/domain/analytics"
	"delphi/pkg/errors"
)

// FindSimilarTokens ranks stored tokens by symbol similarity to the query.
// The metric is deliberately simple: exact match (case-insensitive) scores
// 1.0, containment either way scores shorter/longer length ratio, everything
// else is excluded. Candidates below MinSimilarity are dropped; result is
// sorted by similarity descending.
func (s *Service) FindSimilarTokens(ctx context.Context, p analytics.SimilarParams) ([]analytics.SimilarToken, error) {
	if p.MinSimilarity == 0 {
		p.MinSimilarity = 0.7
	}
	if p.Symbol == "" {
		return nil, errors.NewValidationError("symbol", "must not be empty", p.Symbol)
	}
	if p.MinSimilarity < 0 || p.MinSimilarity > 1 {
		return nil, errors.NewValidationError("min_similarity", "must be within [0, 1]", p.MinSimilarity)
	}

	all, err := s.tokens.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tokens")
	}

	query := strings.ToLower(strings.TrimSpace(p.Symbol))

	var similar []analytics.SimilarToken
	for _, t := range all {
		if p.ExcludeTokenID != 0 && t.ID == p.ExcludeTokenID {
			continue
		}

		similarity, ok := symbolSimilarity(query, strings.ToLower(strings.TrimSpace(t.Symbol)))
		if !ok || similarity < p.MinSimilarity {
			continue
		}

		similar = append(similar, analytics.SimilarToken{
			TokenID:    t.ID,
			Symbol:     t.Symbol,
			Name:       t.Name,
			Network:    t.Network,
			Similarity: similarity,
		})
	}
	sort.SliceStable(similar, func(i, j int) bool { return similar[i].Similarity > similar[j].Similarity })

	return similar, nil
}

// symbolSimilarity scores two normalized symbols. The second return is false
// when the symbols are unrelated.
func symbolSimilarity(a, b string) (float64, bool) {
	switch {
	case a == b:
		return 1.0, true
	case strings.Contains(a, b) || strings.Contains(b, a):
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer), true
	default:
		return 0, false
	}
}

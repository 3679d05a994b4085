package analytics

import (
	"context"
	"time"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
	"delphi/pkg/logger"
)

// Service is the sentiment analytics engine. It computes statistical
// summaries, trends, correlations, momentum and cross-network views from the
// grouped aggregates exposed by the Reader. The engine never writes.
type Service struct {
	reader analytics.Reader
	tokens token.Repository
	log    *logger.Logger

	// now is swapped out in tests so windows are deterministic
	now func() time.Time
}

// NewService creates a new analytics service
func NewService(reader analytics.Reader, tokens token.Repository, log *logger.Logger) *Service {
	return &Service{
		reader: reader,
		tokens: tokens,
		log:    log.With("service", "analytics"),
		now:    time.Now,
	}
}

// resolvedToken is a selector resolved against the store. A symbol shared by
// assets on several networks resolves to all of them; the engine then treats
// the selection as the union of the matched tokens.
type resolvedToken struct {
	IDs     []int64
	Key     token.Key
	Primary token.Token // first match, carries id/name for display
}

// resolveSelector validates a token selector against the store and returns
// the matched token ids. An unknown symbol or id fails with ErrTokenNotFound.
func (s *Service) resolveSelector(ctx context.Context, sel analytics.TokenSelector) (resolvedToken, error) {
	if sel.Empty() {
		return resolvedToken{}, errors.NewValidationError("token", "must provide either symbol or id", sel)
	}

	if sel.Symbol != "" {
		tokens, err := s.tokens.FindBySymbol(ctx, sel.Symbol, sel.Network)
		if err != nil {
			return resolvedToken{}, errors.Wrap(err, "failed to resolve token symbol")
		}
		if len(tokens) == 0 {
			if sel.Network != "" {
				return resolvedToken{}, errors.Wrapf(errors.ErrTokenNotFound, "symbol %q on network %q", sel.Symbol, sel.Network)
			}
			return resolvedToken{}, errors.Wrapf(errors.ErrTokenNotFound, "symbol %q", sel.Symbol)
		}

		ids := make([]int64, len(tokens))
		for i, t := range tokens {
			ids[i] = t.ID
		}
		return resolvedToken{
			IDs:     ids,
			Key:     token.Key{Symbol: sel.Symbol, Network: sel.Network},
			Primary: tokens[0],
		}, nil
	}

	t, err := s.tokens.GetByID(ctx, sel.ID)
	if err != nil {
		return resolvedToken{}, err
	}
	return resolvedToken{
		IDs:     []int64{t.ID},
		Key:     t.Key(),
		Primary: *t,
	}, nil
}

package analytics

import (
	"context"
	"time"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/token"
	"delphi/pkg/errors"
	"delphi/pkg/logger"
)

// testNow is the fixed clock every test computes windows against.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// mockReader implements analytics.Reader for testing
type mockReader struct {
	sentimentCountsFunc         func(context.Context, []int64, analytics.Window) ([]analytics.LabelCount, error)
	networkSentimentCountsFunc  func(context.Context, string, analytics.Window) ([]analytics.LabelCount, error)
	allTimeSentimentCountsFunc  func(context.Context, int64) ([]analytics.LabelCount, error)
	tokenSentimentCountsFunc    func(context.Context, []string, []int64, []string, analytics.Window) ([]analytics.TokenLabelCount, error)
	timelineCountsFunc          func(context.Context, []int64, analytics.Interval, analytics.Window) ([]analytics.BucketLabelCount, error)
	networkTimelineCountsFunc   func(context.Context, string, analytics.Interval, analytics.Window) ([]analytics.BucketLabelCount, error)
	globalTimelineCountsFunc    func(context.Context, []string, analytics.Interval, analytics.Window) ([]analytics.BucketLabelCount, error)
	networkLabelCountsFunc      func(context.Context, []string, analytics.Window) ([]analytics.NetworkLabelCount, error)
	dailyMentionCountsFunc      func(context.Context, []int64, analytics.Window) ([]analytics.BucketCount, error)
	topTokensFunc               func(context.Context, string, analytics.Window, int, int) ([]analytics.TokenMentions, error)
	qualifyingTokensFunc        func(context.Context, string, analytics.Window, int) ([]analytics.TokenMentions, error)
	topTokenKeysFunc            func(context.Context, []string, analytics.Window, int, int) ([]analytics.KeyMentions, error)
	topNetworksFunc             func(context.Context, analytics.Window, int, int) ([]analytics.NetworkMentions, error)
	topSymbolsFunc              func(context.Context, []string, analytics.Window, int, int) ([]analytics.SymbolMentions, error)
	topAuthorsFunc              func(context.Context, []int64, analytics.Window, int) ([]analytics.AuthorEngagement, error)
	authorSentimentCountsFunc   func(context.Context, string, []int64, analytics.Window) ([]analytics.LabelCount, error)
	topPostersFunc              func(context.Context, []int64, analytics.Window, int) ([]analytics.AuthorPosts, error)
	primaryMentionCountFunc     func(context.Context, int64, analytics.Window) (int, error)
	coMentionedTokensFunc       func(context.Context, int64, analytics.Window, int, int) ([]analytics.TokenMentions, error)
	combinedSentimentCountsFunc func(context.Context, int64, int64, analytics.Window) ([]analytics.LabelCount, error)
	mentionTotalsFunc           func(context.Context, int64) (analytics.MentionTotals, error)
}

func (m *mockReader) SentimentCounts(ctx context.Context, tokenIDs []int64, win analytics.Window) ([]analytics.LabelCount, error) {
	if m.sentimentCountsFunc != nil {
		return m.sentimentCountsFunc(ctx, tokenIDs, win)
	}
	return nil, nil
}

func (m *mockReader) NetworkSentimentCounts(ctx context.Context, network string, win analytics.Window) ([]analytics.LabelCount, error) {
	if m.networkSentimentCountsFunc != nil {
		return m.networkSentimentCountsFunc(ctx, network, win)
	}
	return nil, nil
}

func (m *mockReader) AllTimeSentimentCounts(ctx context.Context, tokenID int64) ([]analytics.LabelCount, error) {
	if m.allTimeSentimentCountsFunc != nil {
		return m.allTimeSentimentCountsFunc(ctx, tokenID)
	}
	return nil, nil
}

func (m *mockReader) TokenSentimentCounts(ctx context.Context, symbols []string, ids []int64, networks []string, win analytics.Window) ([]analytics.TokenLabelCount, error) {
	if m.tokenSentimentCountsFunc != nil {
		return m.tokenSentimentCountsFunc(ctx, symbols, ids, networks, win)
	}
	return nil, nil
}

func (m *mockReader) TimelineCounts(ctx context.Context, tokenIDs []int64, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	if m.timelineCountsFunc != nil {
		return m.timelineCountsFunc(ctx, tokenIDs, interval, win)
	}
	return nil, nil
}

func (m *mockReader) NetworkTimelineCounts(ctx context.Context, network string, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	if m.networkTimelineCountsFunc != nil {
		return m.networkTimelineCountsFunc(ctx, network, interval, win)
	}
	return nil, nil
}

func (m *mockReader) GlobalTimelineCounts(ctx context.Context, networks []string, interval analytics.Interval, win analytics.Window) ([]analytics.BucketLabelCount, error) {
	if m.globalTimelineCountsFunc != nil {
		return m.globalTimelineCountsFunc(ctx, networks, interval, win)
	}
	return nil, nil
}

func (m *mockReader) NetworkLabelCounts(ctx context.Context, networks []string, win analytics.Window) ([]analytics.NetworkLabelCount, error) {
	if m.networkLabelCountsFunc != nil {
		return m.networkLabelCountsFunc(ctx, networks, win)
	}
	return nil, nil
}

func (m *mockReader) DailyMentionCounts(ctx context.Context, tokenIDs []int64, win analytics.Window) ([]analytics.BucketCount, error) {
	if m.dailyMentionCountsFunc != nil {
		return m.dailyMentionCountsFunc(ctx, tokenIDs, win)
	}
	return nil, nil
}

func (m *mockReader) TopTokens(ctx context.Context, network string, win analytics.Window, minMentions, limit int) ([]analytics.TokenMentions, error) {
	if m.topTokensFunc != nil {
		return m.topTokensFunc(ctx, network, win, minMentions, limit)
	}
	return nil, nil
}

func (m *mockReader) QualifyingTokens(ctx context.Context, network string, win analytics.Window, minMentions int) ([]analytics.TokenMentions, error) {
	if m.qualifyingTokensFunc != nil {
		return m.qualifyingTokensFunc(ctx, network, win, minMentions)
	}
	return nil, nil
}

func (m *mockReader) TopTokenKeys(ctx context.Context, networks []string, win analytics.Window, minMentions, limit int) ([]analytics.KeyMentions, error) {
	if m.topTokenKeysFunc != nil {
		return m.topTokenKeysFunc(ctx, networks, win, minMentions, limit)
	}
	return nil, nil
}

func (m *mockReader) TopNetworks(ctx context.Context, win analytics.Window, minMentions, limit int) ([]analytics.NetworkMentions, error) {
	if m.topNetworksFunc != nil {
		return m.topNetworksFunc(ctx, win, minMentions, limit)
	}
	return nil, nil
}

func (m *mockReader) TopSymbols(ctx context.Context, networks []string, win analytics.Window, minMentions, limit int) ([]analytics.SymbolMentions, error) {
	if m.topSymbolsFunc != nil {
		return m.topSymbolsFunc(ctx, networks, win, minMentions, limit)
	}
	return nil, nil
}

func (m *mockReader) TopAuthors(ctx context.Context, tokenIDs []int64, win analytics.Window, limit int) ([]analytics.AuthorEngagement, error) {
	if m.topAuthorsFunc != nil {
		return m.topAuthorsFunc(ctx, tokenIDs, win, limit)
	}
	return nil, nil
}

func (m *mockReader) AuthorSentimentCounts(ctx context.Context, authorID string, tokenIDs []int64, win analytics.Window) ([]analytics.LabelCount, error) {
	if m.authorSentimentCountsFunc != nil {
		return m.authorSentimentCountsFunc(ctx, authorID, tokenIDs, win)
	}
	return nil, nil
}

func (m *mockReader) TopPosters(ctx context.Context, tokenIDs []int64, win analytics.Window, limit int) ([]analytics.AuthorPosts, error) {
	if m.topPostersFunc != nil {
		return m.topPostersFunc(ctx, tokenIDs, win, limit)
	}
	return nil, nil
}

func (m *mockReader) PrimaryMentionCount(ctx context.Context, tokenID int64, win analytics.Window) (int, error) {
	if m.primaryMentionCountFunc != nil {
		return m.primaryMentionCountFunc(ctx, tokenID, win)
	}
	return 0, nil
}

func (m *mockReader) CoMentionedTokens(ctx context.Context, tokenID int64, win analytics.Window, minCoMentions, limit int) ([]analytics.TokenMentions, error) {
	if m.coMentionedTokensFunc != nil {
		return m.coMentionedTokensFunc(ctx, tokenID, win, minCoMentions, limit)
	}
	return nil, nil
}

func (m *mockReader) CombinedSentimentCounts(ctx context.Context, primaryID, otherID int64, win analytics.Window) ([]analytics.LabelCount, error) {
	if m.combinedSentimentCountsFunc != nil {
		return m.combinedSentimentCountsFunc(ctx, primaryID, otherID, win)
	}
	return nil, nil
}

func (m *mockReader) MentionTotals(ctx context.Context, tokenID int64) (analytics.MentionTotals, error) {
	if m.mentionTotalsFunc != nil {
		return m.mentionTotalsFunc(ctx, tokenID)
	}
	return analytics.MentionTotals{}, nil
}

// mockTokenRepo implements token.Repository for testing
type mockTokenRepo struct {
	getByIDFunc              func(context.Context, int64) (*token.Token, error)
	findBySymbolFunc         func(context.Context, string, string) ([]token.Token, error)
	symbolNetworksFunc       func(context.Context, string) ([]string, error)
	listAllFunc              func(context.Context) ([]token.Token, error)
	getNetworkByNameFunc     func(context.Context, string) (*token.Network, error)
	existingNetworkNamesFunc func(context.Context, []string) ([]string, error)
}

func (m *mockTokenRepo) GetByID(ctx context.Context, id int64) (*token.Token, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.ErrTokenNotFound
}

func (m *mockTokenRepo) FindBySymbol(ctx context.Context, symbol, network string) ([]token.Token, error) {
	if m.findBySymbolFunc != nil {
		return m.findBySymbolFunc(ctx, symbol, network)
	}
	return nil, nil
}

func (m *mockTokenRepo) SymbolNetworks(ctx context.Context, symbol string) ([]string, error) {
	if m.symbolNetworksFunc != nil {
		return m.symbolNetworksFunc(ctx, symbol)
	}
	return nil, nil
}

func (m *mockTokenRepo) ListAll(ctx context.Context) ([]token.Token, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTokenRepo) GetNetworkByName(ctx context.Context, name string) (*token.Network, error) {
	if m.getNetworkByNameFunc != nil {
		return m.getNetworkByNameFunc(ctx, name)
	}
	return nil, errors.ErrNetworkNotFound
}

func (m *mockTokenRepo) ExistingNetworkNames(ctx context.Context, names []string) ([]string, error) {
	if m.existingNetworkNamesFunc != nil {
		return m.existingNetworkNamesFunc(ctx, names)
	}
	return names, nil
}

func (m *mockTokenRepo) InsertToken(ctx context.Context, t *token.Token) error { return nil }
func (m *mockTokenRepo) InsertNetwork(ctx context.Context, n *token.Network) error { return nil }
func (m *mockTokenRepo) InsertMention(ctx context.Context, mn *token.Mention) error { return nil }

// newTestService builds a service against the mocks with a pinned clock
func newTestService(reader *mockReader, tokens *mockTokenRepo) *Service {
	svc := NewService(reader, tokens, logger.Get())
	svc.now = func() time.Time { return testNow }
	return svc
}

// solToken is the canonical fixture most tests resolve against
func solToken() token.Token {
	return token.Token{ID: 1, Address: "addr-sol", Symbol: "SOL", Name: "Solana", Network: "solana"}
}

// singleTokenRepo resolves exactly the given tokens by symbol, any network
func singleTokenRepo(tokens ...token.Token) *mockTokenRepo {
	return &mockTokenRepo{
		findBySymbolFunc: func(_ context.Context, symbol, network string) ([]token.Token, error) {
			var out []token.Token
			for _, t := range tokens {
				if t.Symbol != symbol {
					continue
				}
				if network != "" && t.Network != network {
					continue
				}
				out = append(out, t)
			}
			return out, nil
		},
		getByIDFunc: func(_ context.Context, id int64) (*token.Token, error) {
			for _, t := range tokens {
				if t.ID == id {
					tt := t
					return &tt, nil
				}
			}
			return nil, errors.Wrapf(errors.ErrTokenNotFound, "id %d", id)
		},
	}
}

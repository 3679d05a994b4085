package token

import "context"

// Repository defines token and network lookups used by the analytics engine
// to resolve selectors, plus writes for the seeder and test fixtures.
type Repository interface {
	// Resolution queries (read-only, used by the engine)

	// GetByID returns the token with the given id, or errors.ErrTokenNotFound.
	GetByID(ctx context.Context, id int64) (*Token, error)

	// FindBySymbol returns every token carrying the symbol, optionally
	// restricted to one network. Network "" means all networks.
	FindBySymbol(ctx context.Context, symbol, network string) ([]Token, error)

	// SymbolNetworks returns the distinct networks hosting the symbol.
	SymbolNetworks(ctx context.Context, symbol string) ([]string, error)

	// ListAll returns every known token (symbol similarity matching operates
	// on the full token set in memory).
	ListAll(ctx context.Context) ([]Token, error)

	// GetNetworkByName returns the network, or errors.ErrNetworkNotFound.
	GetNetworkByName(ctx context.Context, name string) (*Network, error)

	// ExistingNetworkNames filters names down to those present in the store.
	ExistingNetworkNames(ctx context.Context, names []string) ([]string, error)

	// Writes (seeder and test fixtures only)

	InsertToken(ctx context.Context, t *Token) error
	InsertNetwork(ctx context.Context, n *Network) error
	InsertMention(ctx context.Context, m *Mention) error
}

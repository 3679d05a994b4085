package seeds

import (
	"context"
	"time"

	"delphi/internal/domain/token"
	"delphi/internal/testsupport"
)

// NetworkBuilder builds network entities for testing
type NetworkBuilder struct {
	db  DBTX
	ctx context.Context
	n   *token.Network
}

// NewNetworkBuilder creates a new network builder
func NewNetworkBuilder(db DBTX, ctx context.Context) *NetworkBuilder {
	name := testsupport.UniqueName("network")
	return &NetworkBuilder{
		db:  db,
		ctx: ctx,
		n: &token.Network{
			Name:        name,
			DisplayName: name,
		},
	}
}

// WithName sets the unique network name
func (b *NetworkBuilder) WithName(name string) *NetworkBuilder {
	b.n.Name = name
	return b
}

// WithDisplayName sets the display name
func (b *NetworkBuilder) WithDisplayName(displayName string) *NetworkBuilder {
	b.n.DisplayName = displayName
	return b
}

// Insert inserts the network into the database
func (b *NetworkBuilder) Insert() (*token.Network, error) {
	const query = `
		INSERT INTO networks (name, display_name)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id
	`

	err := b.db.QueryRowContext(b.ctx, query, b.n.Name, b.n.DisplayName).Scan(&b.n.ID)
	if err != nil {
		return nil, err
	}

	return b.n, nil
}

// MustInsert inserts the network and panics on failure
func (b *NetworkBuilder) MustInsert() *token.Network {
	n, err := b.Insert()
	if err != nil {
		panic("failed to insert network: " + err.Error())
	}
	return n
}

// TokenBuilder builds token entities for testing
type TokenBuilder struct {
	db  DBTX
	ctx context.Context
	t   *token.Token
}

// NewTokenBuilder creates a new token builder
func NewTokenBuilder(db DBTX, ctx context.Context) *TokenBuilder {
	return &TokenBuilder{
		db:  db,
		ctx: ctx,
		t: &token.Token{
			Address:   testsupport.UniqueAddress(),
			Symbol:    testsupport.UniqueSymbol("TKN"),
			Name:      "Test Token",
			CreatedAt: time.Now().UTC(),
		},
	}
}

// WithSymbol sets the symbol
func (b *TokenBuilder) WithSymbol(symbol string) *TokenBuilder {
	b.t.Symbol = symbol
	return b
}

// WithName sets the display name
func (b *TokenBuilder) WithName(name string) *TokenBuilder {
	b.t.Name = name
	return b
}

// WithNetwork sets the hosting network name
func (b *TokenBuilder) WithNetwork(network string) *TokenBuilder {
	b.t.Network = network
	return b
}

// WithAddress sets the unique on-chain address
func (b *TokenBuilder) WithAddress(address string) *TokenBuilder {
	b.t.Address = address
	return b
}

// Insert inserts the token into the database
func (b *TokenBuilder) Insert() (*token.Token, error) {
	const query = `
		INSERT INTO tokens (address, symbol, name, network, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id
	`

	err := b.db.QueryRowContext(
		b.ctx,
		query,
		b.t.Address,
		b.t.Symbol,
		b.t.Name,
		b.t.Network,
		b.t.CreatedAt,
	).Scan(&b.t.ID)
	if err != nil {
		return nil, err
	}

	return b.t, nil
}

// MustInsert inserts the token and panics on failure
func (b *TokenBuilder) MustInsert() *token.Token {
	t, err := b.Insert()
	if err != nil {
		panic("failed to insert token: " + err.Error())
	}
	return t
}

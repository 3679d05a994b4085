package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"delphi/internal/domain/token"
	"delphi/pkg/errors"
)

// Compile-time check that we implement the interface
var _ token.Repository = (*TokenRepository)(nil)

// TokenRepository implements token.Repository using sqlx
type TokenRepository struct {
	db DBTX
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetByID retrieves a token by its database id
func (r *TokenRepository) GetByID(ctx context.Context, id int64) (*token.Token, error) {
	var t token.Token

	query := `
		SELECT id, address, symbol, name, COALESCE(network, '') AS network, created_at
		FROM tokens
		WHERE id = $1`

	err := r.db.GetContext(ctx, &t, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrTokenNotFound, "id %d", id)
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// FindBySymbol returns all tokens carrying the symbol, optionally restricted
// to one network. One symbol legitimately maps to several tokens when assets
// with the same ticker exist on different networks.
func (r *TokenRepository) FindBySymbol(ctx context.Context, symbol, network string) ([]token.Token, error) {
	query := `
		SELECT id, address, symbol, name, COALESCE(network, '') AS network, created_at
		FROM tokens
		WHERE symbol = $1`
	args := []interface{}{symbol}

	if network != "" {
		query += ` AND network = $2`
		args = append(args, network)
	}
	query += ` ORDER BY id`

	var tokens []token.Token
	if err := r.db.SelectContext(ctx, &tokens, query, args...); err != nil {
		return nil, err
	}

	return tokens, nil
}

// SymbolNetworks returns the distinct non-empty networks hosting the symbol
func (r *TokenRepository) SymbolNetworks(ctx context.Context, symbol string) ([]string, error) {
	query := `
		SELECT DISTINCT network
		FROM tokens
		WHERE symbol = $1 AND network IS NOT NULL AND network <> ''
		ORDER BY network`

	var networks []string
	if err := r.db.SelectContext(ctx, &networks, query, symbol); err != nil {
		return nil, err
	}

	return networks, nil
}

// ListAll returns every known token
func (r *TokenRepository) ListAll(ctx context.Context) ([]token.Token, error) {
	query := `
		SELECT id, address, symbol, name, COALESCE(network, '') AS network, created_at
		FROM tokens
		ORDER BY id`

	var tokens []token.Token
	if err := r.db.SelectContext(ctx, &tokens, query); err != nil {
		return nil, err
	}

	return tokens, nil
}

// GetNetworkByName retrieves a network by its unique name
func (r *TokenRepository) GetNetworkByName(ctx context.Context, name string) (*token.Network, error) {
	var n token.Network

	query := `
		SELECT id, name, COALESCE(display_name, '') AS display_name
		FROM networks
		WHERE name = $1`

	err := r.db.GetContext(ctx, &n, query, name)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNetworkNotFound, "name %q", name)
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// ExistingNetworkNames filters the given names down to those present in the
// store, preserving mention-volume-independent name order
func (r *TokenRepository) ExistingNetworkNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `
		SELECT name
		FROM networks
		WHERE name = ANY($1)
		ORDER BY name`

	var existing []string
	if err := r.db.SelectContext(ctx, &existing, query, pq.Array(names)); err != nil {
		return nil, err
	}

	return existing, nil
}

// InsertToken inserts a new token and backfills its generated id
func (r *TokenRepository) InsertToken(ctx context.Context, t *token.Token) error {
	query := `
		INSERT INTO tokens (address, symbol, name, network, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		t.Address, t.Symbol, t.Name, t.Network, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert token")
	}

	return nil
}

// InsertNetwork inserts a new network and backfills its generated id
func (r *TokenRepository) InsertNetwork(ctx context.Context, n *token.Network) error {
	query := `
		INSERT INTO networks (name, display_name)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, n.Name, n.DisplayName).Scan(&n.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert network")
	}

	return nil
}

// InsertMention inserts a new token mention and backfills its generated id
func (r *TokenRepository) InsertMention(ctx context.Context, m *token.Mention) error {
	query := `
		INSERT INTO token_mentions (post_id, token_id, mentioned_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, m.PostID, m.TokenID, m.MentionedAt).Scan(&m.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert mention")
	}

	return nil
}

package seeds

import (
	"context"
	"database/sql"

	"delphi/pkg/logger"
)

// DBTX is the interface that both *sql.DB and *sql.Tx satisfy
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Seeder is the central orchestrator for creating seed data
// It provides a fluent API to build annotated-post scenarios
type Seeder struct {
	db  DBTX
	ctx context.Context
	log *logger.Logger
}

// New creates a new Seeder instance
func New(db DBTX) *Seeder {
	return &Seeder{
		db:  db,
		ctx: context.Background(),
		log: logger.Get().With("component", "seeds"),
	}
}

// WithContext sets the context for database operations
func (s *Seeder) WithContext(ctx context.Context) *Seeder {
	s.ctx = ctx
	return s
}

// Log returns the logger instance
func (s *Seeder) Log() *logger.Logger {
	return s.log
}

// TokenIDByAddress looks up a token id by its unique address
func (s *Seeder) TokenIDByAddress(address string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(s.ctx, `SELECT id FROM tokens WHERE address = $1`, address).Scan(&id)
	return id, err
}

// Network starts building a Network entity
func (s *Seeder) Network() *NetworkBuilder {
	return NewNetworkBuilder(s.db, s.ctx)
}

// Token starts building a Token entity
func (s *Seeder) Token() *TokenBuilder {
	return NewTokenBuilder(s.db, s.ctx)
}

// Post starts building a Post entity with optional label and mentions
func (s *Seeder) Post() *PostBuilder {
	return NewPostBuilder(s.db, s.ctx)
}

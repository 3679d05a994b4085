package postgres

import (
	"context"
	"database/sql"

	"delphi/pkg/errors"
)

// schemaExecer is the minimal surface EnsureSchema needs. Both *sql.DB and
// the sqlx handles satisfy it.
type schemaExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SchemaDDL creates the five analytics tables. IF NOT EXISTS keeps it
// idempotent against a database that already carries the schema.
const SchemaDDL = `
CREATE TABLE IF NOT EXISTS posts (
	id              BIGSERIAL PRIMARY KEY,
	post_id         TEXT NOT NULL UNIQUE,
	text            TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	author_id       TEXT NOT NULL,
	author_username TEXT NOT NULL,
	repost_count    INT NOT NULL DEFAULT 0,
	like_count      INT NOT NULL DEFAULT 0,
	collected_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sentiment_labels (
	id               BIGSERIAL PRIMARY KEY,
	post_id          BIGINT NOT NULL UNIQUE REFERENCES posts(id) ON DELETE CASCADE,
	sentiment        TEXT NOT NULL CHECK (sentiment IN ('positive', 'negative', 'neutral')),
	confidence_score DOUBLE PRECISION NOT NULL,
	analyzed_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS networks (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	display_name TEXT
);

CREATE TABLE IF NOT EXISTS tokens (
	id         BIGSERIAL PRIMARY KEY,
	address    TEXT NOT NULL UNIQUE,
	symbol     TEXT NOT NULL,
	name       TEXT NOT NULL,
	network    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS token_mentions (
	id           BIGSERIAL PRIMARY KEY,
	post_id      BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	token_id     BIGINT NOT NULL REFERENCES tokens(id) ON DELETE CASCADE,
	mentioned_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_token_mentions_token_id ON token_mentions(token_id);
CREATE INDEX IF NOT EXISTS idx_token_mentions_post_id ON token_mentions(post_id);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
CREATE INDEX IF NOT EXISTS idx_tokens_symbol ON tokens(symbol);
`

// EnsureSchema applies the analytics DDL on the given connection or
// transaction.
func EnsureSchema(ctx context.Context, db schemaExecer) error {
	if _, err := db.ExecContext(ctx, SchemaDDL); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"delphi/internal/domain/post"
	"delphi/pkg/errors"
)

// Compile-time check that we implement the interface
var _ post.Repository = (*PostRepository)(nil)

// PostRepository implements post.Repository using sqlx
type PostRepository struct {
	db DBTX
}

// NewPostRepository creates a new post repository
func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

// Insert stores a collected post and backfills its generated id
func (r *PostRepository) Insert(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (
			post_id, text, created_at, author_id, author_username,
			repost_count, like_count, collected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.ExternalID, p.Text, p.CreatedAt, p.AuthorID, p.AuthorUsername,
		p.RepostCount, p.LikeCount, p.CollectedAt,
	).Scan(&p.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert post")
	}

	return nil
}

// GetByExternalID retrieves a post by its platform-assigned identifier
func (r *PostRepository) GetByExternalID(ctx context.Context, externalID string) (*post.Post, error) {
	var p post.Post

	query := `
		SELECT id, post_id, text, created_at, author_id, author_username,
			   repost_count, like_count, collected_at
		FROM posts
		WHERE post_id = $1`

	err := r.db.GetContext(ctx, &p, query, externalID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "post not found")
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

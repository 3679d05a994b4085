package postgres

import (
	"context"

	"delphi/internal/domain/sentiment"
	"delphi/pkg/errors"
)

// Compile-time check that we implement the interface
var _ sentiment.Repository = (*SentimentRepository)(nil)

// SentimentRepository implements sentiment.Repository using sqlx
type SentimentRepository struct {
	db DBTX
}

// NewSentimentRepository creates a new sentiment label repository
func NewSentimentRepository(db DBTX) *SentimentRepository {
	return &SentimentRepository{db: db}
}

// Insert attaches a sentiment label to a post and backfills the generated id.
// The post_id unique constraint rejects a second label for the same post.
func (r *SentimentRepository) Insert(ctx context.Context, label *sentiment.Label) error {
	query := `
		INSERT INTO sentiment_labels (post_id, sentiment, confidence_score, analyzed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		label.PostID, label.Sentiment, label.ConfidenceScore, label.AnalyzedAt,
	).Scan(&label.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert sentiment label")
	}

	return nil
}

package seeds

import (
	"context"
	"time"

	"delphi/internal/domain/post"
	"delphi/internal/domain/sentiment"
	"delphi/internal/testsupport"
)

// PostBuilder builds post entities for testing, with an optional sentiment
// label and token mentions inserted alongside the post
type PostBuilder struct {
	db  DBTX
	ctx context.Context
	p   *post.Post

	sentiment   sentiment.Sentiment
	confidence  float64
	mentions    []int64
	mentionedAt *time.Time
}

// NewPostBuilder creates a new post builder
func NewPostBuilder(db DBTX, ctx context.Context) *PostBuilder {
	now := time.Now().UTC()
	return &PostBuilder{
		db:  db,
		ctx: ctx,
		p: &post.Post{
			ExternalID:     testsupport.UniquePostID(),
			Text:           "test post",
			CreatedAt:      now,
			AuthorID:       testsupport.UniqueAuthorID(),
			AuthorUsername: testsupport.UniqueUsername(),
			CollectedAt:    now,
		},
	}
}

// WithExternalID sets the platform-assigned post identifier
func (b *PostBuilder) WithExternalID(externalID string) *PostBuilder {
	b.p.ExternalID = externalID
	return b
}

// WithText sets the post body
func (b *PostBuilder) WithText(text string) *PostBuilder {
	b.p.Text = text
	return b
}

// WithAuthor sets both the author id and username
func (b *PostBuilder) WithAuthor(authorID, username string) *PostBuilder {
	b.p.AuthorID = authorID
	b.p.AuthorUsername = username
	return b
}

// WithCreatedAt sets the post creation time
func (b *PostBuilder) WithCreatedAt(createdAt time.Time) *PostBuilder {
	b.p.CreatedAt = createdAt
	return b
}

// WithLikes sets the like count
func (b *PostBuilder) WithLikes(likes int) *PostBuilder {
	b.p.LikeCount = likes
	return b
}

// WithReposts sets the repost count
func (b *PostBuilder) WithReposts(reposts int) *PostBuilder {
	b.p.RepostCount = reposts
	return b
}

// WithSentiment attaches a sentiment label to the post
func (b *PostBuilder) WithSentiment(s sentiment.Sentiment, confidence float64) *PostBuilder {
	b.sentiment = s
	b.confidence = confidence
	return b
}

// WithMentions records a token mention for each given token id
func (b *PostBuilder) WithMentions(tokenIDs ...int64) *PostBuilder {
	b.mentions = append(b.mentions, tokenIDs...)
	return b
}

// WithMentionedAt sets the mention timestamp, which may differ from the
// post creation time. Defaults to the post creation time.
func (b *PostBuilder) WithMentionedAt(mentionedAt time.Time) *PostBuilder {
	b.mentionedAt = &mentionedAt
	return b
}

// Insert inserts the post plus any label and mentions into the database
func (b *PostBuilder) Insert() (*post.Post, error) {
	const postQuery = `
		INSERT INTO posts (post_id, text, created_at, author_id, author_username, repost_count, like_count, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := b.db.QueryRowContext(
		b.ctx,
		postQuery,
		b.p.ExternalID,
		b.p.Text,
		b.p.CreatedAt,
		b.p.AuthorID,
		b.p.AuthorUsername,
		b.p.RepostCount,
		b.p.LikeCount,
		b.p.CollectedAt,
	).Scan(&b.p.ID)
	if err != nil {
		return nil, err
	}

	if b.sentiment != "" {
		const labelQuery = `
			INSERT INTO sentiment_labels (post_id, sentiment, confidence_score, analyzed_at)
			VALUES ($1, $2, $3, $4)
		`

		_, err = b.db.ExecContext(b.ctx, labelQuery, b.p.ID, b.sentiment.String(), b.confidence, b.p.CreatedAt)
		if err != nil {
			return nil, err
		}
	}

	const mentionQuery = `
		INSERT INTO token_mentions (post_id, token_id, mentioned_at)
		VALUES ($1, $2, $3)
	`

	mentionedAt := b.p.CreatedAt
	if b.mentionedAt != nil {
		mentionedAt = *b.mentionedAt
	}
	for _, tokenID := range b.mentions {
		_, err = b.db.ExecContext(b.ctx, mentionQuery, b.p.ID, tokenID, mentionedAt)
		if err != nil {
			return nil, err
		}
	}

	return b.p, nil
}

// MustInsert inserts the post and panics on failure
func (b *PostBuilder) MustInsert() *post.Post {
	p, err := b.Insert()
	if err != nil {
		panic("failed to insert post: " + err.Error())
	}
	return p
}

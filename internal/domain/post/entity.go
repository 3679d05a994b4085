package post

import "time"

// Post is a social media post collected from the ingestion pipeline.
// Posts are immutable once ingested.
type Post struct {
	ID             int64     `db:"id"`
	ExternalID     string    `db:"post_id"` // platform-assigned identifier
	Text           string    `db:"text"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorID       string    `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	RepostCount    int       `db:"repost_count"`
	LikeCount      int       `db:"like_count"`
	CollectedAt    time.Time `db:"collected_at"`
}

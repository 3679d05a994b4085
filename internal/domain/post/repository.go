package post

import "context"

// Repository defines post data access. Writes exist for the seeder and test
// fixtures only; the analytics engine reads posts exclusively through joins
// issued by the analytics reader.
type Repository interface {
	Insert(ctx context.Context, p *Post) error
	GetByExternalID(ctx context.Context, externalID string) (*Post, error)
}

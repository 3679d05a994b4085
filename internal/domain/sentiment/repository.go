package sentiment

import "context"

// Repository defines write access to sentiment labels. The analytics engine
// never writes labels; this interface exists for the seeder and test fixtures.
type Repository interface {
	Insert(ctx context.Context, label *Label) error
}

package inspection

import (
	"context"
)

// DefaultCollection is served when a supplier's own collection is empty or
// unreachable. It holds the demo data set.
const DefaultCollection = "halos_data"

// Source abstracts a store of inspection records (PostgREST, Postgres, SQLite, memory).
type Source interface {
	Name() string
	// Records returns every record of collection ordered by analyzed_at ascending.
	Records(ctx context.Context, collection string) ([]Record, error)
}

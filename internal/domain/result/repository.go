package result

import "context"

// Repository exposes result persistence operations.
type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]Result, error)
	// Upsert writes all results in one transaction and returns how many rows were written.
	Upsert(ctx context.Context, items []Result) (int, error)
}

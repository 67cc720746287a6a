package person

import "context"

// Repository exposes person persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Person, error)
	// Ensure creates the person when missing and reports whether a row was added.
	Ensure(ctx context.Context, name string) (bool, error)
}

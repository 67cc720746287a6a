package prediction

import "context"

// Repository exposes prediction persistence operations.
type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]Prediction, error)
	ListByGameweekAndPerson(ctx context.Context, gameweek int, personName string) ([]Prediction, error)
	// SaveForPerson creates the person when missing and upserts every
	// prediction on (fixture id, person name) in one transaction.
	SaveForPerson(ctx context.Context, personName string, items []Prediction) error
}

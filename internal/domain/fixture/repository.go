package fixture

import "context"

// Repository exposes fixture persistence operations.
type Repository interface {
	// ListByGameweek returns fixtures ordered by kickoff (unknown last) then id.
	ListByGameweek(ctx context.Context, gameweek int) ([]Fixture, error)
	// SyncGameweek reconciles the stored fixtures of a gameweek against the
	// provider payload in one transaction. Fixtures are matched by external
	// match id; fixtures missing from the payload are removed along with
	// their predictions. All results of the gameweek are cleared.
	SyncGameweek(ctx context.Context, gameweek int, items []Fixture) (SyncSummary, error)
}

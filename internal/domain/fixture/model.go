package fixture

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// ErrExternalMatchConflict is returned when a provider match id is already
// stored under a different gameweek.
var ErrExternalMatchConflict = crerr.New("external match id already belongs to another gameweek")

// Fixture represents one scheduled match inside a gameweek.
type Fixture struct {
	ID              int64
	Gameweek        int
	ExternalMatchID int64
	KickoffUTC      *string
	Home            string
	Away            string
}

func (f Fixture) Validate() error {
	if f.Gameweek <= 0 {
		return fmt.Errorf("fixture gameweek must be positive")
	}
	if f.ExternalMatchID <= 0 {
		return fmt.Errorf("fixture external match id is required")
	}
	if strings.TrimSpace(f.Home) == "" || strings.TrimSpace(f.Away) == "" {
		return fmt.Errorf("fixture teams are required")
	}
	return nil
}

// SyncSummary counts what a gameweek fixture sync changed.
type SyncSummary struct {
	Inserted       int
	Updated        int
	Removed        int
	ResultsCleared int
	PicksRemoved   int
}

package result

import (
	"time"

	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
)

// Result is the final score of a fixture. A missing Result means unknown.
type Result struct {
	FixtureID int64
	Home      int
	Away      int
	UpdatedAt time.Time
}

func (r Result) Scoreline() scoring.Scoreline {
	return scoring.Scoreline{Home: r.Home, Away: r.Away}
}

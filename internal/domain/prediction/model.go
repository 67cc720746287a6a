package prediction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
)

// Prediction is one person's guessed scoreline for one fixture.
type Prediction struct {
	ID         int64
	FixtureID  int64
	Gameweek   int
	PersonName string
	Home       int
	Away       int
}

func (p Prediction) Scoreline() scoring.Scoreline {
	return scoring.Scoreline{Home: p.Home, Away: p.Away}
}

func (p Prediction) Validate() error {
	if p.FixtureID <= 0 {
		return fmt.Errorf("prediction fixture id is required")
	}
	if p.Gameweek <= 0 {
		return fmt.Errorf("prediction gameweek must be positive")
	}
	if strings.TrimSpace(p.PersonName) == "" {
		return fmt.Errorf("prediction person name is required")
	}
	if p.Home < 0 || p.Away < 0 {
		return fmt.Errorf("prediction goals must not be negative")
	}
	return nil
}

// ParseGoals parses one raw form value. Blank, non-integer and negative
// values are rejected with ok=false.
func ParseGoals(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	goals, err := strconv.Atoi(value)
	if err != nil || goals < 0 {
		return 0, false
	}
	return goals, true
}

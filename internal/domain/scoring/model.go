package scoring

const (
	ExactScorePoints     = 5
	CorrectOutcomePoints = 1
)

// Outcome is the direction of a scoreline: home win, away win or draw.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHomeWin:
		return "HOME_WIN"
	case OutcomeAwayWin:
		return "AWAY_WIN"
	default:
		return "DRAW"
	}
}

// Scoreline is a home/away goal pair, either predicted or actual.
type Scoreline struct {
	Home int
	Away int
}

func (s Scoreline) Outcome() Outcome {
	diff := s.Home - s.Away
	switch {
	case diff > 0:
		return OutcomeHomeWin
	case diff < 0:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Pick is one scored unit for aggregation: who predicted what, and the
// actual scoreline when the fixture has a known result.
type Pick struct {
	PersonName string
	FixtureID  int64
	Predicted  Scoreline
	Actual     *Scoreline
}

// Standing is one leaderboard row.
type Standing struct {
	Rank       int
	PersonName string
	Points     int
	Scored     int
	Exact      int
	Correct    int
}

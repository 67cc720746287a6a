package usecase

import (
	"context"
	"strings"
)

// MatchProvider supplies the matches of one gameweek from the upstream feed.
type MatchProvider interface {
	FetchGameweekMatches(ctx context.Context, gameweek int) ([]ExternalMatch, error)
}

// ExternalMatch is one upstream match. Full-time values are nil until known.
type ExternalMatch struct {
	ExternalID   int64
	HomeTeam     string
	AwayTeam     string
	KickoffUTC   *string
	Status       string
	FullTimeHome *int
	FullTimeAway *int
}

// FinalScore reports the full-time score only when both sides are present.
func (m ExternalMatch) FinalScore() (home, away int, ok bool) {
	if m.FullTimeHome == nil || m.FullTimeAway == nil {
		return 0, 0, false
	}
	return *m.FullTimeHome, *m.FullTimeAway, true
}

func teamNameOrTBD(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "TBD"
	}
	return name
}

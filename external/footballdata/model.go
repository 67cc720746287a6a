package footballdata

import (
	"strings"

	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64     `json:"id"`
	UTCDate  string    `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	HomeTeam teamItem  `json:"homeTeam"`
	AwayTeam teamItem  `json:"awayTeam"`
	Score    scoreItem `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type scoreItem struct {
	Winner   string    `json:"winner"`
	FullTime goalsItem `json:"fullTime"`
}

// goalsItem fields are null until the provider knows the score.
type goalsItem struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func (m matchItem) toExternal() usecase.ExternalMatch {
	out := usecase.ExternalMatch{
		ExternalID:   m.ID,
		HomeTeam:     strings.TrimSpace(m.HomeTeam.Name),
		AwayTeam:     strings.TrimSpace(m.AwayTeam.Name),
		Status:       strings.TrimSpace(m.Status),
		FullTimeHome: m.Score.FullTime.Home,
		FullTimeAway: m.Score.FullTime.Away,
	}
	if kickoff := strings.TrimSpace(m.UTCDate); kickoff != "" {
		out.KickoffUTC = &kickoff
	}
	return out
}

package httpapi

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

type addPersonRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type savePredictionsRequest struct {
	PersonName string                   `json:"person_name" validate:"required,max=100"`
	Entries    []predictionEntryRequest `json:"entries" validate:"max=100,dive"`
}

type predictionEntryRequest struct {
	FixtureID int64    `json:"fixture_id" validate:"required,gt=0"`
	Home      rawGoals `json:"home"`
	Away      rawGoals `json:"away"`
}

type resyncRequest struct {
	FromGameweek int      `json:"from_gameweek" validate:"required,gt=0"`
	ToGameweek   int      `json:"to_gameweek" validate:"omitempty,gtefield=FromGameweek"`
	SyncData     []string `json:"sync_data" validate:"max=2"`
	MaxWorkers   int      `json:"max_workers" validate:"omitempty,gt=0,lte=16"`
}

// rawGoals keeps the typed value as text so a bad entry can be skipped
// instead of failing the whole request. Numbers and strings are accepted.
type rawGoals string

func (g *rawGoals) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "null":
		*g = ""
	case strings.HasPrefix(text, `"`):
		var value string
		if err := sonic.Unmarshal(data, &value); err != nil {
			return err
		}
		*g = rawGoals(value)
	default:
		*g = rawGoals(text)
	}
	return nil
}

type sessionDTO struct {
	LoggedIn  bool   `json:"loggedIn"`
	Username  string `json:"username,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

type personDTO struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type addPersonDTO struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type scorelineDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type fixtureDTO struct {
	ID              int64         `json:"id"`
	Gameweek        int           `json:"gameweek"`
	ExternalMatchID int64         `json:"externalMatchId"`
	KickoffUTC      *string       `json:"kickoffUtc"`
	HomeTeam        string        `json:"homeTeam"`
	AwayTeam        string        `json:"awayTeam"`
	Result          *scorelineDTO `json:"result,omitempty"`
}

type entryFixtureDTO struct {
	ID         int64         `json:"id"`
	KickoffUTC *string       `json:"kickoffUtc"`
	HomeTeam   string        `json:"homeTeam"`
	AwayTeam   string        `json:"awayTeam"`
	Prediction *scorelineDTO `json:"prediction,omitempty"`
}

type entrySheetDTO struct {
	Gameweek   int               `json:"gameweek"`
	PersonName string            `json:"personName,omitempty"`
	People     []personDTO       `json:"people"`
	Fixtures   []entryFixtureDTO `json:"fixtures"`
}

type savePredictionsDTO struct {
	Gameweek   int    `json:"gameweek"`
	PersonName string `json:"personName"`
	Saved      int    `json:"saved"`
	Skipped    int    `json:"skipped"`
}

type fixtureSyncDTO struct {
	Gameweek           int `json:"gameweek"`
	Fetched            int `json:"fetched"`
	Skipped            int `json:"skipped"`
	Inserted           int `json:"inserted"`
	Updated            int `json:"updated"`
	Removed            int `json:"removed"`
	ResultsCleared     int `json:"resultsCleared"`
	PredictionsRemoved int `json:"predictionsRemoved"`
}

type resultSyncDTO struct {
	Gameweek int `json:"gameweek"`
	Fetched  int `json:"fetched"`
	Finished int `json:"finished"`
	Updated  int `json:"updated"`
}

type standingDTO struct {
	Rank       int    `json:"rank"`
	PersonName string `json:"personName"`
	Points     int    `json:"points"`
	Scored     int    `json:"scored"`
	Exact      int    `json:"exact"`
	Correct    int    `json:"correct"`
}

type leaderboardDTO struct {
	Gameweek  int           `json:"gameweek"`
	Standings []standingDTO `json:"standings"`
}

func personToDTO(v person.Person) personDTO {
	return personDTO{Name: v.Name, CreatedAt: formatTime(v.CreatedAt)}
}

func fixtureToDTO(v fixture.Fixture, res *result.Result) fixtureDTO {
	out := fixtureDTO{
		ID:              v.ID,
		Gameweek:        v.Gameweek,
		ExternalMatchID: v.ExternalMatchID,
		KickoffUTC:      v.KickoffUTC,
		HomeTeam:        v.Home,
		AwayTeam:        v.Away,
	}
	if res != nil {
		out.Result = &scorelineDTO{Home: res.Home, Away: res.Away}
	}
	return out
}

func entrySheetToDTO(v usecase.EntrySheet) entrySheetDTO {
	out := entrySheetDTO{
		Gameweek:   v.Gameweek,
		PersonName: v.PersonName,
		People:     make([]personDTO, 0, len(v.People)),
		Fixtures:   make([]entryFixtureDTO, 0, len(v.Fixtures)),
	}
	for _, item := range v.People {
		out.People = append(out.People, personToDTO(item))
	}
	for _, item := range v.Fixtures {
		row := entryFixtureDTO{
			ID:         item.ID,
			KickoffUTC: item.KickoffUTC,
			HomeTeam:   item.Home,
			AwayTeam:   item.Away,
		}
		if pick, ok := v.Predictions[item.ID]; ok {
			row.Prediction = predictionToScoreline(pick)
		}
		out.Fixtures = append(out.Fixtures, row)
	}
	return out
}

func predictionToScoreline(v prediction.Prediction) *scorelineDTO {
	return &scorelineDTO{Home: v.Home, Away: v.Away}
}

func standingsToDTO(gameweek int, rows []scoring.Standing) leaderboardDTO {
	out := leaderboardDTO{Gameweek: gameweek, Standings: make([]standingDTO, 0, len(rows))}
	for _, row := range rows {
		out.Standings = append(out.Standings, standingDTO{
			Rank:       row.Rank,
			PersonName: row.PersonName,
			Points:     row.Points,
			Scored:     row.Scored,
			Exact:      row.Exact,
			Correct:    row.Correct,
		})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

package sqlstore

import (
	"database/sql"
	"time"
)

type personTableModel struct {
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type fixtureTableModel struct {
	ID              int64          `db:"id"`
	Gameweek        int            `db:"gameweek"`
	ExternalMatchID int64          `db:"external_match_id"`
	KickoffUTC      sql.NullString `db:"kickoff_utc"`
	Home            string         `db:"home"`
	Away            string         `db:"away"`
}

type fixtureInsertModel struct {
	Gameweek        int            `db:"gameweek"`
	ExternalMatchID int64          `db:"external_match_id"`
	KickoffUTC      sql.NullString `db:"kickoff_utc"`
	Home            string         `db:"home"`
	Away            string         `db:"away"`
}

type resultTableModel struct {
	FixtureID int64     `db:"fixture_id"`
	ActHome   int       `db:"act_home"`
	ActAway   int       `db:"act_away"`
	UpdatedAt time.Time `db:"updated_at"`
}

type predictionTableModel struct {
	ID         int64  `db:"id"`
	FixtureID  int64  `db:"fixture_id"`
	Gameweek   int    `db:"gameweek"`
	PersonName string `db:"person_name"`
	PredHome   int    `db:"pred_home"`
	PredAway   int    `db:"pred_away"`
}

type predictionInsertModel struct {
	FixtureID  int64     `db:"fixture_id"`
	Gameweek   int       `db:"gameweek"`
	PersonName string    `db:"person_name"`
	PredHome   int       `db:"pred_home"`
	PredAway   int       `db:"pred_away"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

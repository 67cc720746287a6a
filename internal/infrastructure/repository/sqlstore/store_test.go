package sqlstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	"github.com/riskibarqy/pl-predictor/internal/platform/dbmigrate"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:sqlstore_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := sqlx.Open(dbmigrate.DriverSQLite, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbmigrate.Up(db.DB, dbmigrate.DriverSQLite, dsn))
	return db
}

func strPtr(v string) *string { return &v }

func gameweekFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ExternalMatchID: 1001, KickoffUTC: strPtr("2024-08-17T14:00:00Z"), Home: "Arsenal", Away: "Wolves"},
		{ExternalMatchID: 1002, KickoffUTC: nil, Home: "Everton", Away: "Brighton"},
		{ExternalMatchID: 1003, KickoffUTC: strPtr("2024-08-16T19:00:00Z"), Home: "Man United", Away: "Fulham"},
	}
}

func TestPersonRepository_EnsureAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewPersonRepository(newTestDB(t))

	created, err := repo.Ensure(ctx, "bob")
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.Ensure(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.Ensure(ctx, "bob")
	require.NoError(t, err)
	require.False(t, created)

	people, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, "Alice", people[0].Name)
	require.Equal(t, "bob", people[1].Name)
	require.False(t, people[0].CreatedAt.IsZero())
}

func TestFixtureRepository_SyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewFixtureRepository(newTestDB(t))

	summary, err := repo.SyncGameweek(ctx, 1, gameweekFixtures())
	require.NoError(t, err)
	require.Equal(t, 3, summary.Inserted)

	first, err := repo.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Equal(t, int64(1003), first[0].ExternalMatchID)
	require.Equal(t, int64(1001), first[1].ExternalMatchID)
	require.Equal(t, int64(1002), first[2].ExternalMatchID)
	require.Nil(t, first[2].KickoffUTC)

	summary, err = repo.SyncGameweek(ctx, 1, gameweekFixtures())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Inserted)
	require.Equal(t, 3, summary.Updated)
	require.Equal(t, 0, summary.Removed)

	second, err := repo.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFixtureRepository_SyncRemovesStaleFixturesAndTheirPredictions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fixtures := NewFixtureRepository(db)
	results := NewResultRepository(db)
	predictions := NewPredictionRepository(db)

	_, err := fixtures.SyncGameweek(ctx, 1, gameweekFixtures())
	require.NoError(t, err)
	stored, err := fixtures.ListByGameweek(ctx, 1)
	require.NoError(t, err)

	picks := make([]prediction.Prediction, 0, len(stored))
	for _, item := range stored {
		picks = append(picks, prediction.Prediction{FixtureID: item.ID, Gameweek: 1, Home: 1, Away: 0})
	}
	require.NoError(t, predictions.SaveForPerson(ctx, "Alice", picks))
	_, err = results.Upsert(ctx, []result.Result{{FixtureID: stored[0].ID, Home: 2, Away: 1}})
	require.NoError(t, err)

	summary, err := fixtures.SyncGameweek(ctx, 1, gameweekFixtures()[:2])
	require.NoError(t, err)
	require.Equal(t, 2, summary.Updated)
	require.Equal(t, 1, summary.Removed)
	require.Equal(t, 1, summary.PicksRemoved)
	require.Equal(t, 1, summary.ResultsCleared)

	remaining, err := predictions.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	known, err := results.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, known)
}

func TestFixtureRepository_ExternalIDInOtherGameweekIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewFixtureRepository(newTestDB(t))

	_, err := repo.SyncGameweek(ctx, 1, gameweekFixtures())
	require.NoError(t, err)

	_, err = repo.SyncGameweek(ctx, 2, []fixture.Fixture{
		{ExternalMatchID: 2001, Home: "Chelsea", Away: "Spurs"},
		{ExternalMatchID: 1001, Home: "Arsenal", Away: "Wolves"},
	})
	require.Error(t, err)
	require.True(t, crerr.Is(err, fixture.ErrExternalMatchConflict))

	gw2, err := repo.ListByGameweek(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, gw2)

	gw1, err := repo.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, gw1, 3)
}

func TestResultRepository_UpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fixtures := NewFixtureRepository(db)
	results := NewResultRepository(db)

	_, err := fixtures.SyncGameweek(ctx, 3, gameweekFixtures()[:1])
	require.NoError(t, err)
	stored, err := fixtures.ListByGameweek(ctx, 3)
	require.NoError(t, err)
	fixtureID := stored[0].ID

	written, err := results.Upsert(ctx, []result.Result{{FixtureID: fixtureID, Home: 0, Away: 0}})
	require.NoError(t, err)
	require.Equal(t, 1, written)

	_, err = results.Upsert(ctx, []result.Result{{FixtureID: fixtureID, Home: 2, Away: 0}})
	require.NoError(t, err)

	got, err := results.ListByGameweek(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].Home)
	require.Equal(t, 0, got[0].Away)
	require.False(t, got[0].UpdatedAt.IsZero())

	written, err = results.Upsert(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, written)
}

func TestResultRepository_UnknownFixtureFails(t *testing.T) {
	ctx := context.Background()
	results := NewResultRepository(newTestDB(t))

	_, err := results.Upsert(ctx, []result.Result{{FixtureID: 999, Home: 1, Away: 1}})
	require.Error(t, err)
}

func TestPredictionRepository_SaveTwiceKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fixtures := NewFixtureRepository(db)
	predictions := NewPredictionRepository(db)
	people := NewPersonRepository(db)

	_, err := fixtures.SyncGameweek(ctx, 1, gameweekFixtures()[:1])
	require.NoError(t, err)
	stored, err := fixtures.ListByGameweek(ctx, 1)
	require.NoError(t, err)

	pick := prediction.Prediction{FixtureID: stored[0].ID, Gameweek: 1, Home: 1, Away: 1}
	require.NoError(t, predictions.SaveForPerson(ctx, "Carol", []prediction.Prediction{pick}))
	pick.Home = 3
	require.NoError(t, predictions.SaveForPerson(ctx, "Carol", []prediction.Prediction{pick}))

	got, err := predictions.ListByGameweekAndPerson(ctx, 1, "Carol")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].Home)
	require.Equal(t, 1, got[0].Away)
	require.Equal(t, "Carol", got[0].PersonName)

	others, err := predictions.ListByGameweekAndPerson(ctx, 1, "carol")
	require.NoError(t, err)
	require.Empty(t, others)

	everyone, err := people.List(ctx)
	require.NoError(t, err)
	require.Len(t, everyone, 1)
	require.Equal(t, "Carol", everyone[0].Name)
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	require.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	require.False(t, isUniqueViolation(fmt.Errorf("boom")))
}

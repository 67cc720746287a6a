package memory

import (
	"context"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
)

func kickoff(v string) *string { return &v }

func TestFixtureRepository_SyncUpsertsAndCascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	fixtures := NewFixtureRepository(store)
	results := NewResultRepository(store)
	predictions := NewPredictionRepository(store)

	payload := []fixture.Fixture{
		{ExternalMatchID: 10, KickoffUTC: kickoff("2024-08-17T14:00:00Z"), Home: "Arsenal", Away: "Wolves"},
		{ExternalMatchID: 11, Home: "Everton", Away: "Brighton"},
		{ExternalMatchID: 12, KickoffUTC: kickoff("2024-08-16T19:00:00Z"), Home: "Man United", Away: "Fulham"},
	}
	summary, err := fixtures.SyncGameweek(ctx, 1, payload)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Inserted)

	stored, err := fixtures.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{12, 10, 11}, []int64{stored[0].ExternalMatchID, stored[1].ExternalMatchID, stored[2].ExternalMatchID})

	require.NoError(t, predictions.SaveForPerson(ctx, "Alice", []prediction.Prediction{
		{FixtureID: stored[0].ID, Gameweek: 1, Home: 2, Away: 0},
		{FixtureID: stored[1].ID, Gameweek: 1, Home: 1, Away: 1},
	}))
	_, err = results.Upsert(ctx, []result.Result{{FixtureID: stored[1].ID, Home: 1, Away: 1}})
	require.NoError(t, err)

	summary, err = fixtures.SyncGameweek(ctx, 1, payload[:2])
	require.NoError(t, err)
	require.Equal(t, fixture.SyncSummary{Updated: 2, Removed: 1, ResultsCleared: 1, PicksRemoved: 1}, summary)

	again, err := fixtures.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, again, 2)
	require.Equal(t, stored[1].ID, again[0].ID)

	picks, err := predictions.ListByGameweek(ctx, 1)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.Equal(t, stored[1].ID, picks[0].FixtureID)
}

func TestFixtureRepository_ConflictLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	fixtures := NewFixtureRepository(store)

	_, err := fixtures.SyncGameweek(ctx, 1, []fixture.Fixture{{ExternalMatchID: 10, Home: "A", Away: "B"}})
	require.NoError(t, err)

	_, err = fixtures.SyncGameweek(ctx, 2, []fixture.Fixture{
		{ExternalMatchID: 20, Home: "C", Away: "D"},
		{ExternalMatchID: 10, Home: "A", Away: "B"},
	})
	require.True(t, crerr.Is(err, fixture.ErrExternalMatchConflict))

	gw2, err := fixtures.ListByGameweek(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, gw2)
}

func TestPredictionRepository_SaveCreatesPersonAndOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	fixtures := NewFixtureRepository(store)
	predictions := NewPredictionRepository(store)
	people := NewPersonRepository(store)

	_, err := fixtures.SyncGameweek(ctx, 4, []fixture.Fixture{{ExternalMatchID: 40, Home: "A", Away: "B"}})
	require.NoError(t, err)
	stored, err := fixtures.ListByGameweek(ctx, 4)
	require.NoError(t, err)

	pick := prediction.Prediction{FixtureID: stored[0].ID, Gameweek: 4, Home: 0, Away: 0}
	require.NoError(t, predictions.SaveForPerson(ctx, "Dan", []prediction.Prediction{pick}))
	pick.Away = 2
	require.NoError(t, predictions.SaveForPerson(ctx, "Dan", []prediction.Prediction{pick}))

	got, err := predictions.ListByGameweekAndPerson(ctx, 4, "Dan")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].Away)

	everyone, err := people.List(ctx)
	require.NoError(t, err)
	require.Len(t, everyone, 1)

	err = predictions.SaveForPerson(ctx, "Dan", []prediction.Prediction{{FixtureID: 999, Gameweek: 4}})
	require.Error(t, err)
}

func TestResultRepository_RequiresFixture(t *testing.T) {
	_, err := NewResultRepository(NewStore()).Upsert(context.Background(), []result.Result{{FixtureID: 1}})
	require.Error(t, err)
}

package usecase

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

func TestSyncService_Resync_RunsFixturesBeforeResults(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	svc := newTestServices()
	for gw := 1; gw <= 3; gw++ {
		id := int64(gw * 100)
		svc.provider.set(gw,
			match(id+1, "A", "B", intPtr(1), intPtr(0)),
			match(id+2, "C", "D", nil, nil),
		)
	}
	svc.provider.fail(2, fmt.Errorf("%w: football-data status=500", ErrDependencyUnavailable))

	out, err := svc.sync.Resync(ctx, ResyncInput{FromGameweek: 1, ToGameweek: 3, MaxWorkers: 2})
	require.NoError(t, err)
	require.Equal(t, 3, out.GameweekCount)
	require.Equal(t, 6, out.TaskCount)
	require.Equal(t, 2, out.WorkerCount)
	require.Equal(t, 4, out.SuccessCount)
	require.Equal(t, 1, out.FailedCount)
	require.Equal(t, 1, out.SkippedCount)
	require.Equal(t, []string{"fixtures", "results"}, out.RequestedData)

	require.Len(t, out.Tasks, 6)
	require.Equal(t, ResyncTaskResult{Gameweek: 1, SyncData: "fixtures", Status: "success", Records: 2}, withoutDuration(out.Tasks[0]))
	require.Equal(t, ResyncTaskResult{Gameweek: 1, SyncData: "results", Status: "success", Records: 1}, withoutDuration(out.Tasks[1]))
	require.Equal(t, "failed", out.Tasks[2].Status)
	require.Equal(t, "skipped", out.Tasks[3].Status)
	require.Equal(t, 3, out.Tasks[5].Gameweek)

	views, err := svc.fixtures.ListFixtures(ctx, 3)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Result)
}

func TestSyncService_Resync_EmptyProviderPayloadCountsRemovals(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	svc := newTestServices()
	svc.provider.set(4,
		match(401, "A", "B", nil, nil),
		match(402, "C", "D", nil, nil),
	)
	_, err := svc.sync.SyncFixtures(ctx, 4)
	require.NoError(t, err)

	svc.provider.set(4)
	out, err := svc.sync.Resync(ctx, ResyncInput{FromGameweek: 4, ToGameweek: 4, SyncData: []string{"fixtures"}})
	require.NoError(t, err)
	require.Equal(t, 1, out.SuccessCount)
	require.Equal(t, 0, out.SkippedCount)
	require.Equal(t, ResyncTaskResult{Gameweek: 4, SyncData: "fixtures", Status: "success", Records: 2}, withoutDuration(out.Tasks[0]))

	views, err := svc.fixtures.ListFixtures(ctx, 4)
	require.NoError(t, err)
	require.Empty(t, views)

	out, err = svc.sync.Resync(ctx, ResyncInput{FromGameweek: 4, ToGameweek: 4, SyncData: []string{"fixtures"}})
	require.NoError(t, err)
	require.Equal(t, ResyncTaskResult{Gameweek: 4, SyncData: "fixtures", Status: "skipped", Message: "provider returned no matches"}, withoutDuration(out.Tasks[0]))
}

func TestSubmitAndWait_WaitsForSubmittedJobsOnSubmitError(t *testing.T) {
	t.Parallel()

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	require.NoError(t, err)
	defer pool.Release()

	var finished atomic.Bool
	jobs := []func(){
		func() {
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
		},
		func() {},
	}

	err = submitAndWait(pool, jobs)
	require.Error(t, err)
	require.True(t, errors.Is(err, ants.ErrPoolOverload))
	require.True(t, finished.Load())
}

func TestSubmitAndWait_RunsEveryJob(t *testing.T) {
	t.Parallel()

	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	defer pool.Release()

	var ran atomic.Int32
	jobs := make([]func(), 5)
	for i := range jobs {
		jobs[i] = func() { ran.Add(1) }
	}
	require.NoError(t, submitAndWait(pool, jobs))
	require.Equal(t, int32(5), ran.Load())
}

func TestSyncService_Resync_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	cases := []ResyncInput{
		{FromGameweek: 0, ToGameweek: 2},
		{FromGameweek: 5, ToGameweek: 4},
		{FromGameweek: 1, ToGameweek: 60},
		{FromGameweek: 1, SyncData: []string{"standings"}},
	}
	for _, input := range cases {
		_, err := svc.sync.Resync(t.Context(), input)
		require.ErrorIs(t, err, ErrInvalidInput, "input %+v", input)
	}
}

func TestNormalizeResyncKinds(t *testing.T) {
	t.Parallel()

	kinds, raw, err := normalizeResyncKinds([]string{" Results ", "fixtures", "results"})
	require.NoError(t, err)
	require.Equal(t, []resyncDataKind{resyncDataFixtures, resyncDataResults}, kinds)
	require.Equal(t, []string{"fixtures", "results"}, raw)

	kinds, _, err = normalizeResyncKinds([]string{"results"})
	require.NoError(t, err)
	require.Equal(t, []resyncDataKind{resyncDataResults}, kinds)
}

func TestNormalizeResyncWorkerCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, defaultResyncMaxWorkers, normalizeResyncWorkerCount(0, 10))
	require.Equal(t, 3, normalizeResyncWorkerCount(8, 3))
	require.Equal(t, maxResyncWorkers, normalizeResyncWorkerCount(100, 100))
	require.Equal(t, 1, normalizeResyncWorkerCount(-1, 1))
}

func withoutDuration(row ResyncTaskResult) ResyncTaskResult {
	row.DurationMs = 0
	return row
}

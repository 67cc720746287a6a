package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	maxResyncGameweeks      = 38
	defaultResyncMaxWorkers = 4
	maxResyncWorkers        = 16
)

type ResyncInput struct {
	FromGameweek int
	ToGameweek   int
	SyncData     []string
	MaxWorkers   int
}

type ResyncResult struct {
	GameweekCount int                `json:"gameweek_count"`
	TaskCount     int                `json:"task_count"`
	SuccessCount  int                `json:"success_count"`
	FailedCount   int                `json:"failed_count"`
	SkippedCount  int                `json:"skipped_count"`
	WorkerCount   int                `json:"worker_count"`
	Tasks         []ResyncTaskResult `json:"tasks"`
	RequestedData []string           `json:"requested_data"`
}

type ResyncTaskResult struct {
	Gameweek   int    `json:"gameweek"`
	SyncData   string `json:"sync_data"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type resyncDataKind string

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"
	resyncStatusSkipped = "skipped"

	resyncDataFixtures resyncDataKind = "fixtures"
	resyncDataResults  resyncDataKind = "results"
)

// Resync runs fixture and result syncs over a gameweek range on a bounded
// worker pool. One job per gameweek runs its kinds in order, so fixtures
// always land before results of the same gameweek.
func (s *SyncService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Resync")
	defer span.End()

	kinds, rawKinds, err := normalizeResyncKinds(input.SyncData)
	if err != nil {
		return ResyncResult{}, err
	}
	gameweeks, err := resyncGameweekRange(input.FromGameweek, input.ToGameweek)
	if err != nil {
		return ResyncResult{}, err
	}

	requested := input.MaxWorkers
	if requested <= 0 {
		requested = s.resyncWorkers
	}
	workerCount := normalizeResyncWorkerCount(requested, len(gameweeks))
	result := ResyncResult{
		GameweekCount: len(gameweeks),
		TaskCount:     len(gameweeks) * len(kinds),
		WorkerCount:   workerCount,
		RequestedData: rawKinds,
		Tasks:         make([]ResyncTaskResult, 0, len(gameweeks)*len(kinds)),
	}

	rows := make(chan ResyncTaskResult, result.TaskCount)

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	jobs := make([]func(), 0, len(gameweeks))
	for _, gameweek := range gameweeks {
		gameweek := gameweek
		jobs = append(jobs, func() {
			fixturesFailed := false
			for _, kind := range kinds {
				row := ResyncTaskResult{Gameweek: gameweek, SyncData: string(kind)}
				start := time.Now()
				if kind == resyncDataResults && fixturesFailed {
					row.Status = resyncStatusSkipped
					row.Message = "fixture sync failed for this gameweek"
				} else {
					row.Records, row.Status, row.Message = s.runResyncTask(ctx, gameweek, kind)
				}
				row.DurationMs = time.Since(start).Milliseconds()

				switch row.Status {
				case resyncStatusSuccess:
					successCount.Add(1)
				case resyncStatusSkipped:
					skippedCount.Add(1)
				default:
					failedCount.Add(1)
					if kind == resyncDataFixtures {
						fixturesFailed = true
					}
				}
				rows <- row
			}
		})
	}
	if err := submitAndWait(pool, jobs); err != nil {
		return ResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
	}
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}

	order := map[string]int{string(resyncDataFixtures): 0, string(resyncDataResults): 1}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Gameweek != result.Tasks[j].Gameweek {
			return result.Tasks[i].Gameweek < result.Tasks[j].Gameweek
		}
		return order[result.Tasks[i].SyncData] < order[result.Tasks[j].SyncData]
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "resync finished",
		"from_gameweek", input.FromGameweek,
		"to_gameweek", input.ToGameweek,
		"tasks", result.TaskCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

// submitAndWait hands every job to the pool and returns once all submitted
// jobs have finished, including when a later submit fails.
func submitAndWait(pool *ants.Pool, jobs []func()) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for _, job := range jobs {
		job := job
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			job()
		}); err != nil {
			wg.Done()
			return err
		}
	}
	return nil
}

func (s *SyncService) runResyncTask(ctx context.Context, gameweek int, kind resyncDataKind) (int, string, string) {
	switch kind {
	case resyncDataFixtures:
		out, err := s.SyncFixtures(ctx, gameweek)
		if err != nil {
			s.logger.WarnContext(ctx, "resync fixtures failed", "gameweek", gameweek, "error", err)
			return 0, resyncStatusFailed, err.Error()
		}
		records := out.Summary.Inserted + out.Summary.Updated + out.Summary.Removed
		if out.Fetched == 0 && records == 0 {
			return 0, resyncStatusSkipped, "provider returned no matches"
		}
		return records, resyncStatusSuccess, ""
	case resyncDataResults:
		out, err := s.SyncResults(ctx, gameweek)
		if err != nil {
			s.logger.WarnContext(ctx, "resync results failed", "gameweek", gameweek, "error", err)
			return 0, resyncStatusFailed, err.Error()
		}
		if out.Finished == 0 {
			return 0, resyncStatusSkipped, "no finished matches"
		}
		return out.Updated, resyncStatusSuccess, ""
	default:
		return 0, resyncStatusSkipped, "unsupported sync_data"
	}
}

func normalizeResyncKinds(values []string) ([]resyncDataKind, []string, error) {
	if len(values) == 0 {
		return []resyncDataKind{resyncDataFixtures, resyncDataResults},
			[]string{string(resyncDataFixtures), string(resyncDataResults)}, nil
	}

	seen := make(map[resyncDataKind]struct{}, 2)
	for _, value := range values {
		kind := resyncDataKind(strings.ToLower(strings.TrimSpace(value)))
		switch kind {
		case resyncDataFixtures, resyncDataResults:
			seen[kind] = struct{}{}
		case "all":
			seen[resyncDataFixtures] = struct{}{}
			seen[resyncDataResults] = struct{}{}
		default:
			return nil, nil, fmt.Errorf("%w: unsupported sync_data %q", ErrInvalidInput, value)
		}
	}

	kinds := make([]resyncDataKind, 0, 2)
	raw := make([]string, 0, 2)
	for _, kind := range []resyncDataKind{resyncDataFixtures, resyncDataResults} {
		if _, ok := seen[kind]; ok {
			kinds = append(kinds, kind)
			raw = append(raw, string(kind))
		}
	}
	return kinds, raw, nil
}

func resyncGameweekRange(from, to int) ([]int, error) {
	if to == 0 {
		to = from
	}
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: gameweeks must be greater than zero", ErrInvalidInput)
	}
	if to < from {
		return nil, fmt.Errorf("%w: to_gameweek must not be before from_gameweek", ErrInvalidInput)
	}
	if to-from+1 > maxResyncGameweeks {
		return nil, fmt.Errorf("%w: at most %d gameweeks per resync", ErrInvalidInput, maxResyncGameweeks)
	}

	out := make([]int, 0, to-from+1)
	for gw := from; gw <= to; gw++ {
		out = append(out, gw)
	}
	return out, nil
}

func normalizeResyncWorkerCount(requested, jobs int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultResyncMaxWorkers
	}
	if workers > maxResyncWorkers {
		workers = maxResyncWorkers
	}
	if jobs > 0 && workers > jobs {
		workers = jobs
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}

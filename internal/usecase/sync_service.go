package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

// GameweekInvalidator drops derived data (cached leaderboards) of a gameweek.
type GameweekInvalidator interface {
	InvalidateGameweek(ctx context.Context, gameweek int)
}

type FixtureSyncResult struct {
	Gameweek int
	Fetched  int
	Skipped  int
	Summary  fixture.SyncSummary
}

type ResultSyncResult struct {
	Gameweek int
	Fetched  int
	Finished int
	Updated  int
}

type SyncService struct {
	provider    MatchProvider
	fixtureRepo fixture.Repository
	resultRepo  result.Repository
	invalidator GameweekInvalidator
	locks       *gameweekLocks
	logger      *logging.Logger

	resyncWorkers int
}

func NewSyncService(
	provider MatchProvider,
	fixtureRepo fixture.Repository,
	resultRepo result.Repository,
	invalidator GameweekInvalidator,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		provider:    provider,
		fixtureRepo: fixtureRepo,
		resultRepo:  resultRepo,
		invalidator: invalidator,
		locks:       newGameweekLocks(),
		logger:      logger,
	}
}

// SetResyncWorkers sets the pool size used when a resync request does not
// ask for one.
func (s *SyncService) SetResyncWorkers(n int) {
	s.resyncWorkers = n
}

// SyncFixtures reconciles the stored fixtures of a gameweek with the
// provider. The fetch happens before any write, so a failed fetch leaves the
// store untouched.
func (s *SyncService) SyncFixtures(ctx context.Context, gameweek int) (FixtureSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncFixtures", gameweekAttr(gameweek))
	defer span.End()

	if err := validateGameweek(gameweek); err != nil {
		return FixtureSyncResult{}, err
	}
	if s.provider == nil {
		return FixtureSyncResult{}, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	unlock := s.locks.lock(gameweek)
	defer unlock()

	matches, err := s.provider.FetchGameweekMatches(ctx, gameweek)
	if err != nil {
		return FixtureSyncResult{}, fmt.Errorf("fetch matches gameweek=%d: %w", gameweek, err)
	}

	out := FixtureSyncResult{Gameweek: gameweek, Fetched: len(matches)}
	items := make([]fixture.Fixture, 0, len(matches))
	for _, match := range matches {
		if match.ExternalID <= 0 {
			out.Skipped++
			continue
		}
		items = append(items, fixture.Fixture{
			Gameweek:        gameweek,
			ExternalMatchID: match.ExternalID,
			KickoffUTC:      match.KickoffUTC,
			Home:            teamNameOrTBD(match.HomeTeam),
			Away:            teamNameOrTBD(match.AwayTeam),
		})
	}
	if out.Skipped > 0 {
		s.logger.WarnContext(ctx, "skip provider matches without id", "gameweek", gameweek, "skipped", out.Skipped)
	}

	summary, err := s.fixtureRepo.SyncGameweek(ctx, gameweek, items)
	if err != nil {
		if errors.Is(err, fixture.ErrExternalMatchConflict) {
			return FixtureSyncResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return FixtureSyncResult{}, fmt.Errorf("sync fixtures gameweek=%d: %w", gameweek, err)
	}
	out.Summary = summary
	s.invalidate(ctx, gameweek)

	s.logger.InfoContext(ctx, "fixtures synced",
		"gameweek", gameweek,
		"fetched", out.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"removed", summary.Removed,
		"predictions_removed", summary.PicksRemoved,
	)
	return out, nil
}

// SyncResults upserts results for stored fixtures whose match has a complete
// full-time score. Everything else is left as it is.
func (s *SyncService) SyncResults(ctx context.Context, gameweek int) (ResultSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncResults", gameweekAttr(gameweek))
	defer span.End()

	if err := validateGameweek(gameweek); err != nil {
		return ResultSyncResult{}, err
	}
	if s.provider == nil {
		return ResultSyncResult{}, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	unlock := s.locks.lock(gameweek)
	defer unlock()

	matches, err := s.provider.FetchGameweekMatches(ctx, gameweek)
	if err != nil {
		return ResultSyncResult{}, fmt.Errorf("fetch matches gameweek=%d: %w", gameweek, err)
	}

	type score struct{ home, away int }
	finished := make(map[int64]score, len(matches))
	for _, match := range matches {
		home, away, ok := match.FinalScore()
		if !ok {
			continue
		}
		finished[match.ExternalID] = score{home: home, away: away}
	}

	out := ResultSyncResult{Gameweek: gameweek, Fetched: len(matches), Finished: len(finished)}
	if len(finished) == 0 {
		return out, nil
	}

	stored, err := s.fixtureRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return ResultSyncResult{}, fmt.Errorf("list fixtures gameweek=%d: %w", gameweek, err)
	}

	items := make([]result.Result, 0, len(finished))
	for _, item := range stored {
		sc, ok := finished[item.ExternalMatchID]
		if !ok {
			continue
		}
		items = append(items, result.Result{FixtureID: item.ID, Home: sc.home, Away: sc.away})
	}

	updated, err := s.resultRepo.Upsert(ctx, items)
	if err != nil {
		return ResultSyncResult{}, fmt.Errorf("upsert results gameweek=%d: %w", gameweek, err)
	}
	out.Updated = updated
	if updated > 0 {
		s.invalidate(ctx, gameweek)
	}

	s.logger.InfoContext(ctx, "results synced",
		"gameweek", gameweek,
		"fetched", out.Fetched,
		"finished", out.Finished,
		"updated", out.Updated,
	)
	return out, nil
}

func (s *SyncService) invalidate(ctx context.Context, gameweek int) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.InvalidateGameweek(ctx, gameweek)
}

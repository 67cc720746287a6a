package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
	"github.com/riskibarqy/pl-predictor/internal/platform/cache"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:gw:"

type LeaderboardService struct {
	predictionRepo prediction.Repository
	resultRepo     result.Repository
	cache          *cache.Store[[]scoring.Standing]
	logger         *logging.Logger
}

// NewLeaderboardService builds the aggregator. A nil cache disables caching.
func NewLeaderboardService(
	predictionRepo prediction.Repository,
	resultRepo result.Repository,
	store *cache.Store[[]scoring.Standing],
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		predictionRepo: predictionRepo,
		resultRepo:     resultRepo,
		cache:          store,
		logger:         logger,
	}
}

// Leaderboard ranks everyone with at least one scored prediction in the
// gameweek. Ties on points are broken by name.
func (s *LeaderboardService) Leaderboard(ctx context.Context, gameweek int) ([]scoring.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard", gameweekAttr(gameweek))
	defer span.End()

	if err := validateGameweek(gameweek); err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.compute(ctx, gameweek)
	}

	standings, err := s.cache.GetOrLoad(ctx, leaderboardCacheKey(gameweek), func(ctx context.Context) ([]scoring.Standing, error) {
		return s.compute(ctx, gameweek)
	})
	if err != nil {
		return nil, err
	}
	return append([]scoring.Standing(nil), standings...), nil
}

func (s *LeaderboardService) InvalidateGameweek(ctx context.Context, gameweek int) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leaderboardCacheKey(gameweek))
}

func (s *LeaderboardService) compute(ctx context.Context, gameweek int) ([]scoring.Standing, error) {
	predictions, err := s.predictionRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list predictions gameweek=%d: %w", gameweek, err)
	}
	results, err := s.resultRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list results gameweek=%d: %w", gameweek, err)
	}

	actualByFixture := make(map[int64]scoring.Scoreline, len(results))
	for _, item := range results {
		actualByFixture[item.FixtureID] = item.Scoreline()
	}

	picks := make([]scoring.Pick, 0, len(predictions))
	for _, item := range predictions {
		pick := scoring.Pick{
			PersonName: item.PersonName,
			FixtureID:  item.FixtureID,
			Predicted:  item.Scoreline(),
		}
		if actual, ok := actualByFixture[item.FixtureID]; ok {
			pick.Actual = &actual
		}
		picks = append(picks, pick)
	}

	standings := scoring.Aggregate(picks)
	s.logger.DebugContext(ctx, "leaderboard computed",
		"gameweek", gameweek,
		"predictions", len(predictions),
		"results", len(results),
		"people", len(standings),
	)
	return standings, nil
}

func leaderboardCacheKey(gameweek int) string {
	return fmt.Sprintf("%s%d", leaderboardCachePrefix, gameweek)
}

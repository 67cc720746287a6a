package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/pl-predictor/internal/domain/scoring"
	"github.com/riskibarqy/pl-predictor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pl-predictor/internal/platform/cache"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

type fakeMatchProvider struct {
	mu      sync.Mutex
	matches map[int][]ExternalMatch
	errs    map[int]error
	calls   map[int]int
}

func newFakeMatchProvider() *fakeMatchProvider {
	return &fakeMatchProvider{
		matches: make(map[int][]ExternalMatch),
		errs:    make(map[int]error),
		calls:   make(map[int]int),
	}
}

func (p *fakeMatchProvider) set(gameweek int, matches ...ExternalMatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matches[gameweek] = matches
}

func (p *fakeMatchProvider) fail(gameweek int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[gameweek] = err
}

func (p *fakeMatchProvider) FetchGameweekMatches(_ context.Context, gameweek int) ([]ExternalMatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[gameweek]++
	if err := p.errs[gameweek]; err != nil {
		return nil, err
	}
	return append([]ExternalMatch(nil), p.matches[gameweek]...), nil
}

type recordingInvalidator struct {
	mu        sync.Mutex
	gameweeks []int
}

func (r *recordingInvalidator) InvalidateGameweek(_ context.Context, gameweek int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameweeks = append(r.gameweeks, gameweek)
}

type testServices struct {
	provider    *fakeMatchProvider
	sync        *SyncService
	leaderboard *LeaderboardService
	predictions *PredictionService
	people      *PersonService
	fixtures    *FixtureService
}

func newTestServices() testServices {
	store := memory.NewStore()
	fixtureRepo := memory.NewFixtureRepository(store)
	resultRepo := memory.NewResultRepository(store)
	predictionRepo := memory.NewPredictionRepository(store)
	personRepo := memory.NewPersonRepository(store)
	logger := logging.NewNop()

	provider := newFakeMatchProvider()
	leaderboard := NewLeaderboardService(predictionRepo, resultRepo, cache.NewStore[[]scoring.Standing](0), logger)
	return testServices{
		provider:    provider,
		sync:        NewSyncService(provider, fixtureRepo, resultRepo, leaderboard, logger),
		leaderboard: leaderboard,
		predictions: NewPredictionService(fixtureRepo, predictionRepo, personRepo, leaderboard, logger),
		people:      NewPersonService(personRepo, logger),
		fixtures:    NewFixtureService(fixtureRepo, resultRepo),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func match(id int64, home, away string, ftHome, ftAway *int) ExternalMatch {
	return ExternalMatch{
		ExternalID:   id,
		HomeTeam:     home,
		AwayTeam:     away,
		KickoffUTC:   strPtr("2024-08-17T14:00:00Z"),
		FullTimeHome: ftHome,
		FullTimeAway: ftAway,
	}
}

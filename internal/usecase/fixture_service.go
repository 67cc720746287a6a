package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
)

// FixtureView is a fixture with its result when known.
type FixtureView struct {
	Fixture fixture.Fixture
	Result  *result.Result
}

type FixtureService struct {
	fixtureRepo fixture.Repository
	resultRepo  result.Repository
}

func NewFixtureService(fixtureRepo fixture.Repository, resultRepo result.Repository) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		resultRepo:  resultRepo,
	}
}

func (s *FixtureService) ListFixtures(ctx context.Context, gameweek int) ([]FixtureView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures", gameweekAttr(gameweek))
	defer span.End()

	if err := validateGameweek(gameweek); err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list fixtures gameweek=%d: %w", gameweek, err)
	}
	if len(fixtures) == 0 {
		return []FixtureView{}, nil
	}

	results, err := s.resultRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list results gameweek=%d: %w", gameweek, err)
	}
	byFixture := make(map[int64]result.Result, len(results))
	for _, item := range results {
		byFixture[item.FixtureID] = item
	}

	out := make([]FixtureView, 0, len(fixtures))
	for _, item := range fixtures {
		view := FixtureView{Fixture: item}
		if res, ok := byFixture[item.ID]; ok {
			view.Result = &res
		}
		out = append(out, view)
	}
	return out, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	fixturemock "github.com/riskibarqy/pl-predictor/internal/mocks/domain/fixture"
	resultmock "github.com/riskibarqy/pl-predictor/internal/mocks/domain/result"
)

func TestFixtureService_ListFixtures_AttachesResultsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	fixtureRepo := fixturemock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)

	service := NewFixtureService(fixtureRepo, resultRepo)
	kickoff := "2024-08-16T19:00:00Z"
	expectedFixtures := []fixture.Fixture{
		{ID: 1, Gameweek: 1, ExternalMatchID: 435943, KickoffUTC: &kickoff, Home: "Manchester United FC", Away: "Fulham FC"},
		{ID: 2, Gameweek: 1, ExternalMatchID: 435944, Home: "Ipswich Town FC", Away: "Liverpool FC"},
	}

	fixtureRepo.
		On("ListByGameweek", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), 1).
		Return(expectedFixtures, nil).
		Once()
	resultRepo.
		On("ListByGameweek", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), 1).
		Return([]result.Result{{FixtureID: 1, Home: 1, Away: 0, UpdatedAt: time.Now()}}, nil).
		Once()

	got, err := service.ListFixtures(ctx, 1)
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(got) != len(expectedFixtures) {
		t.Fatalf("unexpected fixture count: got=%d want=%d", len(got), len(expectedFixtures))
	}
	if got[0].Result == nil || got[0].Result.Home != 1 || got[0].Result.Away != 0 {
		t.Fatalf("unexpected result for first fixture: %+v", got[0].Result)
	}
	if got[1].Result != nil {
		t.Fatalf("expected no result for second fixture, got %+v", got[1].Result)
	}
}

func TestFixtureService_ListFixtures_EmptyGameweekSkipsResultsUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, resultRepo)

	fixtureRepo.
		On("ListByGameweek", mock.Anything, 12).
		Return([]fixture.Fixture{}, nil).
		Once()

	got, err := service.ListFixtures(context.Background(), 12)
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no fixtures, got %d", len(got))
	}
	resultRepo.AssertNotCalled(t, "ListByGameweek", mock.Anything, mock.Anything)
}

func TestFixtureService_ListFixtures_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewFixtureService(fixtureRepo, resultRepo)
	boom := errors.New("connection reset")

	fixtureRepo.
		On("ListByGameweek", mock.Anything, 3).
		Return(nil, boom).
		Once()

	_, err := service.ListFixtures(context.Background(), 3)
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}

	if _, err := service.ListFixtures(context.Background(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

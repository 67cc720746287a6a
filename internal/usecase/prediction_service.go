package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

// RawScore is one unparsed entry as typed by the user.
type RawScore struct {
	Home string
	Away string
}

type SavePredictionsInput struct {
	Gameweek   int
	PersonName string
	Entries    map[int64]RawScore
}

type SavePredictionsResult struct {
	PersonName string
	Saved      int
	Skipped    int
}

type EntrySheet struct {
	Gameweek    int
	PersonName  string
	Fixtures    []fixture.Fixture
	Predictions map[int64]prediction.Prediction
	People      []person.Person
}

type PredictionService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	personRepo     person.Repository
	invalidator    GameweekInvalidator
	logger         *logging.Logger
}

func NewPredictionService(
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	personRepo person.Repository,
	invalidator GameweekInvalidator,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		personRepo:     personRepo,
		invalidator:    invalidator,
		logger:         logger,
	}
}

// SavePredictions stores every well-formed entry for fixtures of the
// gameweek. Entries that are blank, malformed, negative or for another
// gameweek are skipped and counted, never fatal. The person is created when
// unknown.
func (s *PredictionService) SavePredictions(ctx context.Context, input SavePredictionsInput) (SavePredictionsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SavePredictions")
	defer span.End()

	if err := validateGameweek(input.Gameweek); err != nil {
		return SavePredictionsResult{}, err
	}
	name := person.NormalizeName(input.PersonName)
	if name == "" {
		return SavePredictionsResult{}, fmt.Errorf("%w: person name is required", ErrInvalidInput)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, input.Gameweek)
	if err != nil {
		return SavePredictionsResult{}, fmt.Errorf("list fixtures gameweek=%d: %w", input.Gameweek, err)
	}

	out := SavePredictionsResult{PersonName: name}
	known := make(map[int64]struct{}, len(fixtures))
	for _, item := range fixtures {
		known[item.ID] = struct{}{}
	}

	items := make([]prediction.Prediction, 0, len(input.Entries))
	for fixtureID, raw := range input.Entries {
		if _, ok := known[fixtureID]; !ok {
			out.Skipped++
			continue
		}
		home, okHome := prediction.ParseGoals(raw.Home)
		away, okAway := prediction.ParseGoals(raw.Away)
		if !okHome || !okAway {
			out.Skipped++
			continue
		}
		items = append(items, prediction.Prediction{
			FixtureID:  fixtureID,
			Gameweek:   input.Gameweek,
			PersonName: name,
			Home:       home,
			Away:       away,
		})
	}

	if err := s.predictionRepo.SaveForPerson(ctx, name, items); err != nil {
		return SavePredictionsResult{}, fmt.Errorf("save predictions gameweek=%d person=%s: %w", input.Gameweek, name, err)
	}
	out.Saved = len(items)
	if out.Saved > 0 && s.invalidator != nil {
		s.invalidator.InvalidateGameweek(ctx, input.Gameweek)
	}

	s.logger.InfoContext(ctx, "predictions saved",
		"gameweek", input.Gameweek,
		"person", name,
		"saved", out.Saved,
		"skipped", out.Skipped,
	)
	return out, nil
}

// GetEntrySheet loads what an entry form needs. Predictions are empty when
// no person is given.
func (s *PredictionService) GetEntrySheet(ctx context.Context, gameweek int, personName string) (EntrySheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.GetEntrySheet", gameweekAttr(gameweek))
	defer span.End()

	if err := validateGameweek(gameweek); err != nil {
		return EntrySheet{}, err
	}

	sheet := EntrySheet{
		Gameweek:    gameweek,
		PersonName:  person.NormalizeName(personName),
		Predictions: make(map[int64]prediction.Prediction),
	}

	var (
		fixturesErr    error
		peopleErr      error
		predictionsErr error
		predictions    []prediction.Prediction
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		sheet.Fixtures, fixturesErr = s.fixtureRepo.ListByGameweek(ctx, gameweek)
	})
	wg.Go(func() {
		sheet.People, peopleErr = s.personRepo.List(ctx)
	})
	if sheet.PersonName != "" {
		wg.Go(func() {
			predictions, predictionsErr = s.predictionRepo.ListByGameweekAndPerson(ctx, gameweek, sheet.PersonName)
		})
	}
	wg.Wait()

	if fixturesErr != nil {
		return EntrySheet{}, fmt.Errorf("list fixtures gameweek=%d: %w", gameweek, fixturesErr)
	}
	if peopleErr != nil {
		return EntrySheet{}, fmt.Errorf("list people: %w", peopleErr)
	}
	if predictionsErr != nil {
		return EntrySheet{}, fmt.Errorf("list predictions gameweek=%d person=%s: %w", gameweek, sheet.PersonName, predictionsErr)
	}

	for _, item := range predictions {
		sheet.Predictions[item.FixtureID] = item
	}
	return sheet, nil
}

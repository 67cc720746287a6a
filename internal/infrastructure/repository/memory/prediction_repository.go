package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
)

type PredictionRepository struct {
	store *Store
}

func NewPredictionRepository(store *Store) *PredictionRepository {
	return &PredictionRepository{store: store}
}

func (r *PredictionRepository) ListByGameweek(_ context.Context, gameweek int) ([]prediction.Prediction, error) {
	return r.list(func(item prediction.Prediction) bool { return item.Gameweek == gameweek }), nil
}

func (r *PredictionRepository) ListByGameweekAndPerson(_ context.Context, gameweek int, personName string) ([]prediction.Prediction, error) {
	return r.list(func(item prediction.Prediction) bool {
		return item.Gameweek == gameweek && item.PersonName == personName
	}), nil
}

func (r *PredictionRepository) list(match func(prediction.Prediction) bool) []prediction.Prediction {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.store.predictions {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PersonName != out[j].PersonName {
			return out[i].PersonName < out[j].PersonName
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out
}

func (r *PredictionRepository) SaveForPerson(_ context.Context, personName string, items []prediction.Prediction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.fixtures[item.FixtureID]; !ok {
			return fmt.Errorf("upsert prediction fixture_id=%d person=%s: fixture not found", item.FixtureID, personName)
		}
	}

	s.ensurePersonLocked(personName)
	for _, item := range items {
		key := predictionKey{fixtureID: item.FixtureID, personName: personName}
		item.PersonName = personName
		if existing, ok := s.predictions[key]; ok {
			item.ID = existing.ID
		} else {
			s.nextPredictionID++
			item.ID = s.nextPredictionID
		}
		s.predictions[key] = item
	}
	return nil
}

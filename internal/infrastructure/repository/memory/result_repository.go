package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pl-predictor/internal/domain/result"
)

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) ListByGameweek(_ context.Context, gameweek int) ([]result.Result, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]result.Result, 0)
	for id, item := range r.store.results {
		if fx, ok := r.store.fixtures[id]; ok && fx.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}

func (r *ResultRepository) Upsert(_ context.Context, items []result.Result) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if _, ok := r.store.fixtures[item.FixtureID]; !ok {
			return 0, fmt.Errorf("upsert result fixture_id=%d: fixture not found", item.FixtureID)
		}
	}

	now := r.store.now().UTC()
	for _, item := range items {
		item.UpdatedAt = now
		r.store.results[item.FixtureID] = item
	}
	return len(items), nil
}

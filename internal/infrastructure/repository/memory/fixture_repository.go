package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
)

type FixtureRepository struct {
	store *Store
}

func NewFixtureRepository(store *Store) *FixtureRepository {
	return &FixtureRepository{store: store}
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.fixturesByGameweekLocked(gameweek), nil
}

func (r *FixtureRepository) SyncGameweek(_ context.Context, gameweek int, items []fixture.Fixture) (fixture.SyncSummary, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	byExternal := make(map[int64]fixture.Fixture, len(s.fixtures))
	for _, item := range s.fixtures {
		byExternal[item.ExternalMatchID] = item
	}

	// Validate before touching anything so a conflict leaves the store as it was.
	for _, item := range items {
		if existing, ok := byExternal[item.ExternalMatchID]; ok && existing.Gameweek != gameweek {
			return fixture.SyncSummary{}, crerr.Wrapf(fixture.ErrExternalMatchConflict,
				"external match %d is stored in gameweek %d, not %d", item.ExternalMatchID, existing.Gameweek, gameweek)
		}
	}

	var summary fixture.SyncSummary
	for id, item := range s.fixtures {
		if item.Gameweek != gameweek {
			continue
		}
		if _, ok := s.results[id]; ok {
			delete(s.results, id)
			summary.ResultsCleared++
		}
	}

	keep := make(map[int64]struct{}, len(items))
	for _, item := range items {
		next := cloneFixture(item)
		next.Gameweek = gameweek
		if existing, ok := byExternal[item.ExternalMatchID]; ok {
			next.ID = existing.ID
			summary.Updated++
		} else {
			s.nextFixtureID++
			next.ID = s.nextFixtureID
			summary.Inserted++
		}
		s.fixtures[next.ID] = next
		byExternal[next.ExternalMatchID] = next
		keep[next.ID] = struct{}{}
	}

	for id, item := range s.fixtures {
		if item.Gameweek != gameweek {
			continue
		}
		if _, ok := keep[id]; ok {
			continue
		}
		for key := range s.predictions {
			if key.fixtureID == id {
				delete(s.predictions, key)
				summary.PicksRemoved++
			}
		}
		delete(s.fixtures, id)
		summary.Removed++
	}

	return summary, nil
}

func (s *Store) fixturesByGameweekLocked(gameweek int) []fixture.Fixture {
	out := make([]fixture.Fixture, 0)
	for _, item := range s.fixtures {
		if item.Gameweek == gameweek {
			out = append(out, cloneFixture(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].KickoffUTC, out[j].KickoffUTC
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		}
		return out[i].ID < out[j].ID
	})
	return out
}

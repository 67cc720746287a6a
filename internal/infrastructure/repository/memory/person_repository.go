package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/pl-predictor/internal/domain/person"
)

type PersonRepository struct {
	store *Store
}

func NewPersonRepository(store *Store) *PersonRepository {
	return &PersonRepository{store: store}
}

func (r *PersonRepository) List(_ context.Context) ([]person.Person, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]person.Person, 0, len(r.store.people))
	for _, item := range r.store.people {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PersonRepository) Ensure(_ context.Context, name string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.ensurePersonLocked(name), nil
}

package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
)

// Store holds every table behind one lock so cascades stay consistent.
// Repositories created from the same Store share its data.
type Store struct {
	mu sync.RWMutex

	now func() time.Time

	people      map[string]person.Person
	fixtures    map[int64]fixture.Fixture
	results     map[int64]result.Result
	predictions map[predictionKey]prediction.Prediction

	nextFixtureID    int64
	nextPredictionID int64
}

type predictionKey struct {
	fixtureID  int64
	personName string
}

func NewStore() *Store {
	return &Store{
		now:         time.Now,
		people:      make(map[string]person.Person),
		fixtures:    make(map[int64]fixture.Fixture),
		results:     make(map[int64]result.Result),
		predictions: make(map[predictionKey]prediction.Prediction),
	}
}

func (s *Store) ensurePersonLocked(name string) bool {
	if _, ok := s.people[name]; ok {
		return false
	}
	s.people[name] = person.Person{Name: name, CreatedAt: s.now().UTC()}
	return true
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	copied := item
	if item.KickoffUTC != nil {
		kickoff := *item.KickoffUTC
		copied.KickoffUTC = &kickoff
	}
	return copied
}

package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

type PersonService struct {
	personRepo person.Repository
	logger     *logging.Logger
}

func NewPersonService(personRepo person.Repository, logger *logging.Logger) *PersonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PersonService{personRepo: personRepo, logger: logger}
}

func (s *PersonService) ListPeople(ctx context.Context) ([]person.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersonService.ListPeople")
	defer span.End()

	items, err := s.personRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return items, nil
}

// AddPerson is idempotent. Blank names are ignored and report created=false.
func (s *PersonService) AddPerson(ctx context.Context, name string) (string, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PersonService.AddPerson")
	defer span.End()

	name = person.NormalizeName(name)
	if name == "" {
		return "", false, nil
	}

	created, err := s.personRepo.Ensure(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("ensure person: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "person added", "person", name)
	}
	return name, created, nil
}

package registry

import (
	"github.com/spec-kit/dojo-service/internal/domain"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// PersonRegistry stores every registered person, keyed by ID, with insertion
// order retained for stable reporting.
type PersonRegistry interface {
	Add(person *domain.Person) error
	Get(id string) (*domain.Person, bool)
	List() []*domain.Person
	ListByRole(role domain.PersonRole) []*domain.Person
}

type personRegistry struct {
	byID  map[string]*domain.Person
	order []*domain.Person
}

// NewPersonRegistry instantiates an empty in-memory registry.
func NewPersonRegistry() PersonRegistry {
	return &personRegistry{byID: make(map[string]*domain.Person)}
}

func (r *personRegistry) Add(person *domain.Person) error {
	if _, exists := r.byID[person.ID]; exists {
		return apperrors.NewValidationError("duplicate person ID",
			map[string]any{"person_id": person.ID})
	}
	r.byID[person.ID] = person
	r.order = append(r.order, person)
	return nil
}

func (r *personRegistry) Get(id string) (*domain.Person, bool) {
	person, ok := r.byID[id]
	return person, ok
}

func (r *personRegistry) List() []*domain.Person {
	out := make([]*domain.Person, len(r.order))
	copy(out, r.order)
	return out
}

func (r *personRegistry) ListByRole(role domain.PersonRole) []*domain.Person {
	var out []*domain.Person
	for _, person := range r.order {
		if person.Role == role {
			out = append(out, person)
		}
	}
	return out
}

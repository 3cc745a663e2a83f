package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/dojo-service/internal/domain"
	"github.com/spec-kit/dojo-service/internal/events"
	"github.com/spec-kit/dojo-service/internal/registry"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// AllocationService is the Dojo controller: it owns the room and person
// collections and is the single writer of allocation links between them.
type AllocationService struct {
	rooms      registry.RoomRegistry
	people     registry.PersonRegistry
	dispatcher events.Dispatcher
	rng        *rand.Rand
	logger     *zap.Logger
}

// AllocationDependencies bundles collaborators for the service.
type AllocationDependencies struct {
	RoomRegistry   registry.RoomRegistry
	PersonRegistry registry.PersonRegistry
	Dispatcher     events.Dispatcher
	Rand           *rand.Rand
	Logger         *zap.Logger
}

// NewAllocationService creates the service. A nil Rand is time-seeded; a nil
// Logger is replaced with a no-op logger.
func NewAllocationService(deps AllocationDependencies) *AllocationService {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		rooms:      deps.RoomRegistry,
		people:     deps.PersonRegistry,
		dispatcher: deps.Dispatcher,
		rng:        rng,
		logger:     logger,
	}
}

// AllocationOutcome reports one allocation attempt. An empty RoomName with
// Attempted true means no room of the type had space, which is a normal
// outcome, not an error.
type AllocationOutcome struct {
	Attempted bool
	RoomName  string
}

// AddPersonResult reports a registration and its allocation outcomes.
type AddPersonResult struct {
	Person      *domain.Person
	Office      AllocationOutcome
	LivingSpace AllocationOutcome
}

// CreateRoom validates and stores a new room of the given type.
func (s *AllocationService) CreateRoom(ctx context.Context, roomType, name string) (*domain.Room, error) {
	parsedType, ok := domain.ParseRoomType(roomType)
	if !ok {
		return nil, apperrors.NewInvalidRoomType(roomType)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("room name must not be empty", nil)
	}

	room := domain.NewRoom(parsedType, name)
	if err := s.rooms.Add(room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_type", string(room.Type)),
		zap.String("room_name", room.Name))
	s.publish(ctx, events.EventRoomCreated, events.RoomCreatedPayload{
		RoomType: room.Type,
		RoomName: room.Name,
	})
	return room, nil
}

// AddPerson registers a person and immediately attempts allocation: an office
// for everyone, plus a living space for fellows who want accommodation.
func (s *AllocationService) AddPerson(ctx context.Context, name, personType, wantsAccommodation string) (*AddPersonResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("person name must not be empty", nil)
	}
	role, ok := domain.ParsePersonRole(personType)
	if !ok {
		return nil, apperrors.NewInvalidPersonType(personType)
	}
	wants, ok := domain.ParseAccommodation(wantsAccommodation)
	if !ok {
		return nil, apperrors.NewInvalidAccommodation(wantsAccommodation)
	}
	if role == domain.RoleStaff && wants {
		return nil, apperrors.NewIneligible("staff cannot be allocated living spaces",
			map[string]any{"name": name})
	}

	var person *domain.Person
	if role == domain.RoleFellow {
		person = domain.NewFellow(name, wants)
	} else {
		person = domain.NewStaff(name)
	}
	if err := s.people.Add(person); err != nil {
		return nil, err
	}

	s.logger.Info("person added",
		zap.String("person_id", person.ID),
		zap.String("name", person.Name),
		zap.String("role", string(person.Role)))
	s.publish(ctx, events.EventPersonAdded, events.PersonAddedPayload{
		PersonID: person.ID,
		Name:     person.Name,
		Role:     person.Role,
	})

	result := &AddPersonResult{Person: person}

	office, err := s.AllocateOffice(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	result.Office = outcomeFor(office)

	if person.IsFellow() && person.WantsAccommodation {
		livingSpace, err := s.AllocateLivingSpace(ctx, person.ID)
		if err != nil {
			return nil, err
		}
		result.LivingSpace = outcomeFor(livingSpace)
	}

	return result, nil
}

func outcomeFor(room *domain.Room) AllocationOutcome {
	outcome := AllocationOutcome{Attempted: true}
	if room != nil {
		outcome.RoomName = room.Name
	}
	return outcome
}

// AllocateOffice places the person in a uniformly random office with free
// space. A nil room with nil error means no office had space; the person stays
// unallocated.
func (s *AllocationService) AllocateOffice(ctx context.Context, personID string) (*domain.Room, error) {
	person, ok := s.people.Get(personID)
	if !ok {
		return nil, apperrors.NewPersonNotFound(personID)
	}
	if person.Office != "" {
		return nil, apperrors.NewAlreadyAllocated(person.ID, person.Office)
	}
	return s.allocate(ctx, person, domain.RoomTypeOffice)
}

// AllocateLivingSpace places a fellow who wants accommodation in a uniformly
// random living space with free space. Staff and fellows without the
// accommodation flag are rejected even though AddPerson already screens them.
func (s *AllocationService) AllocateLivingSpace(ctx context.Context, personID string) (*domain.Room, error) {
	person, ok := s.people.Get(personID)
	if !ok {
		return nil, apperrors.NewPersonNotFound(personID)
	}
	if !person.IsFellow() {
		return nil, apperrors.NewIneligible("staff cannot be allocated living spaces",
			map[string]any{"person_id": person.ID})
	}
	if !person.WantsAccommodation {
		return nil, apperrors.NewIneligible("fellow has not requested accommodation",
			map[string]any{"person_id": person.ID})
	}
	if person.LivingSpace != "" {
		return nil, apperrors.NewAlreadyAllocated(person.ID, person.LivingSpace)
	}
	return s.allocate(ctx, person, domain.RoomTypeLivingSpace)
}

// allocate picks uniformly at random over the eligible set, computed fresh at
// call time. Random, not first-fit: creation order must not bias placement.
func (s *AllocationService) allocate(ctx context.Context, person *domain.Person, roomType domain.RoomType) (*domain.Room, error) {
	eligible := s.rooms.Available(roomType)
	if len(eligible) == 0 {
		s.logger.Info("no room available",
			zap.String("person_id", person.ID),
			zap.String("room_type", string(roomType)))
		return nil, nil
	}

	room := eligible[s.rng.Intn(len(eligible))]
	if err := room.AddOccupant(person.ID); err != nil {
		return nil, err
	}
	s.setAllocation(person, roomType, room.Name)

	s.logger.Info("person allocated",
		zap.String("person_id", person.ID),
		zap.String("room_type", string(roomType)),
		zap.String("room_name", room.Name))
	s.publish(ctx, events.EventPersonAllocated, events.PersonAllocatedPayload{
		PersonID: person.ID,
		RoomType: roomType,
		RoomName: room.Name,
	})
	return room, nil
}

// ReallocatePerson moves a person into the named room, replacing their current
// allocation of that room's type. All validation happens before any mutation
// so a failure never leaves the person in neither room.
func (s *AllocationService) ReallocatePerson(ctx context.Context, personID, newRoomName string) (*domain.Room, error) {
	person, ok := s.people.Get(personID)
	if !ok {
		return nil, apperrors.NewPersonNotFound(personID)
	}
	newRoom, ok := s.rooms.FindByName(newRoomName)
	if !ok {
		return nil, apperrors.NewRoomNotFound(newRoomName)
	}

	if newRoom.Type == domain.RoomTypeLivingSpace {
		if !person.IsFellow() || !person.WantsAccommodation {
			return nil, apperrors.NewRoomTypeMismatch(
				"only fellows who requested accommodation can move into living spaces",
				map[string]any{"person_id": person.ID, "room_name": newRoom.Name})
		}
	}

	current := s.allocationOf(person, newRoom.Type)
	if strings.EqualFold(current, newRoom.Name) {
		return nil, apperrors.NewAlreadyOccupant(person.ID, newRoom.Name)
	}
	if newRoom.IsFull() {
		return nil, apperrors.NewCapacityExceeded(newRoom.Name)
	}

	// Validation done; removal is best-effort since a missing prior
	// allocation is not an error.
	if oldRoom, ok := s.rooms.RoomOf(newRoom.Type, person.ID); ok {
		if err := oldRoom.RemoveOccupant(person.ID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if err := newRoom.AddOccupant(person.ID); err != nil {
		return nil, err
	}
	s.setAllocation(person, newRoom.Type, newRoom.Name)

	s.logger.Info("person reallocated",
		zap.String("person_id", person.ID),
		zap.String("room_type", string(newRoom.Type)),
		zap.String("from_room", current),
		zap.String("to_room", newRoom.Name))
	s.publish(ctx, events.EventPersonReallocated, events.PersonReallocatedPayload{
		PersonID: person.ID,
		RoomType: newRoom.Type,
		FromRoom: current,
		ToRoom:   newRoom.Name,
	})
	return newRoom, nil
}

func (s *AllocationService) allocationOf(person *domain.Person, roomType domain.RoomType) string {
	if roomType == domain.RoomTypeLivingSpace {
		return person.LivingSpace
	}
	return person.Office
}

func (s *AllocationService) setAllocation(person *domain.Person, roomType domain.RoomType, roomName string) {
	if roomType == domain.RoomTypeLivingSpace {
		person.LivingSpace = roomName
	} else {
		person.Office = roomName
	}
}

// PersonByID looks up a person.
func (s *AllocationService) PersonByID(id string) (*domain.Person, bool) {
	return s.people.Get(id)
}

// RoomByName looks up a room by name across both type namespaces.
func (s *AllocationService) RoomByName(name string) (*domain.Room, bool) {
	return s.rooms.FindByName(name)
}

// Offices lists offices in creation order.
func (s *AllocationService) Offices() []*domain.Room {
	return s.rooms.ListByType(domain.RoomTypeOffice)
}

// LivingSpaces lists living spaces in creation order.
func (s *AllocationService) LivingSpaces() []*domain.Room {
	return s.rooms.ListByType(domain.RoomTypeLivingSpace)
}

// People lists everyone in registration order.
func (s *AllocationService) People() []*domain.Person {
	return s.people.List()
}

func (s *AllocationService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dojo-service/internal/domain"
	"github.com/spec-kit/dojo-service/internal/events"
	"github.com/spec-kit/dojo-service/internal/registry"
	"github.com/spec-kit/dojo-service/internal/snapshot"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// SaveState writes the whole controller state to the snapshot store.
func (s *AllocationService) SaveState(ctx context.Context, store *snapshot.Store) error {
	state := &snapshot.State{}

	for _, room := range s.Offices() {
		state.Offices = append(state.Offices, roomState(room))
	}
	for _, room := range s.LivingSpaces() {
		state.LivingSpaces = append(state.LivingSpaces, roomState(room))
	}
	for _, person := range s.People() {
		state.People = append(state.People, snapshot.PersonState{
			ID:                 person.ID,
			Name:               person.Name,
			Role:               string(person.Role),
			WantsAccommodation: person.WantsAccommodation,
			Office:             person.Office,
			LivingSpace:        person.LivingSpace,
		})
	}

	return store.Save(state)
}

// LoadState replaces the controller state with the snapshot's contents. The
// snapshot is rebuilt and cross-checked in full before the current state is
// touched; a bad snapshot leaves the service unchanged.
func (s *AllocationService) LoadState(ctx context.Context, store *snapshot.Store) error {
	state, err := store.Load()
	if err != nil {
		return err
	}

	people := registry.NewPersonRegistry()
	rooms := registry.NewRoomRegistry()

	for _, ps := range state.People {
		person, err := restorePerson(ps)
		if err != nil {
			return apperrors.NewSnapshotDecode(err)
		}
		if err := people.Add(person); err != nil {
			return apperrors.NewSnapshotDecode(err)
		}
	}
	if err := restoreRooms(rooms, people, domain.RoomTypeOffice, state.Offices); err != nil {
		return err
	}
	if err := restoreRooms(rooms, people, domain.RoomTypeLivingSpace, state.LivingSpaces); err != nil {
		return err
	}

	s.people = people
	s.rooms = rooms

	s.logger.Info("state restored",
		zap.String("path", store.Path()),
		zap.Int("people", len(state.People)),
		zap.Int("rooms", len(state.Offices)+len(state.LivingSpaces)))
	s.publish(ctx, events.EventStateRestored, events.StateRestoredPayload{
		Path:   store.Path(),
		People: len(state.People),
		Rooms:  len(state.Offices) + len(state.LivingSpaces),
	})
	return nil
}

func roomState(room *domain.Room) snapshot.RoomState {
	occupants := make([]string, len(room.Occupants))
	copy(occupants, room.Occupants)
	return snapshot.RoomState{Name: room.Name, Occupants: occupants}
}

func restorePerson(ps snapshot.PersonState) (*domain.Person, error) {
	role, ok := domain.ParsePersonRole(ps.Role)
	if !ok {
		return nil, fmt.Errorf("person %s has unknown role %q", ps.ID, ps.Role)
	}
	if ps.ID == "" || ps.Name == "" {
		return nil, fmt.Errorf("person record missing id or name")
	}
	if role == domain.RoleStaff && (ps.WantsAccommodation || ps.LivingSpace != "") {
		return nil, fmt.Errorf("staff %s carries a living-space allocation", ps.ID)
	}
	return &domain.Person{
		ID:                 ps.ID,
		Name:               ps.Name,
		Role:               role,
		WantsAccommodation: ps.WantsAccommodation,
		Office:             ps.Office,
		LivingSpace:        ps.LivingSpace,
	}, nil
}

// restoreRooms rebuilds one room-type namespace and cross-checks every
// occupant against the person records: the person must exist and their
// allocation field must point back at the room.
func restoreRooms(rooms registry.RoomRegistry, people registry.PersonRegistry, roomType domain.RoomType, states []snapshot.RoomState) error {
	for _, rs := range states {
		if strings.TrimSpace(rs.Name) == "" {
			return apperrors.NewSnapshotDecode(fmt.Errorf("room record missing name"))
		}
		room := domain.NewRoom(roomType, rs.Name)
		if err := rooms.Add(room); err != nil {
			return apperrors.NewSnapshotDecode(err)
		}
		for _, personID := range rs.Occupants {
			person, ok := people.Get(personID)
			if !ok {
				return apperrors.NewSnapshotDecode(
					fmt.Errorf("room %s lists unknown occupant %s", rs.Name, personID))
			}
			allocated := person.Office
			if roomType == domain.RoomTypeLivingSpace {
				allocated = person.LivingSpace
			}
			if !strings.EqualFold(allocated, rs.Name) {
				return apperrors.NewSnapshotDecode(
					fmt.Errorf("occupant %s of %s is allocated to %q", personID, rs.Name, allocated))
			}
			if err := room.AddOccupant(personID); err != nil {
				return apperrors.NewSnapshotDecode(err)
			}
		}
	}
	return nil
}

package registry

import (
	"strings"

	"github.com/spec-kit/dojo-service/internal/domain"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// RoomRegistry stores rooms keyed by type plus lowercased name. Name lookups
// are case-insensitive; names keep their creation casing. Insertion order is
// retained per type for stable reporting.
type RoomRegistry interface {
	Add(room *domain.Room) error
	Get(roomType domain.RoomType, name string) (*domain.Room, bool)
	// FindByName searches both type namespaces, offices first.
	FindByName(name string) (*domain.Room, bool)
	ListByType(roomType domain.RoomType) []*domain.Room
	// Available returns rooms of the type with free slots, computed fresh on
	// every call since occupancy changes between calls.
	Available(roomType domain.RoomType) []*domain.Room
	// RoomOf returns the room of the given type currently holding the person.
	RoomOf(roomType domain.RoomType, personID string) (*domain.Room, bool)
}

type roomRegistry struct {
	byKey map[string]*domain.Room
	order map[domain.RoomType][]*domain.Room
}

// NewRoomRegistry instantiates an empty in-memory registry.
func NewRoomRegistry() RoomRegistry {
	return &roomRegistry{
		byKey: make(map[string]*domain.Room),
		order: make(map[domain.RoomType][]*domain.Room),
	}
}

func roomKey(roomType domain.RoomType, name string) string {
	return string(roomType) + "/" + strings.ToLower(name)
}

func (r *roomRegistry) Add(room *domain.Room) error {
	key := roomKey(room.Type, room.Name)
	if _, exists := r.byKey[key]; exists {
		return apperrors.NewDuplicateRoom(room.Type.Display(), room.Name)
	}
	r.byKey[key] = room
	r.order[room.Type] = append(r.order[room.Type], room)
	return nil
}

func (r *roomRegistry) Get(roomType domain.RoomType, name string) (*domain.Room, bool) {
	room, ok := r.byKey[roomKey(roomType, name)]
	return room, ok
}

func (r *roomRegistry) FindByName(name string) (*domain.Room, bool) {
	if room, ok := r.Get(domain.RoomTypeOffice, name); ok {
		return room, true
	}
	return r.Get(domain.RoomTypeLivingSpace, name)
}

func (r *roomRegistry) ListByType(roomType domain.RoomType) []*domain.Room {
	rooms := r.order[roomType]
	out := make([]*domain.Room, len(rooms))
	copy(out, rooms)
	return out
}

func (r *roomRegistry) Available(roomType domain.RoomType) []*domain.Room {
	var out []*domain.Room
	for _, room := range r.order[roomType] {
		if !room.IsFull() {
			out = append(out, room)
		}
	}
	return out
}

func (r *roomRegistry) RoomOf(roomType domain.RoomType, personID string) (*domain.Room, bool) {
	for _, room := range r.order[roomType] {
		if room.HasOccupant(personID) {
			return room, true
		}
	}
	return nil, false
}

package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// RoomType enumerates allocatable room kinds.
type RoomType string

const (
	RoomTypeOffice      RoomType = "office"
	RoomTypeLivingSpace RoomType = "living_space"
)

// Fixed per-type capacities.
const (
	OfficeCapacity      = 6
	LivingSpaceCapacity = 4
)

// ParseRoomType normalizes a room-type token. The second return reports validity.
func ParseRoomType(value string) (RoomType, bool) {
	switch RoomType(strings.ToLower(strings.TrimSpace(value))) {
	case RoomTypeOffice:
		return RoomTypeOffice, true
	case RoomTypeLivingSpace:
		return RoomTypeLivingSpace, true
	default:
		return "", false
	}
}

// Capacity returns the fixed capacity for the room type.
func (t RoomType) Capacity() int {
	if t == RoomTypeLivingSpace {
		return LivingSpaceCapacity
	}
	return OfficeCapacity
}

// Display returns the human-readable form used in messages and reports.
func (t RoomType) Display() string {
	if t == RoomTypeLivingSpace {
		return "living space"
	}
	return "office"
}

// Room is a fixed-capacity allocatable space. Occupants holds person IDs in
// allocation order. Rooms never touch Person state; cross-entity links are the
// allocation service's responsibility.
type Room struct {
	Name      string
	Type      RoomType
	Capacity  int
	Occupants []string
}

// NewRoom constructs a room with the capacity fixed by its type.
func NewRoom(roomType RoomType, name string) *Room {
	return &Room{
		Name:     name,
		Type:     roomType,
		Capacity: roomType.Capacity(),
	}
}

// AddOccupant appends a person ID, rejecting duplicates and full rooms.
func (r *Room) AddOccupant(personID string) error {
	if r.HasOccupant(personID) {
		return apperrors.NewAlreadyOccupant(personID, r.Name)
	}
	if r.IsFull() {
		return apperrors.NewCapacityExceeded(r.Name)
	}
	r.Occupants = append(r.Occupants, personID)
	return nil
}

// RemoveOccupant deletes a person ID, preserving the order of the rest.
func (r *Room) RemoveOccupant(personID string) error {
	for i, id := range r.Occupants {
		if id == personID {
			r.Occupants = append(r.Occupants[:i], r.Occupants[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotOccupant(personID, r.Name)
}

// HasOccupant reports whether the person ID is present.
func (r *Room) HasOccupant(personID string) bool {
	for _, id := range r.Occupants {
		if id == personID {
			return true
		}
	}
	return false
}

// IsFull reports whether the room is at capacity.
func (r *Room) IsFull() bool {
	return len(r.Occupants) >= r.Capacity
}

// AvailableSpace returns the number of free slots.
func (r *Room) AvailableSpace() int {
	return r.Capacity - len(r.Occupants)
}

func (r *Room) String() string {
	return fmt.Sprintf("%s: %s (%d/%d)", r.Type.Display(), r.Name, len(r.Occupants), r.Capacity)
}

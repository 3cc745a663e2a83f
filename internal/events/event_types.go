package events

import (
	"time"

	"github.com/spec-kit/dojo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoomCreated       EventType = "room_created"
	EventPersonAdded       EventType = "person_added"
	EventPersonAllocated   EventType = "person_allocated"
	EventPersonReallocated EventType = "person_reallocated"
	EventStateRestored     EventType = "state_restored"
)

// Event represents a domain event emitted by the allocation service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoomCreatedPayload payload.
type RoomCreatedPayload struct {
	RoomType domain.RoomType `json:"room_type"`
	RoomName string          `json:"room_name"`
}

// PersonAddedPayload payload.
type PersonAddedPayload struct {
	PersonID string            `json:"person_id"`
	Name     string            `json:"name"`
	Role     domain.PersonRole `json:"role"`
}

// PersonAllocatedPayload payload.
type PersonAllocatedPayload struct {
	PersonID string          `json:"person_id"`
	RoomType domain.RoomType `json:"room_type"`
	RoomName string          `json:"room_name"`
}

// PersonReallocatedPayload payload.
type PersonReallocatedPayload struct {
	PersonID string          `json:"person_id"`
	RoomType domain.RoomType `json:"room_type"`
	FromRoom string          `json:"from_room,omitempty"`
	ToRoom   string          `json:"to_room"`
}

// StateRestoredPayload payload.
type StateRestoredPayload struct {
	Path   string `json:"path"`
	People int    `json:"people"`
	Rooms  int    `json:"rooms"`
}

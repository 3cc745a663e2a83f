// Package report renders allocation state as human-readable text. It is a
// pure boundary adapter: it reads controller state and applies no allocation
// rules of its own. Output is deterministic for unchanged state.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/spec-kit/dojo-service/internal/domain"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// Source is the read-only view of controller state that reports consume.
// *service.AllocationService satisfies it.
type Source interface {
	Offices() []*domain.Room
	LivingSpaces() []*domain.Room
	People() []*domain.Person
	PersonByID(id string) (*domain.Person, bool)
	RoomByName(name string) (*domain.Room, bool)
}

const rule = "=================================================="

// Room renders one room with its occupants.
func Room(src Source, name string) (string, error) {
	room, ok := src.RoomByName(name)
	if !ok {
		return "", apperrors.NewRoomNotFound(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Room: %s\n", room.Name)
	fmt.Fprintf(&b, "Type: %s\n", typeTitle(room.Type))
	b.WriteString("Occupants:\n")
	for _, occupantID := range room.Occupants {
		if person, ok := src.PersonByID(occupantID); ok {
			fmt.Fprintf(&b, "  - %s (%s)\n", person.Name, person.Role)
		}
	}
	return b.String(), nil
}

// Allocations renders every room grouped by type, occupants in allocation order.
func Allocations(src Source) string {
	var sections []string
	if section := roomSection("OFFICES", src, src.Offices()); section != "" {
		sections = append(sections, section)
	}
	if section := roomSection("LIVING SPACES", src, src.LivingSpaces()); section != "" {
		sections = append(sections, section)
	}
	if len(sections) == 0 {
		return "No room allocations to display.\n"
	}
	return strings.Join(sections, "\n")
}

func roomSection(title string, src Source, rooms []*domain.Room) string {
	if len(rooms) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
	for _, room := range rooms {
		fmt.Fprintf(&b, "\n%s (%d/%d):\n", room.Name, len(room.Occupants), room.Capacity)
		for _, occupantID := range room.Occupants {
			if person, ok := src.PersonByID(occupantID); ok {
				fmt.Fprintf(&b, "  - %s\n", person.Name)
			}
		}
	}
	return b.String()
}

// Unallocated renders everyone missing an allocation they are eligible for.
// Being unallocated is a normal state, not an error.
func Unallocated(src Source) string {
	var b strings.Builder
	b.WriteString("Unallocated People\n")
	b.WriteString(rule + "\n")

	found := false
	for _, person := range src.People() {
		var missing []string
		if person.Office == "" {
			missing = append(missing, "no office")
		}
		if person.IsFellow() && person.WantsAccommodation && person.LivingSpace == "" {
			missing = append(missing, "no living space")
		}
		if len(missing) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(&b, "  - %s (%s): %s\n", person.Name, person.Role, strings.Join(missing, ", "))
	}
	if !found {
		b.WriteString("No unallocated people.\n")
	}
	return b.String()
}

// WriteFile writes a rendered report to the given path.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func typeTitle(t domain.RoomType) string {
	if t == domain.RoomTypeLivingSpace {
		return "Living Space"
	}
	return "Office"
}

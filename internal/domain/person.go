package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PersonRole enumerates the kinds of people the Dojo tracks.
type PersonRole string

const (
	RoleFellow PersonRole = "FELLOW"
	RoleStaff  PersonRole = "STAFF"
)

// ParsePersonRole normalizes a role token. The second return reports validity.
func ParsePersonRole(value string) (PersonRole, bool) {
	switch PersonRole(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleFellow:
		return RoleFellow, true
	case RoleStaff:
		return RoleStaff, true
	default:
		return "", false
	}
}

// ParseAccommodation normalizes a Y/N accommodation token. An empty token
// defaults to N. The second return reports validity.
func ParseAccommodation(value string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "N":
		return false, true
	case "Y":
		return true, true
	default:
		return false, false
	}
}

// Person models an individual registered with the Dojo. Allocation fields are
// room names and are mutated by the allocation service only; empty means
// unallocated.
type Person struct {
	ID                 string
	Name               string
	Role               PersonRole
	WantsAccommodation bool
	Office             string
	LivingSpace        string
}

// NewFellow constructs a fellow with a freshly generated ID.
func NewFellow(name string, wantsAccommodation bool) *Person {
	return &Person{
		ID:                 newPersonID(),
		Name:               name,
		Role:               RoleFellow,
		WantsAccommodation: wantsAccommodation,
	}
}

// NewStaff constructs a staff member with a freshly generated ID. Staff are
// never eligible for living spaces.
func NewStaff(name string) *Person {
	return &Person{
		ID:   newPersonID(),
		Name: name,
		Role: RoleStaff,
	}
}

// IsFellow reports whether the person holds the fellow role.
func (p *Person) IsFellow() bool {
	return p.Role == RoleFellow
}

func (p *Person) String() string {
	return fmt.Sprintf("%s: %s (ID: %s)", p.Role, p.Name, p.ID)
}

// newPersonID cuts an 8-character token from a v4 uuid. Collisions within a
// single controller lifetime are not a practical concern at this scale.
func newPersonID() string {
	return uuid.NewString()[:8]
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersonRole(t *testing.T) {
	role, ok := ParsePersonRole("fellow")
	require.True(t, ok)
	assert.Equal(t, RoleFellow, role)

	role, ok = ParsePersonRole(" Staff ")
	require.True(t, ok)
	assert.Equal(t, RoleStaff, role)

	_, ok = ParsePersonRole("INTERN")
	assert.False(t, ok)
}

func TestParseAccommodation(t *testing.T) {
	wants, ok := ParseAccommodation("y")
	require.True(t, ok)
	assert.True(t, wants)

	wants, ok = ParseAccommodation("")
	require.True(t, ok)
	assert.False(t, wants)

	_, ok = ParseAccommodation("maybe")
	assert.False(t, ok)
}

func TestNewFellow(t *testing.T) {
	fellow := NewFellow("Jane Doe", true)
	assert.Equal(t, RoleFellow, fellow.Role)
	assert.True(t, fellow.WantsAccommodation)
	assert.True(t, fellow.IsFellow())
	assert.Len(t, fellow.ID, 8)
	assert.Empty(t, fellow.Office)
	assert.Empty(t, fellow.LivingSpace)
}

func TestNewStaff(t *testing.T) {
	staff := NewStaff("John Smith")
	assert.Equal(t, RoleStaff, staff.Role)
	assert.False(t, staff.WantsAccommodation)
	assert.False(t, staff.IsFellow())
}

func TestPersonIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		person := NewStaff("Jane")
		require.False(t, seen[person.ID], "duplicate person ID %s", person.ID)
		seen[person.ID] = true
	}
}

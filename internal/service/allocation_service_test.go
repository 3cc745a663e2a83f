package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dojo-service/internal/domain"
	"github.com/spec-kit/dojo-service/internal/registry"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

func newTestService(seed int64) *AllocationService {
	return NewAllocationService(AllocationDependencies{
		RoomRegistry:   registry.NewRoomRegistry(),
		PersonRegistry: registry.NewPersonRegistry(),
		Rand:           rand.New(rand.NewSource(seed)),
	})
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	room, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	assert.Equal(t, "Blue", room.Name)
	assert.Equal(t, domain.RoomTypeOffice, room.Type)
	assert.Equal(t, 6, room.Capacity)
}

func TestCreateRoomDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	_, err = svc.CreateRoom(ctx, "office", "Blue")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateRoom, apperrors.CodeOf(err))

	// Duplicate check is case-insensitive within the type namespace.
	_, err = svc.CreateRoom(ctx, "office", "blue")
	assert.Equal(t, apperrors.CodeDuplicateRoom, apperrors.CodeOf(err))

	// The other type namespace is independent.
	_, err = svc.CreateRoom(ctx, "living_space", "Blue")
	assert.NoError(t, err)
}

func TestCreateRoomInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	_, err := svc.CreateRoom(ctx, "dungeon", "Blue")
	assert.Equal(t, apperrors.CodeInvalidRoomType, apperrors.CodeOf(err))

	_, err = svc.CreateRoom(ctx, "office", "   ")
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func TestAddPersonAllocatesOffice(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	result, err := svc.AddPerson(ctx, "Jane Doe", "STAFF", "N")
	require.NoError(t, err)
	assert.True(t, result.Office.Attempted)
	assert.Equal(t, "Blue", result.Office.RoomName)
	assert.False(t, result.LivingSpace.Attempted)

	person, ok := svc.PersonByID(result.Person.ID)
	require.True(t, ok)
	assert.Equal(t, "Blue", person.Office)

	room, _ := svc.RoomByName("Blue")
	assert.Equal(t, []string{person.ID}, room.Occupants)
}

func TestAddPersonNoOfficeAvailableIsNotAnError(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	result, err := svc.AddPerson(ctx, "Jane Doe", "STAFF", "N")
	require.NoError(t, err)
	assert.True(t, result.Office.Attempted)
	assert.Empty(t, result.Office.RoomName)
}

func TestAddPersonNameIsNotAUniquenessKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	first, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)
	second, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)

	assert.NotEqual(t, first.Person.ID, second.Person.ID)
	assert.Equal(t, "Blue", first.Office.RoomName)
	assert.Equal(t, "Blue", second.Office.RoomName)
}

func TestAddPersonValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	_, err := svc.AddPerson(ctx, "Jane", "INTERN", "N")
	assert.Equal(t, apperrors.CodeInvalidPersonType, apperrors.CodeOf(err))

	_, err = svc.AddPerson(ctx, "Jane", "FELLOW", "maybe")
	assert.Equal(t, apperrors.CodeInvalidAccommodation, apperrors.CodeOf(err))

	_, err = svc.AddPerson(ctx, "Jane", "STAFF", "Y")
	assert.Equal(t, apperrors.CodeIneligible, apperrors.CodeOf(err))

	_, err = svc.AddPerson(ctx, "  ", "STAFF", "N")
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))

	assert.Empty(t, svc.People())
}

func TestFellowWithAccommodationAndNoLivingSpaces(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	result, err := svc.AddPerson(ctx, "Jane Doe", "FELLOW", "Y")
	require.NoError(t, err)
	assert.Equal(t, "Blue", result.Office.RoomName)
	assert.True(t, result.LivingSpace.Attempted)
	assert.Empty(t, result.LivingSpace.RoomName)
}

func TestOfficeCapacityScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		result, err := svc.AddPerson(ctx, fmt.Sprintf("Staff %d", i), "STAFF", "N")
		require.NoError(t, err)
		assert.Equal(t, "Blue", result.Office.RoomName)
	}

	seventh, err := svc.AddPerson(ctx, "Staff 7", "STAFF", "N")
	require.NoError(t, err)
	assert.Empty(t, seventh.Office.RoomName)

	room, _ := svc.RoomByName("Blue")
	assert.Len(t, room.Occupants, 6)
	assert.Empty(t, seventh.Person.Office)
}

func TestAllocateOfficeAlreadyAllocated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)

	_, err = svc.AllocateOffice(ctx, result.Person.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyAllocated, apperrors.CodeOf(err))
}

func TestAllocateOfficeUnknownPerson(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	_, err := svc.AllocateOffice(ctx, "nope")
	assert.Equal(t, apperrors.CodePersonNotFound, apperrors.CodeOf(err))
}

func TestAllocateLivingSpaceEligibility(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "living_space", "Python")
	require.NoError(t, err)

	staff, err := svc.AddPerson(ctx, "John", "STAFF", "N")
	require.NoError(t, err)
	_, err = svc.AllocateLivingSpace(ctx, staff.Person.ID)
	assert.Equal(t, apperrors.CodeIneligible, apperrors.CodeOf(err))

	fellow, err := svc.AddPerson(ctx, "Jane", "FELLOW", "N")
	require.NoError(t, err)
	_, err = svc.AllocateLivingSpace(ctx, fellow.Person.ID)
	assert.Equal(t, apperrors.CodeIneligible, apperrors.CodeOf(err))

	room, _ := svc.RoomByName("Python")
	assert.Empty(t, room.Occupants)
}

func TestAllocationSkipsFullRooms(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := svc.AddPerson(ctx, fmt.Sprintf("Staff %d", i), "STAFF", "N")
		require.NoError(t, err)
	}

	// Blue is full, so the only eligible office is Red.
	_, err = svc.CreateRoom(ctx, "office", "Red")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Late Staff", "STAFF", "N")
	require.NoError(t, err)
	assert.Equal(t, "Red", result.Office.RoomName)
}

func TestAllocationSpreadsAcrossRooms(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(42)
	for i := 0; i < 10; i++ {
		_, err := svc.CreateRoom(ctx, "office", fmt.Sprintf("Office %d", i))
		require.NoError(t, err)
	}

	for i := 0; i < 30; i++ {
		result, err := svc.AddPerson(ctx, fmt.Sprintf("Staff %d", i), "STAFF", "N")
		require.NoError(t, err)
		require.NotEmpty(t, result.Office.RoomName)
	}

	// 30 people cannot fit into fewer than 5 offices of capacity 6, and a
	// person ID must never appear in more than one office.
	occupied := 0
	seen := make(map[string]bool)
	for _, room := range svc.Offices() {
		assert.LessOrEqual(t, len(room.Occupants), room.Capacity)
		if len(room.Occupants) > 0 {
			occupied++
		}
		for _, id := range room.Occupants {
			require.False(t, seen[id], "person %s in two offices", id)
			seen[id] = true
		}
	}
	assert.GreaterOrEqual(t, occupied, 5)
	assert.Len(t, seen, 30)
}

func TestReallocatePerson(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane Doe", "STAFF", "N")
	require.NoError(t, err)
	_, err = svc.CreateRoom(ctx, "office", "Red")
	require.NoError(t, err)

	room, err := svc.ReallocatePerson(ctx, result.Person.ID, "Red")
	require.NoError(t, err)
	assert.Equal(t, "Red", room.Name)

	person, _ := svc.PersonByID(result.Person.ID)
	assert.Equal(t, "Red", person.Office)

	blue, _ := svc.RoomByName("Blue")
	assert.Empty(t, blue.Occupants)
	red, _ := svc.RoomByName("Red")
	assert.Equal(t, []string{person.ID}, red.Occupants)
}

func TestReallocateToFullRoomLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := svc.AddPerson(ctx, fmt.Sprintf("Staff %d", i), "STAFF", "N")
		require.NoError(t, err)
	}
	_, err = svc.CreateRoom(ctx, "office", "Red")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)
	require.Equal(t, "Red", result.Office.RoomName)

	_, err = svc.ReallocatePerson(ctx, result.Person.ID, "Blue")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCapacityExceeded, apperrors.CodeOf(err))

	person, _ := svc.PersonByID(result.Person.ID)
	assert.Equal(t, "Red", person.Office)
	red, _ := svc.RoomByName("Red")
	assert.Contains(t, red.Occupants, person.ID)
	blue, _ := svc.RoomByName("Blue")
	assert.Len(t, blue.Occupants, 6)
}

func TestReallocateWrongRoomType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	_, err = svc.CreateRoom(ctx, "living_space", "Python")
	require.NoError(t, err)

	staff, err := svc.AddPerson(ctx, "John", "STAFF", "N")
	require.NoError(t, err)
	_, err = svc.ReallocatePerson(ctx, staff.Person.ID, "Python")
	assert.Equal(t, apperrors.CodeRoomTypeMismatch, apperrors.CodeOf(err))

	fellow, err := svc.AddPerson(ctx, "Jane", "FELLOW", "N")
	require.NoError(t, err)
	_, err = svc.ReallocatePerson(ctx, fellow.Person.ID, "Python")
	assert.Equal(t, apperrors.CodeRoomTypeMismatch, apperrors.CodeOf(err))
}

func TestReallocateLivingSpace(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "living_space", "Python")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane Doe", "FELLOW", "Y")
	require.NoError(t, err)
	require.Equal(t, "Python", result.LivingSpace.RoomName)
	_, err = svc.CreateRoom(ctx, "living_space", "Go")
	require.NoError(t, err)

	room, err := svc.ReallocatePerson(ctx, result.Person.ID, "Go")
	require.NoError(t, err)
	assert.Equal(t, "Go", room.Name)

	person, _ := svc.PersonByID(result.Person.ID)
	assert.Equal(t, "Go", person.LivingSpace)
	python, _ := svc.RoomByName("Python")
	assert.Empty(t, python.Occupants)
}

func TestReallocateLookupFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)

	_, err = svc.ReallocatePerson(ctx, "missing", "Blue")
	assert.Equal(t, apperrors.CodePersonNotFound, apperrors.CodeOf(err))

	_, err = svc.ReallocatePerson(ctx, result.Person.ID, "Nowhere")
	assert.Equal(t, apperrors.CodeRoomNotFound, apperrors.CodeOf(err))
}

func TestReallocateToCurrentRoomRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)
	result, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)

	_, err = svc.ReallocatePerson(ctx, result.Person.ID, "blue")
	assert.Equal(t, apperrors.CodeAlreadyOccupant, apperrors.CodeOf(err))
}

func TestReallocateFromUnallocated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	result, err := svc.AddPerson(ctx, "Jane", "STAFF", "N")
	require.NoError(t, err)
	require.Empty(t, result.Office.RoomName)

	_, err = svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	// A missing prior allocation is not an error.
	room, err := svc.ReallocatePerson(ctx, result.Person.ID, "Blue")
	require.NoError(t, err)
	assert.Equal(t, "Blue", room.Name)

	person, _ := svc.PersonByID(result.Person.ID)
	assert.Equal(t, "Blue", person.Office)
}

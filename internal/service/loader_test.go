package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dojo-service/internal/domain"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

func writePeopleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPeople(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)
	_, err := svc.CreateRoom(ctx, "office", "Blue")
	require.NoError(t, err)

	path := writePeopleFile(t, `# imported roster

OLUWAFEMI SULE FELLOW Y
DOMINIC WALTERS STAFF
SIMON PATTERSON FELLOW Y
MARI LAWRENCE STAFF
LEIGH RILEY FELLOW
BADLINE
`)

	summary, err := svc.LoadPeople(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "line 8")

	people := svc.People()
	require.Len(t, people, 5)
	assert.Equal(t, "OLUWAFEMI SULE", people[0].Name)
	assert.Equal(t, domain.RoleFellow, people[0].Role)
	assert.True(t, people[0].WantsAccommodation)
	assert.Equal(t, "DOMINIC WALTERS", people[1].Name)
	assert.Equal(t, domain.RoleStaff, people[1].Role)
	assert.False(t, people[4].WantsAccommodation)
}

func TestLoadPeopleSkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	path := writePeopleFile(t, `JANE DOE WIZARD
JOHN SMITH STAFF Y
ANNA BELL FELLOW Y
`)

	summary, err := svc.LoadPeople(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, svc.People(), 1)
}

func TestLoadPeopleMissingFile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(1)

	_, err := svc.LoadPeople(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
}

func TestParseRecord(t *testing.T) {
	record, err := parseRecord("JANE MARY DOE FELLOW Y")
	require.NoError(t, err)
	assert.Equal(t, "JANE MARY DOE", record.name)
	assert.Equal(t, "FELLOW", record.personType)
	assert.Equal(t, "Y", record.wantsAccommodation)

	record, err = parseRecord("JOHN STAFF")
	require.NoError(t, err)
	assert.Equal(t, "JOHN", record.name)
	assert.Equal(t, "N", record.wantsAccommodation)

	_, err = parseRecord("JUSTONE")
	assert.Error(t, err)

	_, err = parseRecord("STAFF Y")
	assert.Error(t, err)
}

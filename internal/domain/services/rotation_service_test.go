package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binreminder-http-service/internal/domain/models"
)

func rotationFixture(ids ...string) []models.Resident {
	residents := make([]models.Resident, 0, len(ids))
	for i, id := range ids {
		residents = append(residents, models.Resident{ID: id, Name: "Resident " + id, Position: i})
	}
	return residents
}

func TestNextInRotationCyclesThroughAllResidents(t *testing.T) {
	residents := rotationFixture("a", "b", "c")

	// 从a出发走N步应该回到a
	current := "a"
	for i := 0; i < len(residents); i++ {
		next := nextInRotation(residents, current)
		require.NotNil(t, next)
		current = next.ID
	}
	assert.Equal(t, "a", current)
}

func TestNextInRotationWrapsAtEnd(t *testing.T) {
	residents := rotationFixture("a", "b", "c")
	next := nextInRotation(residents, "c")
	require.NotNil(t, next)
	assert.Equal(t, "a", next.ID)
}

func TestNextInRotationUnknownCurrentFallsBackToFirst(t *testing.T) {
	residents := rotationFixture("a", "b")
	next := nextInRotation(residents, "deleted-id")
	require.NotNil(t, next)
	assert.Equal(t, "a", next.ID)
}

func TestNextInRotationEmptyList(t *testing.T) {
	assert.Nil(t, nextInRotation(nil, "a"))
}

func TestNextInRotationSingleResident(t *testing.T) {
	residents := rotationFixture("only")
	next := nextInRotation(residents, "only")
	require.NotNil(t, next)
	assert.Equal(t, "only", next.ID)
}

func TestFindResident(t *testing.T) {
	residents := rotationFixture("a", "b", "c")
	found := findResident(residents, "b")
	require.NotNil(t, found)
	assert.Equal(t, "b", found.ID)

	assert.Nil(t, findResident(residents, "zzz"))
	assert.Nil(t, findResident(nil, "a"))
}

func TestValidateReorderAcceptsPermutation(t *testing.T) {
	current := rotationFixture("a", "b", "c")
	assert.NoError(t, validateReorder(current, []string{"c", "a", "b"}))
}

func TestValidateReorderRejectsCountMismatch(t *testing.T) {
	current := rotationFixture("a", "b", "c")
	err := validateReorder(current, []string{"a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestValidateReorderRejectsUnknownID(t *testing.T) {
	current := rotationFixture("a", "b")
	err := validateReorder(current, []string{"a", "intruder"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestValidateReorderRejectsDuplicates(t *testing.T) {
	current := rotationFixture("a", "b")
	err := validateReorder(current, []string{"a", "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

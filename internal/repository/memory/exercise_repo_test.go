package memory

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Exercise{Name: "Squat", Type: domain.Barbell})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Exercise{Name: "DEADLIFT", Type: domain.Barbell})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPersistence)
}

func TestQueryByNameCaseInsensitive(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)

	for _, name := range []string{"deadlift", "DEADLIFT", "dEaDlIfT"} {
		got, err := repo.QueryByName(ctx, name)
		require.NoError(t, err, "query %q", name)
		require.NotNil(t, got.ID)
		assert.Equal(t, id, *got.ID)
	}
}

func TestUpdateRewritesFields(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)

	err = repo.Update(ctx, &domain.Exercise{ID: &id, Name: "DL", Type: domain.KettleBell})
	require.NoError(t, err)

	got, err := repo.QueryByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DL", got.Name)
	assert.Equal(t, domain.KettleBell, got.Type)
}

func TestUpdateMissingRow(t *testing.T) {
	repo := NewMemoryExerciseRepository()

	missing := int64(999)
	err := repo.Update(context.Background(), &domain.Exercise{ID: &missing, Name: "DL", Type: domain.Barbell})
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestDeleteHidesButKeepsRecord(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.QueryByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	// Deleting again fails: the record exists but is no longer live.
	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	// A freed name can be reused by a new exercise.
	newID, err := repo.Create(ctx, &domain.Exercise{Name: "Deadlift", Type: domain.Barbell})
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)
}

func TestListSortedAndExcludesDeleted(t *testing.T) {
	repo := NewMemoryExerciseRepository()
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Deadlift", "Benchpress", "Squat"} {
		id, err := repo.Create(ctx, &domain.Exercise{Name: name, Type: domain.Barbell})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, repo.Delete(ctx, ids[0]))

	exercises, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Benchpress", exercises[0].Name)
	assert.Equal(t, "Squat", exercises[1].Name)
}

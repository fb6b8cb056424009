package sqlite

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"alcyxob/trainer-service/internal/service"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "testdb.db3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestRepo(t *testing.T) (repository.ExerciseRepository, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewSQLiteExerciseRepository(db), db
}

func deadlift() *domain.Exercise {
	return &domain.Exercise{Name: "Deadlift", Type: domain.Barbell}
}

func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "not-found", "testdb.db3"))
	require.Error(t, err)
}

func TestCreateAndQueryByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	e := deadlift()
	e.Description = "an exercise"
	id, err := repo.Create(ctx, e)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.QueryByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.ID)
	assert.Equal(t, id, *got.ID)
	assert.Equal(t, "Deadlift", got.Name)
	assert.Equal(t, "an exercise", got.Description)
	assert.Equal(t, domain.Barbell, got.Type)
}

func TestQueryByIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.QueryByID(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestQueryByNameCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, deadlift())
	require.NoError(t, err)

	for _, name := range []string{"Deadlift", "DEADLIFT", "deadlift", "dEaDlIfT"} {
		got, err := repo.QueryByName(ctx, name)
		require.NoError(t, err, "query %q", name)
		require.NotNil(t, got.ID)
		assert.Equal(t, id, *got.ID, "query %q", name)
		assert.Equal(t, "Deadlift", got.Name)
	}
}

func TestQueryByNameNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.QueryByName(context.Background(), "Deadlift")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestCreateDuplicateNameDiffersOnlyByCase(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, deadlift())
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Exercise{Name: "DEADLIFT", Type: domain.Barbell})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.True(t, IsUniqueNameViolation(err))
}

func TestCreateEmptyName(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), &domain.Exercise{Type: domain.Barbell})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPersistence)
}

func TestUpdateModifiesRow(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, deadlift())
	require.NoError(t, err)

	err = repo.Update(ctx, &domain.Exercise{
		ID:          &id,
		Name:        "DL",
		Description: "updated",
		Type:        domain.KettleBell,
	})
	require.NoError(t, err)

	got, err := repo.QueryByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DL", got.Name)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, domain.KettleBell, got.Type)
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	missing := int64(999)
	err := repo.Update(context.Background(), &domain.Exercise{
		ID:   &missing,
		Name: "Deadlift",
		Type: domain.Barbell,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestUpdateWithoutID(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Update(context.Background(), deadlift())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPersistence)
}

func TestDeleteIsLogical(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, deadlift())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	// Invisible through the contract.
	_, err = repo.QueryByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	_, err = repo.QueryByName(ctx, "Deadlift")
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	// Still physically present, flagged deleted.
	var deleted int64
	err = db.QueryRow(`SELECT deleted FROM exercises WHERE id = ?`, id).Scan(&deleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestDeleteTwice(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, deadlift())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestListExcludesDeleted(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	names := []string{"Deadlift", "Benchpress", "Squat"}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := repo.Create(ctx, &domain.Exercise{Name: name, Type: domain.Barbell})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, repo.Delete(ctx, ids[1]))

	exercises, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, len(names)-1)
	assert.Equal(t, "Deadlift", exercises[0].Name)
	assert.Equal(t, "Squat", exercises[1].Name)
}

func TestListEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	exercises, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exercises)
}

// TestManagerLifecycle drives the full create/update/delete lifecycle through
// the manager against a real database.
func TestManagerLifecycle(t *testing.T) {
	repo, _ := newTestRepo(t)
	mgr := service.NewExerciseManager(repo)
	ctx := context.Background()

	exercise := deadlift()
	require.NoError(t, mgr.Save(ctx, exercise))
	require.NotNil(t, exercise.ID)
	assert.Equal(t, int64(1), *exercise.ID)

	exercise.Name = "DL"
	exercise.Type = domain.KettleBell
	require.NoError(t, mgr.Save(ctx, exercise))

	got, err := mgr.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "DL", got.Name)
	assert.Equal(t, domain.KettleBell, got.Type)

	require.NoError(t, mgr.Delete(ctx, "DL"))

	_, err = mgr.GetByName(ctx, "DL")
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	exercises, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises)
}

func TestManagerSaveUnknownIDFails(t *testing.T) {
	repo, _ := newTestRepo(t)
	mgr := service.NewExerciseManager(repo)

	missing := int64(12345)
	exercise := deadlift()
	exercise.ID = &missing
	err := mgr.Save(context.Background(), exercise)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

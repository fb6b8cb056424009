package sqlite

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// sqliteExerciseRepository implements repository.ExerciseRepository on top of
// a SQLite database opened with Open.
type sqliteExerciseRepository struct {
	db *sql.DB
}

// NewSQLiteExerciseRepository creates a new Exercise repository backed by SQLite.
func NewSQLiteExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &sqliteExerciseRepository{db: db}
}

// Create inserts a new exercise and returns the rowid SQLite assigned.
// A violation of the case-insensitive unique name index surfaces as
// repository.ErrPersistence, same as any other failed write.
func (r *sqliteExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	if exercise.Name == "" {
		return 0, fmt.Errorf("%w: exercise name is required", repository.ErrPersistence)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (name, description, exercise_type) VALUES (?, ?, ?)`,
		exercise.Name, exercise.Description, int64(exercise.Type),
	)
	if err != nil {
		// Keep the driver error in the chain so IsUniqueNameViolation can
		// still inspect it behind the persistence sentinel.
		return 0, fmt.Errorf("%w: %w", repository.ErrPersistence, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	return id, nil
}

// Update rewrites all mutable fields of the row matching exercise.ID inside a
// transaction. The transaction commits only when exactly one row was
// affected; zero rows means no live exercise has that id.
func (r *sqliteExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == nil {
		return fmt.Errorf("%w: exercise id is required for update", repository.ErrPersistence)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrConnection, err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE exercises SET name = ?, description = ?, exercise_type = ? WHERE id = ? AND deleted = 0`,
		exercise.Name, exercise.Description, int64(exercise.Type), *exercise.ID,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}

	switch affected {
	case 1:
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%w: %v", repository.ErrPersistence, err)
		}
		return nil
	case 0:
		_ = tx.Rollback()
		return repository.ErrItemNotFound
	default:
		// id is the primary key, so more than one affected row means the
		// store itself is corrupt.
		_ = tx.Rollback()
		return fmt.Errorf("%w: update matched %d rows", repository.ErrDuplicateID, affected)
	}
}

// QueryByName retrieves a non-deleted exercise by name. The comparison uses
// NOCASE collation, so "deadlift" matches a row named "Deadlift".
func (r *sqliteExerciseRepository) QueryByName(ctx context.Context, name string) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, exercise_type
		 FROM exercises
		 WHERE deleted = 0 AND name = ? COLLATE NOCASE`,
		name,
	)
	return r.scanExercise(row)
}

// QueryByID retrieves a non-deleted exercise by id.
func (r *sqliteExerciseRepository) QueryByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, exercise_type
		 FROM exercises
		 WHERE deleted = 0 AND id = ?`,
		id,
	)
	return r.scanExercise(row)
}

// List returns all non-deleted exercises in insertion order.
func (r *sqliteExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, exercise_type FROM exercises WHERE deleted = 0 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var (
			id          int64
			name        string
			description sql.NullString
			typeCode    int64
		)
		if err := rows.Scan(&id, &name, &description, &typeCode); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
		}
		exerciseType, err := domain.ExerciseTypeFromInt64(typeCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
		}
		exercises = append(exercises, domain.Exercise{
			ID:          &id,
			Name:        name,
			Description: description.String,
			Type:        exerciseType,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}
	return exercises, nil
}

// Delete flags the row matching id as deleted. The row stays in the table but
// no longer matches any query or listing.
func (r *sqliteExerciseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE exercises SET deleted = 1 WHERE id = ? AND deleted = 0`,
		id,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrDelete, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrDelete, err)
	}

	switch affected {
	case 1:
		return nil
	case 0:
		return repository.ErrItemNotFound
	default:
		return fmt.Errorf("%w: delete matched %d rows", repository.ErrDuplicateID, affected)
	}
}

// scanExercise maps a single-row query result onto a domain.Exercise,
// translating sql.ErrNoRows into the repository's not-found sentinel.
func (r *sqliteExerciseRepository) scanExercise(row *sql.Row) (*domain.Exercise, error) {
	var (
		id          int64
		name        string
		description sql.NullString
		typeCode    int64
	)
	if err := row.Scan(&id, &name, &description, &typeCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}

	exerciseType, err := domain.ExerciseTypeFromInt64(typeCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrQuery, err)
	}

	return &domain.Exercise{
		ID:          &id,
		Name:        name,
		Description: description.String,
		Type:        exerciseType,
	}, nil
}

// IsUniqueNameViolation reports whether err was caused by the unique name
// index, for callers that want to distinguish a duplicate name from other
// persistence failures.
func IsUniqueNameViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

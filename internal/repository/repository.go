package repository

import (
	"alcyxob/trainer-service/internal/domain"
	"context"
)

// RepositoryError helps distinguish repository errors from other failures.
// Adapters wrap these sentinels with detail via fmt.Errorf("%w: ...") and
// callers match them with errors.Is.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Error sentinels for the repository layer. Storage adapters must translate
// their engine-specific failures into exactly one of these before returning.
var (
	// ErrItemNotFound means no non-deleted row matched the lookup.
	ErrItemNotFound = RepositoryError("item not found")
	// ErrPersistence covers failed writes, including unique-name violations.
	ErrPersistence = RepositoryError("persistence error")
	// ErrConnection covers an unreachable or unresponsive store.
	ErrConnection = RepositoryError("connection error")
	// ErrQuery covers failed reads that are not simple misses.
	ErrQuery = RepositoryError("query error")
	// ErrDelete covers failed soft-delete writes.
	ErrDelete = RepositoryError("delete error")
	// ErrDuplicateID means a write would produce a second row with the same id.
	ErrDuplicateID = RepositoryError("duplicate id")
	// ErrUnknown covers failures the adapter could not classify.
	ErrUnknown = RepositoryError("unknown repository error")
)

// ExerciseRepository defines the storage contract for exercise data. Any
// engine (relational, document, in-memory) satisfying these semantics is
// substitutable.
//
// Deletion is logical everywhere: deleted rows stay in the store for
// auditability but are invisible to QueryByName, QueryByID and List.
type ExerciseRepository interface {
	// Create inserts a new exercise and returns the id the store assigned.
	// Returns ErrPersistence when the case-insensitive unique-name constraint
	// is violated or the write fails.
	Create(ctx context.Context, exercise *domain.Exercise) (int64, error)

	// Update rewrites all mutable fields of the row matching exercise.ID.
	// Exactly one affected row is the only success path; zero rows yields
	// ErrItemNotFound and the statement is rolled back.
	Update(ctx context.Context, exercise *domain.Exercise) error

	// QueryByName retrieves a non-deleted exercise by case-insensitive exact
	// name match. Returns ErrItemNotFound when no such exercise exists.
	QueryByName(ctx context.Context, name string) (*domain.Exercise, error)

	// QueryByID retrieves a non-deleted exercise by id. Returns
	// ErrItemNotFound when no such exercise exists.
	QueryByID(ctx context.Context, id int64) (*domain.Exercise, error)

	// List returns all non-deleted exercises. Order is unspecified.
	List(ctx context.Context) ([]domain.Exercise, error)

	// Delete flags the row matching id as deleted without removing it.
	// Returns ErrItemNotFound when zero rows are affected.
	Delete(ctx context.Context, id int64) error
}

package service

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// --- Error Definitions ---
//
// Domain-tier outcomes surfaced to callers. Repository errors never cross the
// manager boundary unmapped: every repository variant is translated into
// exactly one of these, with the original detail logged at the translation
// point. Not-found errors are wrapped with the queried name or id so callers
// can report what was missing.
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrLookupFailed     = errors.New("exercise lookup failed")
	ErrSaveFailed       = errors.New("exercise save failed")
	ErrDeleteFailed     = errors.New("exercise delete failed")
	ErrQueryFailed      = errors.New("exercise query failed")
	ErrUnknown          = errors.New("unknown exercise error")
)

// ExerciseManager orchestrates exercise CRUD against a pluggable repository,
// translating repository outcomes into domain outcomes.
type ExerciseManager interface {
	// Save creates the exercise when its ID is nil, assigning the repository
	// generated id onto the passed exercise, and updates it otherwise.
	Save(ctx context.Context, exercise *domain.Exercise) error

	// GetByName retrieves an exercise by its unique name (case-insensitive).
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)

	// GetByID retrieves an exercise by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)

	// List retrieves all exercises that have not been deleted.
	List(ctx context.Context) ([]domain.Exercise, error)

	// Delete removes the exercise with the given name from all subsequent
	// queries. The underlying row is retained.
	Delete(ctx context.Context, name string) error
}

// exerciseManager implements the ExerciseManager interface.
type exerciseManager struct {
	repo repository.ExerciseRepository
}

// NewExerciseManager creates a new ExerciseManager backed by repo.
func NewExerciseManager(repo repository.ExerciseRepository) ExerciseManager {
	return &exerciseManager{repo: repo}
}

// Save dispatches on ID presence: nil means the exercise has never been
// persisted and is created; otherwise the manager verifies the id still
// refers to a live row before updating. The existence check and the update
// are not transactional; two concurrent saves against the same id can
// interleave, an accepted narrow race window rather than a bug to lock away.
func (m *exerciseManager) Save(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == nil {
		return m.create(ctx, exercise)
	}

	if _, err := m.repo.QueryByID(ctx, *exercise.ID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			log.Error().Int64("id", *exercise.ID).Msg("exercise was not found with provided id")
			return fmt.Errorf("%w: no exercise with id %d", ErrExerciseNotFound, *exercise.ID)
		}
		log.Error().Err(err).Int64("id", *exercise.ID).Msg("existence check failed")
		return ErrUnknown
	}

	if err := m.repo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrPersistence) {
			log.Error().Err(err).Str("name", exercise.Name).Msg("exercise update failed")
			return ErrSaveFailed
		}
		log.Error().Err(err).Str("name", exercise.Name).Msg("exercise update failed")
		return ErrUnknown
	}

	log.Debug().Str("name", exercise.Name).Msg("update to exercise was successful")
	return nil
}

func (m *exerciseManager) create(ctx context.Context, exercise *domain.Exercise) error {
	id, err := m.repo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrPersistence) {
			log.Error().Err(err).Str("name", exercise.Name).Msg("exercise create failed")
			return ErrSaveFailed
		}
		log.Error().Err(err).Str("name", exercise.Name).Msg("exercise create failed")
		return ErrUnknown
	}

	log.Debug().Int64("id", id).Msg("received id from repository")
	exercise.ID = &id
	return nil
}

// GetByName retrieves an exercise by name, case-insensitively. A not-found
// outcome is distinguished from lookup failures so callers can choose between
// retrying and giving up.
func (m *exerciseManager) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	exercise, err := m.repo.QueryByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			log.Debug().Str("name", name).Msg("exercise not found")
			return nil, fmt.Errorf("%w: no exercise named %q", ErrExerciseNotFound, name)
		}
		log.Error().Err(err).Str("name", name).Msg("exercise lookup failed")
		return nil, ErrLookupFailed
	}
	return exercise, nil
}

// GetByID retrieves an exercise by id.
func (m *exerciseManager) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	exercise, err := m.repo.QueryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			log.Debug().Int64("id", id).Msg("exercise not found")
			return nil, fmt.Errorf("%w: no exercise with id %d", ErrExerciseNotFound, id)
		}
		log.Error().Err(err).Int64("id", id).Msg("exercise lookup failed")
		return nil, ErrLookupFailed
	}
	return exercise, nil
}

// List retrieves all non-deleted exercises, passing the repository's result
// through unchanged on success.
func (m *exerciseManager) List(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := m.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("exercise list failed")
		return nil, ErrQueryFailed
	}
	return exercises, nil
}

// Delete looks the exercise up by name to obtain its id, then flags it
// deleted.
func (m *exerciseManager) Delete(ctx context.Context, name string) error {
	exercise, err := m.repo.QueryByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			log.Error().Str("name", name).Msg("exercise was not found")
			return fmt.Errorf("%w: no exercise named %q", ErrExerciseNotFound, name)
		}
		log.Error().Err(err).Str("name", name).Msg("exercise lookup failed")
		return ErrQueryFailed
	}

	// A repository that returned an exercise must have persisted it, so the
	// id is guaranteed present. A nil id here means the adapter broke the
	// contract.
	if exercise.ID == nil {
		log.Error().Str("name", name).Msg("repository returned exercise without id")
		return fmt.Errorf("%w: exercise %q has no id", ErrUnknown, name)
	}

	if err := m.repo.Delete(ctx, *exercise.ID); err != nil {
		log.Error().Err(err).Str("name", name).Msg("exercise delete failed")
		return ErrDeleteFailed
	}
	return nil
}

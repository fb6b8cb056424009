// Package memory provides an in-process ExerciseRepository used by tests and
// local runs. It keeps the same observable semantics as the durable adapters:
// ids assigned once, case-insensitive unique names, and logical deletion.
package memory

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/repository"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type record struct {
	exercise domain.Exercise
	deleted  bool
}

type memoryExerciseRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*record
}

// NewMemoryExerciseRepository creates an empty in-memory Exercise repository.
func NewMemoryExerciseRepository() repository.ExerciseRepository {
	return &memoryExerciseRepository{rows: make(map[int64]*record)}
}

func (r *memoryExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	if exercise.Name == "" {
		return 0, fmt.Errorf("%w: exercise name is required", repository.ErrPersistence)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if !row.deleted && strings.EqualFold(row.exercise.Name, exercise.Name) {
			return 0, fmt.Errorf("%w: name %q already exists", repository.ErrPersistence, exercise.Name)
		}
	}

	r.nextID++
	id := r.nextID
	stored := *exercise
	stored.ID = &id
	r.rows[id] = &record{exercise: stored}
	return id, nil
}

func (r *memoryExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == nil {
		return fmt.Errorf("%w: exercise id is required for update", repository.ErrPersistence)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[*exercise.ID]
	if !ok || row.deleted {
		return repository.ErrItemNotFound
	}

	for id, other := range r.rows {
		if id != *exercise.ID && !other.deleted && strings.EqualFold(other.exercise.Name, exercise.Name) {
			return fmt.Errorf("%w: name %q already exists", repository.ErrPersistence, exercise.Name)
		}
	}

	row.exercise.Name = exercise.Name
	row.exercise.Description = exercise.Description
	row.exercise.Type = exercise.Type
	return nil
}

func (r *memoryExerciseRepository) QueryByName(ctx context.Context, name string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if !row.deleted && strings.EqualFold(row.exercise.Name, name) {
			exercise := row.exercise
			id := *row.exercise.ID
			exercise.ID = &id
			return &exercise, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (r *memoryExerciseRepository) QueryByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok || row.deleted {
		return nil, repository.ErrItemNotFound
	}
	exercise := row.exercise
	exerciseID := id
	exercise.ID = &exerciseID
	return &exercise, nil
}

func (r *memoryExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rows))
	for id, row := range r.rows {
		if !row.deleted {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	exercises := make([]domain.Exercise, 0, len(ids))
	for _, id := range ids {
		exercise := r.rows[id].exercise
		exerciseID := id
		exercise.ID = &exerciseID
		exercises = append(exercises, exercise)
	}
	return exercises, nil
}

func (r *memoryExerciseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok || row.deleted {
		return repository.ErrItemNotFound
	}
	row.deleted = true
	return nil
}

// internal/domain/exercise.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidExerciseType is returned when a string or integer value cannot be
// converted into an ExerciseType. Conversions happen at service boundaries
// (user input, storage rows), so failures are recoverable errors, never panics.
var ErrInvalidExerciseType = errors.New("invalid exercise type")

// ExerciseType is the closed set of equipment categories an exercise can have.
// The integer values are the storage encoding and must stay stable.
type ExerciseType int64

const (
	Barbell    ExerciseType = 0
	KettleBell ExerciseType = 1
	BodyWeight ExerciseType = 2
)

// String returns the canonical name of the exercise type.
func (t ExerciseType) String() string {
	switch t {
	case Barbell:
		return "Barbell"
	case KettleBell:
		return "KettleBell"
	case BodyWeight:
		return "BodyWeight"
	default:
		return fmt.Sprintf("ExerciseType(%d)", int64(t))
	}
}

// ExerciseTypeFromInt64 converts the stored integer encoding back into an
// ExerciseType.
func ExerciseTypeFromInt64(v int64) (ExerciseType, error) {
	switch v {
	case 0:
		return Barbell, nil
	case 1:
		return KettleBell, nil
	case 2:
		return BodyWeight, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidExerciseType, v)
	}
}

// ParseExerciseType converts user input into an ExerciseType. Matching is
// case-insensitive and accepts the short aliases "bb", "kb" and "bw".
func ParseExerciseType(s string) (ExerciseType, error) {
	switch strings.ToLower(s) {
	case "barbell", "bb":
		return Barbell, nil
	case "kettlebell", "kb":
		return KettleBell, nil
	case "bodyweight", "bw":
		return BodyWeight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidExerciseType, s)
	}
}

// Exercise represents a single exercise definition in the library.
// ID is nil until the exercise has been persisted for the first time; the
// repository assigns it exactly once on creation and it is immutable after
// that. Name must be unique across all non-deleted exercises, compared
// case-insensitively.
type Exercise struct {
	ID          *int64       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Type        ExerciseType `json:"exerciseType"`
}

// Persisted reports whether the repository has assigned the exercise an
// identifier.
func (e *Exercise) Persisted() bool {
	return e.ID != nil
}

package api

import (
	"alcyxob/trainer-service/internal/domain"
	"alcyxob/trainer-service/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise manager dependency.
type ExerciseHandler struct {
	exercises service.ExerciseManager
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exercises service.ExerciseManager) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise. ExerciseType accepts the canonical names and short aliases
// ("barbell"/"bb", "kettlebell"/"kb", "bodyweight"/"bw"), case-insensitive.
type ExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ExerciseType string `json:"exerciseType" binding:"required"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ExerciseType string `json:"exerciseType"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		Name:         ex.Name,
		Description:  ex.Description,
		ExerciseType: ex.Type.String(),
	}
	if ex.ID != nil {
		resp.ID = *ex.ID
	}
	return resp
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// abortWithDomainError maps manager errors onto HTTP status codes.
func abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSaveFailed):
		// Save failures are almost always the unique-name constraint firing.
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// --- Handler Methods ---

// CreateExercise handles POST /exercises. The manager assigns the id, which
// is returned in the response body.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exerciseType, err := domain.ParseExerciseType(req.ExerciseType)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise := &domain.Exercise{
		Name:        req.Name,
		Description: req.Description,
		Type:        exerciseType,
	}

	if err := h.exercises.Save(c.Request.Context(), exercise); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise handles PUT /exercises/:id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exerciseType, err := domain.ParseExerciseType(req.ExerciseType)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise := &domain.Exercise{
		ID:          &id,
		Name:        req.Name,
		Description: req.Description,
		Type:        exerciseType,
	}

	if err := h.exercises.Save(c.Request.Context(), exercise); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetExerciseByID handles GET /exercises/:id.
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exercises.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// ListExercises handles GET /exercises. With a ?name= query parameter it
// performs a case-insensitive lookup of that single exercise instead.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		exercise, err := h.exercises.GetByName(c.Request.Context(), name)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
		return
	}

	exercises, err := h.exercises.List(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// DeleteExercise handles DELETE /exercises?name=. Deletion is addressed by
// name because names are the unique human-facing handle for exercises.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		abortWithError(c, http.StatusBadRequest, "Exercise name is required.")
		return
	}

	if err := h.exercises.Delete(c.Request.Context(), name); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

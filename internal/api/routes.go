package api

import (
	"alcyxob/trainer-service/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the exercise endpoints onto the router. The transport
// layer stays thin: routing, binding and status mapping only.
func SetupRoutes(router *gin.Engine, exerciseManager service.ExerciseManager) {
	exerciseHandler := NewExerciseHandler(exerciseManager)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	{
		exercises := v1.Group("/exercises")
		{
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.GET("/:id", exerciseHandler.GetExerciseByID)
			exercises.PUT("/:id", exerciseHandler.UpdateExercise)
			exercises.DELETE("", exerciseHandler.DeleteExercise)
		}
	}
}

package main

import (
	"alcyxob/trainer-service/internal/api"
	"alcyxob/trainer-service/internal/config"
	"alcyxob/trainer-service/internal/repository"
	mongorepo "alcyxob/trainer-service/internal/repository/mongo"
	sqliterepo "alcyxob/trainer-service/internal/repository/sqlite"
	"alcyxob/trainer-service/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("Starting Trainer Service...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Info().Str("engine", cfg.Database.Engine).Msg("Configuration loaded")

	// --- Repository Backend ---
	exerciseRepo, cleanup, err := openRepository(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not open repository backend")
	}
	defer cleanup()

	// --- Initialize Services ---
	exerciseManager := service.NewExerciseManager(exerciseRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, exerciseManager)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("address", cfg.Server.Address).Msg("Server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openRepository builds the configured repository backend and returns it
// along with a cleanup function for shutdown.
func openRepository(cfg config.DatabaseConfig) (repository.ExerciseRepository, func(), error) {
	switch cfg.Engine {
	case config.EngineSQLite:
		db, err := sqliterepo.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close sqlite database")
			}
		}
		return sqliterepo.NewSQLiteExerciseRepository(db), cleanup, nil

	case config.EngineMongoDB:
		client, err := mongorepo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		appDB := client.Database(cfg.Name)

		indexCtx, indexCancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer indexCancel()
		if err := mongorepo.EnsureExerciseIndexes(indexCtx, appDB.Collection("exercises")); err != nil {
			log.Warn().Err(err).Msg("Failed to create exercise indexes")
		}

		cleanup := func() {
			log.Info().Msg("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(client); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}
		return mongorepo.NewMongoExerciseRepository(appDB), cleanup, nil

	default:
		return nil, nil, errors.New("unsupported database engine: " + cfg.Engine)
	}
}

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Supported database engines.
const (
	EngineSQLite  = "sqlite"
	EngineMongoDB = "mongodb"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects and parameterizes the repository backend. Engine is
// either "sqlite" (Path points at the database file, ":memory:" allowed) or
// "mongodb" (URI and Name select the deployment and database).
type DatabaseConfig struct {
	Engine string `mapstructure:"engine"`
	Path   string `mapstructure:"path"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
// Environment variables use underscores for nesting, e.g. DATABASE_ENGINE
// overrides database.engine.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.engine", EngineSQLite)
	viper.SetDefault("database.path", "trainer.db")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "trainer_service")
	viper.SetDefault("log.level", "info")

	err = viper.ReadInConfig()
	// Missing config file is fine; defaults and env vars carry the run.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

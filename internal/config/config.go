package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Snapshot SnapshotConfig
	Random   RandomConfig
}

// AppConfig identifies the running application.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SnapshotConfig locates the flat state snapshot file.
type SnapshotConfig struct {
	Path string
}

// RandomConfig controls room selection randomness. Seed 0 means time-seeded;
// any other value makes allocation reproducible.
type RandomConfig struct {
	Seed int64
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "dojo-service"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Snapshot: SnapshotConfig{
			Path: getEnv("DOJO_SNAPSHOT_PATH", defaultSnapshotPath()),
		},
		Random: RandomConfig{
			Seed: getEnvAsInt64("DOJO_RANDOM_SEED", 0),
		},
	}

	return cfg, nil
}

func defaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dojo", "state.yaml")
	}
	return filepath.Join(home, ".dojo", "state.yaml")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

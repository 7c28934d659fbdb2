package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"campfire/internal/shared/telemetry"
)

// loadEnvFiles copies .env entries into the process environment. Variables
// that are already set keep their value, so the real environment wins.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.dotenv.invalid", map[string]any{"path": path, "error": err.Error()})
		}
	}
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Freddy-Gong/react-native-website/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files found in dir. Variables already present in
// the environment keep their values.
func loadEnvFiles(dir string) []string {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
		loaded = append(loaded, path)
	}
	return loaded
}

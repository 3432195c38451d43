package env

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if one exists. The
// ENV_PATH environment variable overrides the default location. A missing
// file is not an error; the process environment is used as is.
func LoadDotEnv(defaultPath string) error {
	path := defaultPath
	if p := os.Getenv("ENV_PATH"); p != "" {
		path = p
	}

	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No .env file found, using process environment", "path", path)
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from the dotenv file at path into the process
// environment. Variables that are already set are left untouched, so the
// real environment always wins over the file.
//
// An empty path is a no-op. A path that does not exist is an error: the file
// was asked for explicitly.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: ENV_FILE: %s does not exist", ErrInvalidValue, path)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}

	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from CALC_ENV_FILE, or .env when unset. A
// missing file is not an error and existing process variables win.
func loadDotEnv() error {
	path := envOr("CALC_ENV_FILE", ".env")

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

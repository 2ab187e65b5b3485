// Command driveimg caches Google Drive images referenced from documents.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/driveimg/internal/adapters/driving/cli"
	"github.com/custodia-labs/driveimg/internal/logger"
)

func main() {
	// A project .env may carry GOOGLE_DRIVE_SERVICE_ACCOUNT_KEY.
	// Variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("reading .env: %v", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

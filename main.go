package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/dreamlog/pkg/cli"
	"github.com/m-mizutani/dreamlog/pkg/utils/logging"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Default().Warn("failed to load .env", "error", err)
	}

	if err := cli.Run(ctx, os.Args); err != nil {
		if err.Message != "" {
			logging.Default().Error(err.Message)
		}
		os.Exit(err.Code)
	}
}

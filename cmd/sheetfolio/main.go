package main

import (
	"os"

	"sheetfolio/internal/cli"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

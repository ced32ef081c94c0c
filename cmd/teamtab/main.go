package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/teamtab/internal/cli"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	root := cli.NewRootCommand(context.Background(), os.Stdin, os.Stdout, os.Stderr)
	os.Exit(root.Execute())
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/greenteam/opsboard/internal/client/api"
	"github.com/greenteam/opsboard/internal/client/auth"
	"github.com/greenteam/opsboard/internal/client/cli"
	"github.com/greenteam/opsboard/internal/client/iocli"
	"github.com/greenteam/opsboard/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "opsboard-client.db", "Path to local database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент и сервисы
	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage)

	app := cli.New(apiClient, authService, boltStorage, iocli.NewStdio(), logger)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Greenteam Ops Board Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

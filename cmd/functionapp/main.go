package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"nutrimacro/internal/app"
	"nutrimacro/internal/config"
	"nutrimacro/internal/infrastructure"
	"nutrimacro/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, nil))
}

// run starts the host, or with -once processes the blob a single time, and
// returns the process exit code. A nil factory uses the Azure SDK store.
func run(args []string, stdout io.Writer, factory storage.StoreFactory) int {
	fs := flag.NewFlagSet("functionapp", flag.ContinueOnError)
	once := fs.Bool("once", false, "run the ingestion pipeline once and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		return 1
	}

	application, err := app.NewApplication(cfg, logger, providers, factory)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		return 1
	}

	ctx := context.Background()

	if *once {
		ctx = infrastructure.EnsureTraceID(ctx)
		defer func() {
			if err := providers.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
			}
		}()

		message, err := application.Ingestion.Process(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to process nutritional data.", slog.String("error", err.Error()))
			fmt.Fprintln(os.Stderr, "Processing failed: "+err.Error())
			return 1
		}
		fmt.Fprintln(stdout, message)
		return 0
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/prospector/internal/config"
	"github.com/urfave/cli/v2"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// A run in progress stops before its next location and keeps what it completed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Load application configuration.
	cfg := config.MustLoad()

	app := newApp(cfg)
	if err := app.RunContext(ctx, os.Args); err != nil {
		setupLogger(cfg.Env).Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}

	stop()
}

func newApp(cfg *config.Config) *cli.App {
	app := &application{cfg: cfg}

	return &cli.App{
		Name:  "prospector",
		Usage: "collect nearby places around known locations and report those without a website",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env",
				Usage:       "logging environment: local, development, production",
				Value:       cfg.Env,
				Destination: &cfg.Env,
			},
		},
		Before: func(_ *cli.Context) error {
			// Set up the logger based on the environment.
			app.log = setupLogger(cfg.Env)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "perform one ingestion pass starting after the stored checkpoint",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "cap",
						Usage:       "maximum number of locations processed by this run",
						Value:       cfg.LocationCap,
						Destination: &cfg.LocationCap,
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "place category to query, repeatable",
					},
				},
				Action: app.run,
			},
			{
				Name:   "checkpoint",
				Usage:  "print the identifier of the last fully processed location",
				Action: app.checkpoint,
			},
			{
				Name:   "migrate",
				Usage:  "create the database tables",
				Action: app.migrate,
			},
		},
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/prospector/internal/alert"
	"github.com/UnknownOlympus/prospector/internal/checkpoint"
	"github.com/UnknownOlympus/prospector/internal/config"
	"github.com/UnknownOlympus/prospector/internal/directory"
	"github.com/UnknownOlympus/prospector/internal/locations"
	"github.com/UnknownOlympus/prospector/internal/metrics"
	"github.com/UnknownOlympus/prospector/internal/repository"
	"github.com/UnknownOlympus/prospector/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

const (
	metricsJob  = "prospector"
	pushTimeout = 10 * time.Second
)

// application carries what the commands share.
type application struct {
	cfg *config.Config
	log *slog.Logger
}

// run performs one ingestion pass and exits non-zero when it fails.
func (a *application) run(c *cli.Context) error {
	ctx := c.Context
	cfg := a.cfg

	// Create a separate registry for the metrics of this run.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// The notifier has no dependency on the stores, so setup failures are reported too.
	notifier := alert.NewNotifier(alert.NewWebhook(cfg.Alerts.WebhookURL, a.log), cfg.Alerts.Pause, a.log)

	// Initialize the database connection.
	dtb, err := a.connect(ctx)
	if err != nil {
		return a.setupFailed(ctx, notifier, err)
	}
	defer dtb.Close()

	checkpoints, closeCheckpoints, err := a.checkpointStore(dtb)
	if err != nil {
		return a.setupFailed(ctx, notifier, err)
	}
	defer closeCheckpoints()

	locationSource, err := a.locationSource(dtb)
	if err != nil {
		return a.setupFailed(ctx, notifier, err)
	}

	// Create the places directory using factory pattern based on configuration.
	dir, err := directory.NewProvider(directory.ProviderConfig{
		Type:      directory.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Logger:    a.log,
	})
	if err != nil {
		return a.setupFailed(ctx, notifier, fmt.Errorf("failed to create places directory: %w", err))
	}
	a.log.InfoContext(ctx, "Places directory initialized", "type", cfg.ProviderType)

	categories := cfg.Categories
	if c.IsSet("category") {
		categories = c.StringSlice("category")
	}

	ingestion := service.NewIngestionService(
		a.log,
		dir,
		repository.NewPlaceRepository(dtb, a.log),
		checkpoints,
		locationSource,
		notifier,
		appMetrics,
		service.Options{Categories: categories, LocationCap: cfg.LocationCap},
	)

	summary, runErr := ingestion.Run(ctx)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		if err = metrics.Push(pushCtx, cfg.PushgatewayURL, metricsJob, reg); err != nil {
			a.log.WarnContext(ctx, "Metrics were not pushed", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		return cli.Exit(fmt.Sprintf("ingestion failed at checkpoint %d: %v", summary.Checkpoint, runErr), 1)
	}

	fmt.Fprintf(c.App.Writer, "processed %d locations, checkpoint %d, %d new places, %d merged, %d alerts\n",
		summary.Processed, summary.Checkpoint, summary.PlacesCreated, summary.PlacesMerged, summary.AlertsSent)

	return nil
}

// setupFailed reports a run that could not start and exits non-zero.
func (a *application) setupFailed(ctx context.Context, notifier alert.Sink, err error) error {
	a.log.ErrorContext(ctx, "Ingestion run could not start", "error", err)
	errNotify := notifier.NotifyRunOutcome(context.WithoutCancel(ctx), alert.RunFailure, err.Error())
	if errNotify != nil {
		a.log.WarnContext(ctx, "Run outcome alert was not delivered", "error", errNotify)
	}

	return cli.Exit(fmt.Sprintf("ingestion failed to start: %v", err), 1)
}

// checkpoint prints the stored checkpoint.
func (a *application) checkpoint(c *cli.Context) error {
	ctx := c.Context

	var dtb *pgxpool.Pool
	if a.cfg.Checkpoint.Backend != config.BackendBadger {
		var err error
		if dtb, err = a.connect(ctx); err != nil {
			return err
		}
		defer dtb.Close()
	}

	store, closeStore, err := a.checkpointStore(dtb)
	if err != nil {
		return err
	}
	defer closeStore()

	value, err := store.Read(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, value)

	return nil
}

// migrate creates the database tables.
func (a *application) migrate(c *cli.Context) error {
	ctx := c.Context

	dtb, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dtb.Close()

	if err = repository.Migrate(ctx, dtb); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "Database schema is up to date")

	return nil
}

func (a *application) connect(ctx context.Context) (*pgxpool.Pool, error) {
	db := a.cfg.Database
	dtb, err := repository.NewDatabase(ctx, db.Host, db.Port, db.User, db.Password, db.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrStoreUnavailable, err)
	}

	return dtb, nil
}

func (a *application) checkpointStore(dtb *pgxpool.Pool) (repository.CheckpointStore, func(), error) {
	switch a.cfg.Checkpoint.Backend {
	case config.BackendPostgres:
		return repository.NewCheckpointRepository(dtb, a.log), func() {}, nil
	case config.BackendBadger:
		if a.cfg.Checkpoint.Path == "" {
			return nil, nil, errors.New("checkpoint path is not configured for the badger backend")
		}
		store, err := checkpoint.OpenBadgerStore(a.cfg.Checkpoint.Path, a.log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if errClose := store.Close(); errClose != nil {
				a.log.Error("Failed to close checkpoint store", "error", errClose)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported checkpoint backend: %s", a.cfg.Checkpoint.Backend)
	}
}

func (a *application) locationSource(dtb *pgxpool.Pool) (repository.LocationSource, error) {
	switch a.cfg.Locations.Source {
	case config.BackendPostgres:
		return repository.NewLocationRepository(dtb, a.log), nil
	case config.BackendFile:
		if a.cfg.Locations.File == "" {
			return nil, errors.New("locations file is not configured")
		}
		return locations.NewFileSource(a.cfg.Locations.File, a.log), nil
	default:
		return nil, fmt.Errorf("unsupported locations source: %s", a.cfg.Locations.Source)
	}
}

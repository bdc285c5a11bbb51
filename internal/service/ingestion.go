package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/prospector/internal/alert"
	"github.com/UnknownOlympus/prospector/internal/directory"
	"github.com/UnknownOlympus/prospector/internal/metrics"
	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/UnknownOlympus/prospector/internal/repository"
)

// DefaultLocationCap bounds the number of locations processed by one run.
const DefaultLocationCap = 10

// DefaultCategories are the place categories queried for every location, in order.
var DefaultCategories = []string{"store", "restaurant", "lodging", "bar"}

// ErrUnorderedLocations is returned when the location source does not yield
// strictly increasing identifiers, which would break the resume cursor.
var ErrUnorderedLocations = errors.New("locations are not ordered by identifier")

// Options tunes an IngestionService. Zero values fall back to the defaults.
type Options struct {
	Categories  []string // Categories queried for every location.
	LocationCap int      // LocationCap is the maximum number of locations processed per run.
}

// Summary describes what one run did.
type Summary struct {
	State           State // State is the terminal state of the run.
	StartCheckpoint int64 // StartCheckpoint is the checkpoint read when the run started.
	Checkpoint      int64 // Checkpoint is the last fully completed location.
	Processed       int   // Processed is the number of locations completed by this run.
	PlacesCreated   int
	PlacesMerged    int
	AlertsSent      int
}

// IngestionService scans locations for nearby places, persists them and raises alerts.
type IngestionService struct {
	log         *slog.Logger               // Logger for logging service activities
	directory   directory.Client           // Places directory queried for candidates and details
	places      repository.PlaceStore      // Store of deduplicated place records
	checkpoints repository.CheckpointStore // Store of the resume cursor
	locations   repository.LocationSource  // Source of the ordered locations
	alerts      alert.Sink                 // Sink for missing website and run outcome alerts
	metrics     *metrics.Metrics           // Metrics for tracking service performance
	categories  []string
	locationCap int
	state       State
}

// NewIngestionService creates a new instance of IngestionService.
func NewIngestionService(
	log *slog.Logger,
	dir directory.Client,
	places repository.PlaceStore,
	checkpoints repository.CheckpointStore,
	locations repository.LocationSource,
	alerts alert.Sink,
	metrics *metrics.Metrics,
	opts Options,
) *IngestionService {
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	if opts.LocationCap <= 0 {
		opts.LocationCap = DefaultLocationCap
	}

	return &IngestionService{
		log:         log,
		directory:   dir,
		places:      places,
		checkpoints: checkpoints,
		locations:   locations,
		alerts:      alerts,
		metrics:     metrics,
		categories:  opts.Categories,
		locationCap: opts.LocationCap,
		state:       StateIdle,
	}
}

// Run performs one ingestion pass, starting right after the stored checkpoint.
// The run outcome is always reported through the alert sink before Run returns.
func (is *IngestionService) Run(ctx context.Context) (Summary, error) {
	startTime := time.Now()
	defer func() {
		is.metrics.RunSeconds.Observe(time.Since(startTime).Seconds())
	}()

	is.transition(ctx, StateRunStarted)

	var summary Summary
	checkpoint, err := is.checkpoints.Read(ctx)
	if err != nil {
		return is.fail(ctx, summary, fmt.Errorf("failed to read checkpoint: %w", err))
	}
	summary.StartCheckpoint = checkpoint
	summary.Checkpoint = checkpoint

	locations, err := is.locations.Locations(ctx)
	if err != nil {
		return is.fail(ctx, summary, fmt.Errorf("failed to load locations: %w", err))
	}
	if err = checkOrder(locations, checkpoint); err != nil {
		return is.fail(ctx, summary, err)
	}

	is.log.InfoContext(ctx, "Ingestion run started",
		"checkpoint", checkpoint, "locations", len(locations), "cap", is.locationCap)

	is.transition(ctx, StatePerLocation)
	scanErr := is.scan(ctx, locations, &summary)

	is.transition(ctx, StateFinalizing)
	// Completed locations are kept even when the run is aborted or cancelled.
	finalCtx := context.WithoutCancel(ctx)
	if scanErr == nil || summary.Checkpoint > summary.StartCheckpoint {
		if err = is.checkpoints.Write(finalCtx, summary.Checkpoint); err != nil {
			err = fmt.Errorf("failed to write checkpoint: %w", err)
			if scanErr == nil {
				scanErr = err
			} else {
				is.log.ErrorContext(ctx, "Could not save progress of the failed run", "error", err)
			}
		} else {
			is.metrics.Checkpoint.Set(float64(summary.Checkpoint))
		}
	}

	if scanErr != nil {
		return is.fail(ctx, summary, scanErr)
	}

	is.notifyOutcome(ctx, alert.RunSuccess, fmt.Sprintf("%d locations processed", summary.Processed))
	is.transition(ctx, StateDone)
	summary.State = StateDone

	is.log.InfoContext(ctx, "Ingestion run finished",
		"processed", summary.Processed,
		"checkpoint", summary.Checkpoint,
		"created", summary.PlacesCreated,
		"merged", summary.PlacesMerged,
		"alerts", summary.AlertsSent,
	)

	return summary, nil
}

// scan processes eligible locations in order until the list or the cap is exhausted.
func (is *IngestionService) scan(ctx context.Context, locations []models.Location, summary *Summary) error {
	for _, location := range locations {
		if location.ID <= summary.StartCheckpoint {
			continue
		}
		if summary.Processed >= is.locationCap {
			is.log.InfoContext(ctx, "Location cap reached, remaining locations left for the next run",
				"cap", is.locationCap, "next", location.ID)
			break
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted before location %d: %w", location.ID, err)
		}

		is.log.DebugContext(ctx, "Processing location", "location", location.ID)

		if err := is.processLocation(ctx, location, summary); err != nil {
			return fmt.Errorf("location %d: %w", location.ID, err)
		}

		summary.Checkpoint = location.ID
		summary.Processed++
		is.metrics.LocationsProcessed.Inc()
	}

	return nil
}

// processLocation gathers the candidates of every category first, then persists them.
func (is *IngestionService) processLocation(ctx context.Context, location models.Location, summary *Summary) error {
	candidates, err := is.gather(ctx, location)
	if err != nil {
		return err
	}

	is.log.DebugContext(ctx, "Candidates gathered", "location", location.ID, "unique", len(candidates))

	for _, candidate := range candidates {
		if err = is.upsert(ctx, location, candidate, summary); err != nil {
			return err
		}
	}

	return nil
}

// gather queries each category and keeps candidates whose serialized content was not seen yet
// in this location, in the order they were returned.
func (is *IngestionService) gather(ctx context.Context, location models.Location) ([]models.PlaceCandidate, error) {
	seen := make(map[string]struct{})
	var unique []models.PlaceCandidate

	for _, category := range is.categories {
		startTime := time.Now()
		found, err := is.directory.SearchNearby(ctx, location, category)
		is.metrics.RequestSeconds.WithLabelValues("search_nearby").Observe(time.Since(startTime).Seconds())
		if err != nil {
			is.metrics.APIErrors.Inc()
			return nil, fmt.Errorf("failed to search %s places: %w", category, err)
		}

		for _, candidate := range found {
			key := candidate.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			unique = append(unique, candidate)
		}
	}

	return unique, nil
}

// upsert merges the categories of a known place, or creates a new record and alerts
// when the new place has no website.
func (is *IngestionService) upsert(
	ctx context.Context,
	location models.Location,
	candidate models.PlaceCandidate,
	summary *Summary,
) error {
	existing, err := is.places.FindByID(ctx, candidate.ID)
	if err != nil {
		return err
	}

	if existing != nil {
		if !models.CategoriesGrow(existing.Categories, candidate.Categories) {
			is.metrics.PlacesUpserted.WithLabelValues(metrics.OutcomeUnchanged).Inc()
			return nil
		}

		merged, errMerge := is.places.MergeCategories(ctx, candidate.ID, candidate.Categories)
		if errMerge != nil {
			return errMerge
		}
		if merged {
			summary.PlacesMerged++
			is.metrics.PlacesUpserted.WithLabelValues(metrics.OutcomeMerged).Inc()
			is.log.DebugContext(ctx, "Place categories merged", "place", candidate.ID)
		} else {
			is.metrics.PlacesUpserted.WithLabelValues(metrics.OutcomeUnchanged).Inc()
		}

		return nil
	}

	startTime := time.Now()
	details, err := is.directory.Details(ctx, candidate.ID)
	is.metrics.RequestSeconds.WithLabelValues("details").Observe(time.Since(startTime).Seconds())
	if err != nil {
		is.metrics.APIErrors.Inc()
		return fmt.Errorf("failed to fetch details of place %s: %w", candidate.ID, err)
	}

	if _, err = is.places.Create(ctx, models.NewPlaceRecord(candidate, details, location.ID)); err != nil {
		return err
	}
	summary.PlacesCreated++
	is.metrics.PlacesUpserted.WithLabelValues(metrics.OutcomeCreated).Inc()

	if details.HasWebsite() {
		return nil
	}

	is.log.InfoContext(ctx, "New place without website", "place", candidate.ID, "name", candidate.Name)
	if err = is.alerts.NotifyMissingWebsite(ctx, candidate.Name, candidate.Categories, details.Phone,
		candidate.MapLink); err != nil {
		// A missed alert is not data loss: the record is persisted.
		is.log.WarnContext(ctx, "Missing website alert was not delivered", "place", candidate.ID, "error", err)
		is.metrics.Alerts.WithLabelValues("missing_website", "failure").Inc()
		return nil
	}
	summary.AlertsSent++
	is.metrics.Alerts.WithLabelValues("missing_website", "success").Inc()

	return nil
}

func (is *IngestionService) fail(ctx context.Context, summary Summary, err error) (Summary, error) {
	is.transition(ctx, StateFailed)
	summary.State = StateFailed

	is.log.ErrorContext(ctx, "Ingestion run failed",
		"error", err, "processed", summary.Processed, "checkpoint", summary.Checkpoint)
	is.notifyOutcome(ctx, alert.RunFailure, err.Error())

	return summary, err
}

func (is *IngestionService) notifyOutcome(ctx context.Context, status alert.RunStatus, text string) {
	if err := is.alerts.NotifyRunOutcome(context.WithoutCancel(ctx), status, text); err != nil {
		is.log.WarnContext(ctx, "Run outcome alert was not delivered", "error", err)
		is.metrics.Alerts.WithLabelValues("run_outcome", "failure").Inc()
		return
	}
	is.metrics.Alerts.WithLabelValues("run_outcome", "success").Inc()
}

func (is *IngestionService) transition(ctx context.Context, next State) {
	is.log.DebugContext(ctx, "Ingestion state changed", "from", is.state, "to", next)
	is.state = next
}

// checkOrder rejects sources whose pending locations are not strictly increasing.
func checkOrder(locations []models.Location, checkpoint int64) error {
	previous := checkpoint
	for _, location := range locations {
		if location.ID <= checkpoint {
			continue
		}
		if location.ID <= previous {
			return fmt.Errorf("%w: %d follows %d", ErrUnorderedLocations, location.ID, previous)
		}
		previous = location.ID
	}

	return nil
}

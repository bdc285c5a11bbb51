package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrStoreUnavailable wraps every failure of the persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicateKey is returned when a place identifier is inserted twice.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Database is the subset of pgxpool.Pool used by the repositories.
// pgxmock.PgxPoolIface satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlaceStore persists place records keyed by their external identifier.
type PlaceStore interface {
	FindByID(ctx context.Context, placeID string) (*models.PlaceRecord, error)
	Create(ctx context.Context, record models.PlaceRecord) (models.PlaceRecord, error)
	MergeCategories(ctx context.Context, placeID string, categories []string) (bool, error)
}

// CheckpointStore persists the identifier of the last fully processed location.
type CheckpointStore interface {
	Read(ctx context.Context) (int64, error)
	Write(ctx context.Context, value int64) error
}

// LocationSource provides the ordered list of locations to scan.
type LocationSource interface {
	Locations(ctx context.Context) ([]models.Location, error)
}

// PlaceRepository is the Postgres implementation of PlaceStore.
type PlaceRepository struct {
	db  Database
	log *slog.Logger
}

// NewPlaceRepository creates a new instance of PlaceRepository with the provided Database.
func NewPlaceRepository(db Database, log *slog.Logger) *PlaceRepository {
	return &PlaceRepository{db: db, log: log}
}

// CheckpointRepository is the Postgres implementation of CheckpointStore.
type CheckpointRepository struct {
	db  Database
	log *slog.Logger
}

// NewCheckpointRepository creates a new instance of CheckpointRepository with the provided Database.
func NewCheckpointRepository(db Database, log *slog.Logger) *CheckpointRepository {
	return &CheckpointRepository{db: db, log: log}
}

// LocationRepository reads locations from the locations table.
type LocationRepository struct {
	db  Database
	log *slog.Logger
}

// NewLocationRepository creates a new instance of LocationRepository with the provided Database.
func NewLocationRepository(db Database, log *slog.Logger) *LocationRepository {
	return &LocationRepository{db: db, log: log}
}

var (
	_ PlaceStore      = (*PlaceRepository)(nil)
	_ CheckpointStore = (*CheckpointRepository)(nil)
	_ LocationSource  = (*LocationRepository)(nil)
)

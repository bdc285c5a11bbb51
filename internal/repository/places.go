package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// FindByID returns the place record stored under placeID, or nil when it does not exist.
func (r *PlaceRepository) FindByID(ctx context.Context, placeID string) (*models.PlaceRecord, error) {
	query := `
		SELECT place_id, map_link, types, phone, website, location_id
		FROM places
		WHERE place_id = $1;
	`

	var record models.PlaceRecord
	err := r.db.QueryRow(ctx, query, placeID).Scan(
		&record.PlaceID,
		&record.MapLink,
		&record.Categories,
		&record.Phone,
		&record.Website,
		&record.LocationID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find place %s: %w", ErrStoreUnavailable, placeID, err)
	}

	return &record, nil
}

// Create inserts a new place record. It returns ErrDuplicateKey when the identifier
// already exists; callers are expected to check FindByID first.
func (r *PlaceRepository) Create(ctx context.Context, record models.PlaceRecord) (models.PlaceRecord, error) {
	query := `
		INSERT INTO places (place_id, map_link, types, phone, website, location_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := r.db.Exec(ctx, query,
		record.PlaceID, record.MapLink, record.Categories, record.Phone, record.Website, record.LocationID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.PlaceRecord{}, fmt.Errorf("%w: place %s: %w", ErrDuplicateKey, record.PlaceID, err)
		}
		return models.PlaceRecord{}, fmt.Errorf("%w: failed to create place %s: %w",
			ErrStoreUnavailable, record.PlaceID, err)
	}

	r.log.DebugContext(ctx, "A new place has been stored.", "place", record.PlaceID, "location", record.LocationID)

	return record, nil
}

// MergeCategories replaces the stored category set with its union with categories.
// The row is only written when the union is strictly larger; a missing place is a no-op.
// It reports whether a write happened.
func (r *PlaceRepository) MergeCategories(ctx context.Context, placeID string, categories []string) (bool, error) {
	query := `
		UPDATE places
		SET
			types = ARRAY(SELECT DISTINCT t FROM unnest(types || $2::text[]) AS t ORDER BY t),
			updated_at = now()
		WHERE
			place_id = $1
			AND NOT (types @> $2::text[]);
	`

	tag, err := r.db.Exec(ctx, query, placeID, categories)
	if err != nil {
		return false, fmt.Errorf("%w: failed to merge categories of place %s: %w", ErrStoreUnavailable, placeID, err)
	}

	return tag.RowsAffected() > 0, nil
}

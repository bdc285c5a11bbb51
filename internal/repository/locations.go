package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/prospector/internal/models"
)

// Locations retrieves every location ordered by identifier.
func (r *LocationRepository) Locations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	query := `
		SELECT id, latitude, longitude
		FROM locations
		ORDER BY id ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query locations: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var location models.Location
		if errScan := rows.Scan(&location.ID, &location.Latitude, &location.Longitude); errScan != nil {
			return nil, fmt.Errorf("%w: failed to scan location: %w", ErrStoreUnavailable, errScan)
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read row: %w", ErrStoreUnavailable, err)
	}

	r.log.DebugContext(ctx, "Locations have been loaded.", "count", len(locations))

	return locations, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Read returns the last fully processed location identifier, or 0 when none was written yet.
func (r *CheckpointRepository) Read(ctx context.Context) (int64, error) {
	query := `
		SELECT last_location_id
		FROM ingestion_checkpoint
		WHERE id = 1;
	`

	var value int64
	err := r.db.QueryRow(ctx, query).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read checkpoint: %w", ErrStoreUnavailable, err)
	}

	return value, nil
}

// Write replaces the stored checkpoint unconditionally.
func (r *CheckpointRepository) Write(ctx context.Context, value int64) error {
	query := `
		INSERT INTO ingestion_checkpoint (id, last_location_id, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET
			last_location_id = EXCLUDED.last_location_id,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := r.db.Exec(ctx, query, value); err != nil {
		return fmt.Errorf("%w: failed to write checkpoint: %w", ErrStoreUnavailable, err)
	}

	r.log.DebugContext(ctx, "Checkpoint has been written.", "value", value)

	return nil
}

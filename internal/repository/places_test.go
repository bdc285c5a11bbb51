package repository_test

import (
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/UnknownOlympus/prospector/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	findPlaceQuery = `
		SELECT place_id, map_link, types, phone, website, location_id
		FROM places
		WHERE place_id = $1;
	`
	createPlaceQuery = `
		INSERT INTO places (place_id, map_link, types, phone, website, location_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	mergeCategoriesQuery = `
		UPDATE places
		SET
			types = ARRAY(SELECT DISTINCT t FROM unnest(types || $2::text[]) AS t ORDER BY t),
			updated_at = now()
		WHERE
			place_id = $1
			AND NOT (types @> $2::text[]);
	`
)

func ptr(s string) *string {
	return &s
}

var placeColumns = []string{"place_id", "map_link", "types", "phone", "website", "location_id"}

func TestFindByID(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := context.Background()

	t.Run("error - query place", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findPlaceQuery)).
			WithArgs("p1").
			WillReturnError(assert.AnError)

		record, err := repo.FindByID(ctx, "p1")

		require.Nil(t, record)
		require.ErrorIs(t, err, repository.ErrStoreUnavailable)
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - place not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findPlaceQuery)).
			WithArgs("p1").
			WillReturnError(pgx.ErrNoRows)

		record, err := repo.FindByID(ctx, "p1")

		require.NoError(t, err)
		require.Nil(t, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - place found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(findPlaceQuery)).
			WithArgs("p1").
			WillReturnRows(pgxmock.NewRows(placeColumns).AddRow(
				"p1", "https://maps.google.com/?cid=1", []string{"store"}, ptr("01 02"), (*string)(nil), int64(7),
			))

		record, err := repo.FindByID(ctx, "p1")

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "p1", record.PlaceID)
		assert.Equal(t, []string{"store"}, record.Categories)
		assert.Equal(t, "01 02", *record.Phone)
		assert.Nil(t, record.Website)
		assert.Equal(t, int64(7), record.LocationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreate(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := context.Background()
	record := models.PlaceRecord{
		PlaceID:    "p1",
		MapLink:    "https://maps.google.com/?cid=1",
		Categories: []string{"bar", "store"},
		Phone:      ptr("01 02"),
		LocationID: 7,
	}

	t.Run("error - duplicate key", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(createPlaceQuery)).
			WithArgs(record.PlaceID, record.MapLink, record.Categories, record.Phone, record.Website, record.LocationID).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err = repo.Create(ctx, record)

		require.ErrorIs(t, err, repository.ErrDuplicateKey)
		require.NotErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert place", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(createPlaceQuery)).
			WithArgs(record.PlaceID, record.MapLink, record.Categories, record.Phone, record.Website, record.LocationID).
			WillReturnError(assert.AnError)

		_, err = repo.Create(ctx, record)

		require.ErrorIs(t, err, repository.ErrStoreUnavailable)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to create place p1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - insert place", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(createPlaceQuery)).
			WithArgs(record.PlaceID, record.MapLink, record.Categories, record.Phone, record.Website, record.LocationID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		created, err := repo.Create(ctx, record)

		require.NoError(t, err)
		assert.Equal(t, record, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMergeCategories(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := context.Background()
	categories := []string{"restaurant", "store"}

	t.Run("error - update categories", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(mergeCategoriesQuery)).
			WithArgs("p1", categories).
			WillReturnError(assert.AnError)

		merged, err := repo.MergeCategories(ctx, "p1", categories)

		require.False(t, merged)
		require.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - union grows", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(mergeCategoriesQuery)).
			WithArgs("p1", categories).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		merged, err := repo.MergeCategories(ctx, "p1", categories)

		require.NoError(t, err)
		assert.True(t, merged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - nothing new or place missing", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewPlaceRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(mergeCategoriesQuery)).
			WithArgs("p1", categories).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		merged, err := repo.MergeCategories(ctx, "p1", categories)

		require.NoError(t, err)
		assert.False(t, merged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

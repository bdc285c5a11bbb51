package locations_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/prospector/internal/locations"
	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Locations(t *testing.T) {
	defer filet.CleanUp(t)
	ctx := context.Background()
	logger := slog.Default()

	t.Run("keeps file order", func(t *testing.T) {
		file := filet.TmpFile(t, "", `
locations:
  - id: 3
    latitude: 43.2965
    longitude: 5.3698
  - id: 1
    latitude: 48.8566
    longitude: 2.3522
`)

		loaded, err := locations.NewFileSource(file.Name(), logger).Locations(ctx)

		require.NoError(t, err)
		assert.Equal(t, []models.Location{
			{ID: 3, Latitude: 43.2965, Longitude: 5.3698},
			{ID: 1, Latitude: 48.8566, Longitude: 2.3522},
		}, loaded)
	})

	t.Run("empty file", func(t *testing.T) {
		file := filet.TmpFile(t, "", "")

		loaded, err := locations.NewFileSource(file.Name(), logger).Locations(ctx)

		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("duplicate id", func(t *testing.T) {
		file := filet.TmpFile(t, "", `
locations:
  - {id: 1, latitude: 1, longitude: 1}
  - {id: 1, latitude: 2, longitude: 2}
`)

		_, err := locations.NewFileSource(file.Name(), logger).Locations(ctx)

		require.ErrorContains(t, err, "duplicate location id 1")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		file := filet.TmpFile(t, "", "locations: [")

		_, err := locations.NewFileSource(file.Name(), logger).Locations(ctx)

		require.ErrorContains(t, err, "failed to decode locations file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := locations.NewFileSource("/nonexistent/locations.yaml", logger).Locations(ctx)

		require.ErrorContains(t, err, "failed to read locations file")
	})
}

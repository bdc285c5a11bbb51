package locations

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/UnknownOlympus/prospector/internal/repository"
	"gopkg.in/yaml.v3"
)

// FileSource reads locations from a static YAML file:
//
//	locations:
//	  - id: 1
//	    latitude: 48.8566
//	    longitude: 2.3522
//
// The order of the file is kept as is.
type FileSource struct {
	path string
	log  *slog.Logger
}

var _ repository.LocationSource = (*FileSource)(nil)

type locationFile struct {
	Locations []models.Location `yaml:"locations"`
}

// NewFileSource creates a location source backed by the YAML file at path.
func NewFileSource(path string, log *slog.Logger) *FileSource {
	return &FileSource{path: path, log: log}
}

// Locations loads every location declared in the file.
func (fs *FileSource) Locations(ctx context.Context) ([]models.Location, error) {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}

	var file locationFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode locations file: %w", err)
	}

	seen := make(map[int64]struct{}, len(file.Locations))
	for _, location := range file.Locations {
		if _, ok := seen[location.ID]; ok {
			return nil, fmt.Errorf("duplicate location id %d in %s", location.ID, fs.path)
		}
		seen[location.ID] = struct{}{}
	}

	fs.log.DebugContext(ctx, "Locations have been loaded from file.", "path", fs.path, "count", len(file.Locations))

	return file.Locations, nil
}

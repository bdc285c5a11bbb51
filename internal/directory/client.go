package directory

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/prospector/internal/models"
)

const (
	// SearchRadiusMeters is the radius of the circle searched around each location.
	SearchRadiusMeters = 2000
	// MaxResults caps the number of places returned by one nearby search.
	MaxResults = 20
)

var (
	// ErrDirectoryUnavailable wraps every transport failure or non-success answer of the directory.
	ErrDirectoryUnavailable = errors.New("places directory unavailable")
	// ErrEmptyPlaceID is returned when details are requested without an identifier.
	ErrEmptyPlaceID = errors.New("empty place identifier")
)

// Client is an interface that defines the two queries made against the places directory.
// SearchNearby returns the places of one category around a location, ranked by distance.
// Details returns the phone number and website of a single place.
type Client interface {
	SearchNearby(ctx context.Context, location models.Location, category string) ([]models.PlaceCandidate, error)
	Details(ctx context.Context, placeID string) (models.PlaceDetails, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

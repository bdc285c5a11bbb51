package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/prospector/internal/models"
	"googlemaps.github.io/maps"
)

// legacyMapLinkPrefix builds a map link for legacy search results, which carry no URI.
const legacyMapLinkPrefix = "https://www.google.com/maps/place/?q=place_id:"

// GoogleProvider is a struct that holds the client for the legacy Google Places web service
// and a logger for logging purposes.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// SearchNearby queries the legacy nearby search for one place type around the location.
// The legacy service cannot combine a radius with distance ranking, so results come back
// in prominence order, truncated to MaxResults.
func (gp *GoogleProvider) SearchNearby(
	ctx context.Context,
	location models.Location,
	category string,
) ([]models.PlaceCandidate, error) {
	gp.log.DebugContext(ctx, "Searching nearby places using Google Maps",
		"location", location.ID, "category", category)

	req := maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: location.Latitude, Lng: location.Longitude},
		Radius:   SearchRadiusMeters,
		Type:     maps.PlaceType(category),
	}
	resp, err := gp.client.NearbySearch(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search nearby places: %w", ErrDirectoryUnavailable, err)
	}

	results := resp.Results
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	candidates := make([]models.PlaceCandidate, 0, len(results))
	for _, result := range results {
		candidates = append(candidates, models.PlaceCandidate{
			ID:         result.PlaceID,
			Categories: result.Types,
			MapLink:    legacyMapLinkPrefix + result.PlaceID,
			Name:       result.Name,
		})
	}

	return candidates, nil
}

// Details fetches the formatted phone number and website of one place.
func (gp *GoogleProvider) Details(ctx context.Context, placeID string) (models.PlaceDetails, error) {
	if placeID == "" {
		return models.PlaceDetails{}, ErrEmptyPlaceID
	}

	gp.log.DebugContext(ctx, "Fetching place details using Google Maps", "place", placeID)

	req := maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskFormattedPhoneNumber,
			maps.PlaceDetailsFieldMaskWebsite,
		},
	}
	result, err := gp.client.PlaceDetails(ctx, &req)
	if err != nil {
		return models.PlaceDetails{}, fmt.Errorf("%w: failed to fetch place details: %w", ErrDirectoryUnavailable, err)
	}

	var details models.PlaceDetails
	if result.FormattedPhoneNumber != "" {
		details.Phone = &result.FormattedPhoneNumber
	}
	if result.Website != "" {
		details.Website = &result.Website
	}

	return details, nil
}

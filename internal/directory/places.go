package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/prospector/internal/models"
	"golang.org/x/time/rate"
)

// PlacesBaseURL -- Google Places API (New) base URL.
const PlacesBaseURL = "https://places.googleapis.com/v1"

const (
	searchFieldMask  = "places.id,places.googleMapsUri,places.types,places.displayName"
	detailsFieldMask = "nationalPhoneNumber,websiteUri"
	rankByDistance   = "DISTANCE"
)

// PlacesProvider implements Client using the Google Places API (New).
type PlacesProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Places API
	apiKey  string        // API key with Places access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

type searchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	RankPreference      string   `json:"rankPreference"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchNearbyResponse struct {
	Places []struct {
		ID            string   `json:"id"`
		Types         []string `json:"types"`
		GoogleMapsURI string   `json:"googleMapsUri"`
		DisplayName   struct {
			Text string `json:"text"`
		} `json:"displayName"`
	} `json:"places"`
}

type placeDetailsResponse struct {
	NationalPhoneNumber string `json:"nationalPhoneNumber"`
	WebsiteURI          string `json:"websiteUri"`
}

// NewPlacesProvider creates a new Places API provider.
func NewPlacesProvider(apiKey string, rateLimit int, log *slog.Logger) *PlacesProvider {
	const timeout = 10

	return &PlacesProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: PlacesBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewPlacesProviderWithClient allows injecting custom HTTP client.
func NewPlacesProviderWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *PlacesProvider {
	return &PlacesProvider{
		client:  client,
		baseURL: PlacesBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// SearchNearby returns up to MaxResults places of the given category within SearchRadiusMeters
// of the location, closest first.
func (pp *PlacesProvider) SearchNearby(
	ctx context.Context,
	location models.Location,
	category string,
) ([]models.PlaceCandidate, error) {
	pp.log.DebugContext(ctx, "Searching nearby places", "location", location.ID, "category", category)

	var payload searchNearbyRequest
	payload.IncludedTypes = []string{category}
	payload.MaxResultCount = MaxResults
	payload.RankPreference = rankByDistance
	payload.LocationRestriction.Circle.Center.Latitude = location.Latitude
	payload.LocationRestriction.Circle.Center.Longitude = location.Longitude
	payload.LocationRestriction.Circle.Radius = SearchRadiusMeters

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nearby search request: %w", err)
	}

	var result searchNearbyResponse
	if err = pp.do(ctx, http.MethodPost, pp.baseURL+"/places:searchNearby", searchFieldMask, body, &result); err != nil {
		return nil, err
	}

	candidates := make([]models.PlaceCandidate, 0, len(result.Places))
	for _, place := range result.Places {
		candidates = append(candidates, models.PlaceCandidate{
			ID:         place.ID,
			Categories: place.Types,
			MapLink:    place.GoogleMapsURI,
			Name:       place.DisplayName.Text,
		})
	}

	pp.log.DebugContext(ctx, "Nearby search finished",
		"location", location.ID, "category", category, "results", len(candidates))

	return candidates, nil
}

// Details fetches the phone number and website of one place.
func (pp *PlacesProvider) Details(ctx context.Context, placeID string) (models.PlaceDetails, error) {
	if placeID == "" {
		return models.PlaceDetails{}, ErrEmptyPlaceID
	}

	pp.log.DebugContext(ctx, "Fetching place details", "place", placeID)

	var result placeDetailsResponse
	endpoint := pp.baseURL + "/places/" + url.PathEscape(placeID)
	if err := pp.do(ctx, http.MethodGet, endpoint, detailsFieldMask, nil, &result); err != nil {
		return models.PlaceDetails{}, err
	}

	var details models.PlaceDetails
	if result.NationalPhoneNumber != "" {
		details.Phone = &result.NationalPhoneNumber
	}
	if result.WebsiteURI != "" {
		details.Website = &result.WebsiteURI
	}

	return details, nil
}

// do executes one rate-limited request and decodes the JSON answer into out.
// Every failure is reported as ErrDirectoryUnavailable.
func (pp *PlacesProvider) do(
	ctx context.Context,
	method, endpoint, fieldMask string,
	payload []byte,
	out any,
) error {
	// Rate limit
	if err := pp.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit exceeded: %w", ErrDirectoryUnavailable, err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Goog-Api-Key", pp.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := pp.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrDirectoryUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		pp.log.ErrorContext(ctx, "Places API error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: places API returned status %d: %s", ErrDirectoryUnavailable, resp.StatusCode, string(body))
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode places response: %w", ErrDirectoryUnavailable, err)
	}

	return nil
}

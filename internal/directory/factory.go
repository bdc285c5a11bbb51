package directory

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of places directory provider.
type ProviderType string

const (
	// ProviderTypePlaces represents the Google Places API (New).
	ProviderTypePlaces ProviderType = "places"
	// ProviderTypeLegacy represents the legacy Google Places web service.
	ProviderTypeLegacy ProviderType = "legacy"
)

const defaultRateLimit = 5

// ProviderConfig holds configuration for creating a directory provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key, required by every provider
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a directory client based on the provided configuration.
//
// Supported provider types:
// - "places": Google Places API (New), distance-ranked nearby search
// - "legacy": legacy Places web service through the googlemaps client
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Client, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for the places directory")
	}

	switch config.Type {
	case ProviderTypePlaces:
		return newPlacesProvider(config), nil
	case ProviderTypeLegacy:
		return newLegacyProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newPlacesProvider creates a Places API (New) provider.
func newPlacesProvider(config ProviderConfig) Client {
	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
		config.Logger.Warn("Rate limit for Places API not set, set a default value", "value", config.RateLimit)
	}

	return NewPlacesProvider(config.APIKey, config.RateLimit, config.Logger)
}

// newLegacyProvider creates a legacy Google Maps provider.
func newLegacyProvider(config ProviderConfig) (Client, error) {
	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	// Apply rate limiting if specified
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

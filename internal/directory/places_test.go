package directory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/prospector/internal/directory"
	"github.com/UnknownOlympus/prospector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestPlacesProvider_SearchNearby(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)
	location := models.Location{ID: 6, Latitude: 48.8566, Longitude: 2.3522}

	t.Run("successfull search", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, directory.PlacesBaseURL+"/places:searchNearby", req.URL.String())
				assert.Equal(t, apiKey, req.Header.Get("X-Goog-Api-Key"))
				assert.Equal(t, "places.id,places.googleMapsUri,places.types,places.displayName",
					req.Header.Get("X-Goog-FieldMask"))

				var payload map[string]any
				require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
				assert.Equal(t, []any{"restaurant"}, payload["includedTypes"])
				assert.InDelta(t, 20, payload["maxResultCount"], 0)
				assert.Equal(t, "DISTANCE", payload["rankPreference"])
				circle := payload["locationRestriction"].(map[string]any)["circle"].(map[string]any)
				assert.InDelta(t, 2000, circle["radius"], 0)
				center := circle["center"].(map[string]any)
				assert.InEpsilon(t, 48.8566, center["latitude"], 0.0001)
				assert.InEpsilon(t, 2.3522, center["longitude"], 0.0001)

				return jsonResponse(http.StatusOK, `{"places":[{
					"id":"ChIJ1",
					"types":["restaurant","food"],
					"googleMapsUri":"https://maps.google.com/?cid=1",
					"displayName":{"text":"Chez Paul","languageCode":"fr"}
				}]}`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		places, err := provider.SearchNearby(ctx, location, "restaurant")

		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, models.PlaceCandidate{
			ID:         "ChIJ1",
			Categories: []string{"restaurant", "food"},
			MapLink:    "https://maps.google.com/?cid=1",
			Name:       "Chez Paul",
		}, places[0])
	})

	t.Run("empty response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{}`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		places, err := provider.SearchNearby(ctx, location, "bar")

		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("non success status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusForbidden, `{"error":{"status":"PERMISSION_DENIED"}}`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		places, err := provider.SearchNearby(ctx, location, "bar")

		require.Error(t, err)
		assert.Nil(t, places)
		require.ErrorIs(t, err, directory.ErrDirectoryUnavailable)
		assert.ErrorContains(t, err, "status 403")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.SearchNearby(ctx, location, "bar")

		require.ErrorIs(t, err, directory.ErrDirectoryUnavailable)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"places":`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.SearchNearby(ctx, location, "bar")

		require.ErrorIs(t, err, directory.ErrDirectoryUnavailable)
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel() // cancel immediately
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, limiter, logger)
		_, err := provider.SearchNearby(rateCtx, location, "bar")

		require.Error(t, err)
		assert.ErrorContains(t, err, "rate limit exceeded")
		assert.ErrorIs(t, err, directory.ErrDirectoryUnavailable)
	})
}

func TestPlacesProvider_Details(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("phone and website", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, directory.PlacesBaseURL+"/places/ChIJ1", req.URL.String())
				assert.Equal(t, "nationalPhoneNumber,websiteUri", req.Header.Get("X-Goog-FieldMask"))

				return jsonResponse(http.StatusOK,
					`{"nationalPhoneNumber":"01 23 45 67 89","websiteUri":"https://chezpaul.fr"}`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		details, err := provider.Details(ctx, "ChIJ1")

		require.NoError(t, err)
		require.NotNil(t, details.Phone)
		require.NotNil(t, details.Website)
		assert.Equal(t, "01 23 45 67 89", *details.Phone)
		assert.Equal(t, "https://chezpaul.fr", *details.Website)
		assert.True(t, details.HasWebsite())
	})

	t.Run("no website", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{}`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		details, err := provider.Details(ctx, "ChIJ2")

		require.NoError(t, err)
		assert.Nil(t, details.Phone)
		assert.False(t, details.HasWebsite())
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `boom`), nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Details(ctx, "ChIJ2")

		require.True(t, errors.Is(err, directory.ErrDirectoryUnavailable))
	})

	t.Run("empty place id", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called without a place id")
				return &http.Response{}, nil
			},
		}

		provider := directory.NewPlacesProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Details(ctx, "")

		require.ErrorIs(t, err, directory.ErrEmptyPlaceID)
	})
}

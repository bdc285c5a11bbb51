package alert_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/prospector/internal/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestWebhook_Deliver(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	url := "https://discord.com/api/webhooks/1/token"
	message := alert.Message{Embeds: []alert.Embed{{Title: "Chez Paul", Description: "store, bar"}}}

	t.Run("successfull delivery", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, url, req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				var got alert.Message
				require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
				assert.Equal(t, message, got)

				return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, nil
			},
		}

		err := alert.NewWebhookWithClient(mockClient, url, logger).Deliver(ctx, message)

		require.NoError(t, err)
	})

	t.Run("rate limited", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`{"retry_after":1.5}`)),
				}, nil
			},
		}

		err := alert.NewWebhookWithClient(mockClient, url, logger).Deliver(ctx, message)

		require.ErrorIs(t, err, alert.ErrDeliveryFailure)
		assert.ErrorContains(t, err, "status 429")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		err := alert.NewWebhookWithClient(mockClient, url, logger).Deliver(ctx, message)

		require.ErrorIs(t, err, alert.ErrDeliveryFailure)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("no url configured", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called without a webhook URL")
				return nil, nil
			},
		}

		err := alert.NewWebhookWithClient(mockClient, "", logger).Deliver(ctx, message)

		require.NoError(t, err)
	})
}

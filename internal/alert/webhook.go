package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrDeliveryFailure wraps every failure to hand a message to the webhook.
var ErrDeliveryFailure = errors.New("alert delivery failed")

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Message is the webhook payload. Its shape follows Discord's execute-webhook body.
type Message struct {
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds"`
}

// Embed is one rich block of a Message.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Field is a labeled value inside an Embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Deliverer sends one message and reports whether it was accepted.
type Deliverer interface {
	Deliver(ctx context.Context, message Message) error
}

// Webhook delivers messages to an HTTP webhook endpoint.
type Webhook struct {
	client HTTPClient
	url    string
	log    *slog.Logger
}

// NewWebhook creates a webhook deliverer with a default HTTP client.
func NewWebhook(url string, log *slog.Logger) *Webhook {
	const timeout = 10

	return NewWebhookWithClient(&http.Client{Timeout: timeout * time.Second}, url, log)
}

// NewWebhookWithClient allows injecting custom HTTP client.
func NewWebhookWithClient(client HTTPClient, url string, log *slog.Logger) *Webhook {
	return &Webhook{client: client, url: url, log: log}
}

// Deliver posts the message as JSON. Any non-2xx answer is a delivery failure.
// Without a configured URL the message is only logged.
func (w *Webhook) Deliver(ctx context.Context, message Message) error {
	if w.url == "" {
		w.log.DebugContext(ctx, "Webhook URL not set, alert dropped", "embeds", len(message.Embeds))
		return nil
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %w", ErrDeliveryFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrDeliveryFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: webhook returned status %d: %s", ErrDeliveryFailure, resp.StatusCode, string(respBody))
	}

	return nil
}

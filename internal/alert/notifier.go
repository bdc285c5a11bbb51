package alert

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultPause is observed after every send to stay under the webhook rate limit.
const DefaultPause = 2 * time.Second

const (
	phoneLabel       = "Téléphone"
	mapLinkLabel     = "Google Maps"
	phoneUnavailable = "Non disponible"

	colorSuccess = 0x2ECC71
	colorFailure = 0xE74C3C
)

// RunStatus is the outcome of one ingestion run.
type RunStatus int

const (
	RunSuccess RunStatus = iota
	RunFailure
)

// Label returns the human label shown in the run outcome alert.
func (s RunStatus) Label() string {
	if s == RunSuccess {
		return "Succès"
	}
	return "Échec"
}

// Color returns the indicator color of the run outcome alert.
func (s RunStatus) Color() int {
	if s == RunSuccess {
		return colorSuccess
	}
	return colorFailure
}

// Sink is the notification surface used by the ingestion pipeline.
type Sink interface {
	NotifyMissingWebsite(ctx context.Context, name string, categories []string, phone *string, mapLink string) error
	NotifyRunOutcome(ctx context.Context, status RunStatus, summary string) error
}

// Notifier formats alerts and hands them to a Deliverer, one at a time.
type Notifier struct {
	deliverer Deliverer
	pause     time.Duration
	log       *slog.Logger
}

var _ Sink = (*Notifier)(nil)

// NewNotifier creates a Notifier that waits pause after every send.
func NewNotifier(deliverer Deliverer, pause time.Duration, log *slog.Logger) *Notifier {
	return &Notifier{deliverer: deliverer, pause: pause, log: log}
}

// NotifyMissingWebsite announces a newly discovered place that has no website.
// The delivery error is returned unlogged; the caller decides whether it matters.
func (n *Notifier) NotifyMissingWebsite(
	ctx context.Context,
	name string,
	categories []string,
	phone *string,
	mapLink string,
) error {
	phoneValue := phoneUnavailable
	if phone != nil && *phone != "" {
		phoneValue = *phone
	}

	return n.send(ctx, Message{Embeds: []Embed{{
		Title:       name,
		Description: strings.Join(categories, ", "),
		Fields: []Field{
			{Name: phoneLabel, Value: phoneValue},
			{Name: mapLinkLabel, Value: mapLink},
		},
	}}})
}

// NotifyRunOutcome reports the final status of a run.
func (n *Notifier) NotifyRunOutcome(ctx context.Context, status RunStatus, summary string) error {
	return n.send(ctx, Message{Embeds: []Embed{{
		Title:       status.Label(),
		Description: summary,
		Color:       status.Color(),
	}}})
}

func (n *Notifier) send(ctx context.Context, message Message) error {
	err := n.deliverer.Deliver(ctx, message)
	if err == nil {
		n.log.DebugContext(ctx, "Alert delivered", "embeds", len(message.Embeds))
	}

	n.wait(ctx)

	return err
}

func (n *Notifier) wait(ctx context.Context) {
	if n.pause <= 0 {
		return
	}

	timer := time.NewTimer(n.pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

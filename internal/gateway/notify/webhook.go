package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/types"
)

// WebhookNotifier POSTs the listing digest as JSON to a configured
// endpoint (chat webhook, mail relay, push service).
type WebhookNotifier struct {
	url        string
	recipient  string
	httpClient *http.Client
}

var _ gateway.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(url, recipient string, timeout time.Duration) (*WebhookNotifier, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &WebhookNotifier{
		url:        url,
		recipient:  recipient,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// payload is the webhook body.
type payload struct {
	Recipient string          `json:"recipient,omitempty"`
	Listings  []types.Listing `json:"listings"`
	SentAt    time.Time       `json:"sent_at"`
}

// Notify delivers the listings and returns the confirmation. Delivery
// may repeat if the caller re-runs the pipeline; the endpoint is
// expected to tolerate duplicates.
func (n *WebhookNotifier) Notify(ctx context.Context, listings []types.Listing) (*types.Confirmation, error) {
	sentAt := time.Now().UTC()
	body, err := json.Marshal(payload{
		Recipient: n.recipient,
		Listings:  listings,
		SentAt:    sentAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notification delivery failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("notification endpoint returned %d: %s", res.StatusCode, string(b))
	}

	return &types.Confirmation{
		Channel:   "webhook",
		Recipient: n.recipient,
		Count:     len(listings),
		SentAt:    sentAt,
	}, nil
}

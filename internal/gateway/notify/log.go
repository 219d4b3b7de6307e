// Package notify provides notification backends for delivering the
// final ranked listings to the user.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/types"
)

// LogNotifier writes the listing digest to the process log. Used in
// development and as the default delivery channel.
type LogNotifier struct {
	logger *log.Logger
}

var _ gateway.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a log-based notifier. A nil logger uses the
// standard logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs each listing and returns a delivery confirmation.
func (n *LogNotifier) Notify(_ context.Context, listings []types.Listing) (*types.Confirmation, error) {
	n.logger.Printf("[NOTIFY] %d listing(s):", len(listings))
	for i, l := range listings {
		n.logger.Printf("[NOTIFY] %d. %s, %s (score %.1f) %s", i+1, l.Title, l.Location, l.Score, l.Link)
	}
	return &types.Confirmation{
		Channel: "log",
		Count:   len(listings),
		SentAt:  time.Now().UTC(),
	}, nil
}

package stages

import (
	"context"
	"errors"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/pipeline"
	"github.com/martin/listing-hunter/internal/state"
)

var errNoConfirmation = errors.New("notifier returned no confirmation")

// Notify delivers the top-K scored listings through the notification
// gateway and writes the delivery confirmation. This is the only stage
// with an outward side effect; re-running the pipeline may resend,
// which is accepted.
type Notify struct {
	Gateway gateway.Notifier
}

// NewNotify creates the notify stage over a notification backend.
func NewNotify(gw gateway.Notifier) *Notify {
	return &Notify{Gateway: gw}
}

func (n *Notify) Name() string      { return "notify" }
func (n *Notify) Inputs() []string  { return []string{KeyScoredListings} }
func (n *Notify) Outputs() []string { return []string{KeyNotification} }

func (n *Notify) Execute(ctx context.Context, store *state.Store) error {
	listings, err := listingsFrom(store, KeyScoredListings)
	if err != nil {
		return err
	}

	// Unscored listings must never reach the notification boundary.
	for _, l := range listings {
		if !l.Scored {
			return &pipeline.ContractViolationError{
				Stage:   n.Name(),
				Key:     KeyScoredListings,
				Message: "unscored listing in notification input: " + l.Title,
			}
		}
	}

	top := listings
	if limit := limitFrom(store); len(top) > limit {
		top = top[:limit]
	}

	confirmation, err := n.Gateway.Notify(ctx, top)
	if err != nil {
		return &pipeline.DependencyError{Stage: n.Name(), Operation: "notify", Cause: err}
	}
	if confirmation == nil {
		return &pipeline.DependencyError{Stage: n.Name(), Operation: "notify", Cause: errNoConfirmation}
	}

	store.Set(KeyNotification, *confirmation)
	return nil
}

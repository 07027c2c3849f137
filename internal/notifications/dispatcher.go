package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pubsub"
)

// Dispatcher persists an admin notification and publishes it on admin-orders.
// Delivery is at-most-once: nothing is retried.
type Dispatcher struct {
	repo      Repository
	publisher pubsub.Publisher
}

// NewDispatcher wires the dispatcher. A nil publisher disables the live path.
func NewDispatcher(repo Repository, publisher pubsub.Publisher) (*Dispatcher, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if publisher == nil {
		publisher = pubsub.NoopPublisher{}
	}
	return &Dispatcher{repo: repo, publisher: publisher}, nil
}

// Dispatch writes the row then publishes the event. A failed write does not
// stop the publish; both failures are combined in the returned error.
func (d *Dispatcher) Dispatch(ctx context.Context, evt Event) (Event, error) {
	if !evt.Type.IsValid() {
		return evt, fmt.Errorf("invalid notification type %q", evt.Type)
	}

	row := &models.AdminNotification{
		Type:      evt.Type,
		Title:     strings.TrimSpace(evt.Title),
		Message:   strings.TrimSpace(evt.Message),
		Link:      evt.Link,
		OrderID:   evt.OrderID,
		VariantID: evt.VariantID,
	}

	var errs error
	if err := d.repo.Create(ctx, row); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("persist notification: %w", err))
	} else {
		evt.NotificationID = row.ID
		evt.CreatedAt = row.CreatedAt
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return evt, multierr.Append(errs, fmt.Errorf("encode event: %w", err))
	}
	attrs := map[string]string{AttrEventType: string(evt.Type)}
	if evt.NotificationID != uuid.Nil {
		attrs[AttrNotificationID] = evt.NotificationID.String()
	}
	if _, err := d.publisher.Publish(ctx, payload, attrs); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("publish %s: %w", evt.Type, err))
	}
	return evt, errs
}

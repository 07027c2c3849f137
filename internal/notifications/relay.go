package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	gpubsub "cloud.google.com/go/pubsub/v2"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type receiver interface {
	Receive(ctx context.Context, f func(context.Context, *gpubsub.Message)) error
}

// Relay pulls admin-orders messages from this instance's subscription and
// broadcasts them to the local Hub. Every message is acked.
type Relay struct {
	subscription receiver
	hub          *Hub
	logg         *logger.Logger
}

// NewRelay builds the relay.
func NewRelay(subscription receiver, hub *Hub, logg *logger.Logger) (*Relay, error) {
	if subscription == nil {
		return nil, fmt.Errorf("admin-orders subscription required")
	}
	if hub == nil {
		return nil, fmt.Errorf("hub required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Relay{subscription: subscription, hub: hub, logg: logg}, nil
}

// Run receives until ctx is canceled.
func (r *Relay) Run(ctx context.Context) error {
	r.logg.Info(ctx, "admin-orders relay started")
	err := r.subscription.Receive(ctx, func(ctx context.Context, msg *gpubsub.Message) {
		defer msg.Ack()
		logCtx := r.logg.WithFields(ctx, map[string]any{
			"message_id": msg.ID,
			"event_type": msg.Attributes[AttrEventType],
		})
		if err := deliver(r.hub, msg.Data, msg.Attributes); err != nil {
			r.logg.WarnErr(logCtx, "dropping admin-orders message", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func deliver(hub *Hub, data []byte, attrs map[string]string) error {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if evt.Type == "" {
		evt.Type = enums.NotificationType(attrs[AttrEventType])
	}
	if !evt.Type.IsValid() {
		return fmt.Errorf("unknown event type %q", evt.Type)
	}
	hub.Broadcast(evt)
	return nil
}

// LocalPublisher hands events straight to hub. It stands in for Pub/Sub on a
// single instance, where there is no other process to fan out to.
type LocalPublisher struct {
	hub *Hub
}

func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(_ context.Context, data []byte, attrs map[string]string) (string, error) {
	if err := deliver(p.hub, data, attrs); err != nil {
		return "", err
	}
	return "local", nil
}

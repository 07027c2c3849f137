package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

const (
	// AttrEventType and AttrNotificationID are the Pub/Sub attributes set on every admin-orders message.
	AttrEventType      = "event_type"
	AttrNotificationID = "notification_id"
)

// Event is the payload carried on the admin-orders channel and streamed to
// connected back-office clients.
type Event struct {
	Type           enums.NotificationType `json:"type"`
	NotificationID uuid.UUID              `json:"notificationId"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Link           *string                `json:"link,omitempty"`
	OrderID        *uuid.UUID             `json:"orderId,omitempty"`
	VariantID      *uuid.UUID             `json:"variantId,omitempty"`
	TotalCents     *int64                 `json:"totalCents,omitempty"`
	Stock          *int                   `json:"stock,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

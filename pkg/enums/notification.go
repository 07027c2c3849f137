package enums

import "fmt"

// NotificationType doubles as the admin-orders event type.
type NotificationType string

const (
	NotificationTypeNewOrder NotificationType = "new-order"
	NotificationTypeLowStock NotificationType = "low-stock"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeNewOrder,
	NotificationTypeLowStock,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

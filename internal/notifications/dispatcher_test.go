package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

type capturePublisher struct {
	data  []byte
	attrs map[string]string
	calls int
	err   error
}

func (c *capturePublisher) Publish(_ context.Context, data []byte, attrs map[string]string) (string, error) {
	c.calls++
	c.data = data
	c.attrs = attrs
	if c.err != nil {
		return "", c.err
	}
	return "msg-1", nil
}

func TestDispatchPersistsAndPublishes(t *testing.T) {
	repo := &fakeRepository{}
	pub := &capturePublisher{}
	dispatcher, err := NewDispatcher(repo, pub)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	orderID := uuid.New()
	total := int64(20500)

	evt, err := dispatcher.Dispatch(context.Background(), Event{
		Type:       enums.NotificationTypeNewOrder,
		Title:      " New order ",
		Message:    "Order #ABCD1234 for PKR 205.00",
		OrderID:    &orderID,
		TotalCents: &total,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].Title != "New order" {
		t.Fatalf("expected one trimmed row, got %+v", repo.created)
	}
	if evt.NotificationID != repo.created[0].ID {
		t.Fatal("event should carry the persisted notification id")
	}
	if pub.attrs[AttrEventType] != "new-order" || pub.attrs[AttrNotificationID] != evt.NotificationID.String() {
		t.Fatalf("unexpected attributes %v", pub.attrs)
	}

	var decoded Event
	if err := json.Unmarshal(pub.data, &decoded); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if decoded.OrderID == nil || *decoded.OrderID != orderID || *decoded.TotalCents != total {
		t.Fatalf("payload lost fields: %+v", decoded)
	}
}

func TestDispatchPublishesEvenWhenPersistFails(t *testing.T) {
	repo := &fakeRepository{createErr: errors.New("db down")}
	pub := &capturePublisher{err: errors.New("pubsub down")}
	dispatcher, _ := NewDispatcher(repo, pub)

	_, err := dispatcher.Dispatch(context.Background(), Event{Type: enums.NotificationTypeLowStock, Title: "Low stock"})
	if err == nil {
		t.Fatal("expected combined error")
	}
	if pub.calls != 1 {
		t.Fatalf("publish should still be attempted, calls=%d", pub.calls)
	}
	if !strings.Contains(err.Error(), "db down") || !strings.Contains(err.Error(), "pubsub down") {
		t.Fatalf("expected both failures in %q", err)
	}
	if _, ok := pub.attrs[AttrNotificationID]; ok {
		t.Fatal("notification id attribute must be omitted when the row was not written")
	}
}

func TestDispatchRejectsUnknownType(t *testing.T) {
	dispatcher, _ := NewDispatcher(&fakeRepository{}, nil)
	if _, err := dispatcher.Dispatch(context.Background(), Event{Type: "refund"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

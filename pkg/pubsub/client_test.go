package pubsub

import (
	"context"
	"testing"
)

func TestResourceNames(t *testing.T) {
	c := &Client{projectID: "shop-prod"}

	if got := c.topicResourceName("admin-orders"); got != "projects/shop-prod/topics/admin-orders" {
		t.Fatalf("unexpected topic name %s", got)
	}
	if got := c.subscriptionResourceName(" admin-orders-api "); got != "projects/shop-prod/subscriptions/admin-orders-api" {
		t.Fatalf("unexpected subscription name %s", got)
	}
	full := "projects/other/topics/admin-orders"
	if got := c.topicResourceName(full); got != full {
		t.Fatalf("full names should pass through, got %s", got)
	}
	if got := c.topicResourceName(""); got != "" {
		t.Fatalf("empty name should stay empty, got %s", got)
	}
	if got := resourceName("", "topics", "admin-orders"); got != "" {
		t.Fatalf("missing project should yield empty name, got %s", got)
	}
}

func TestNilClientHandles(t *testing.T) {
	var c *Client
	if c.AdminOrdersSubscription() != nil || c.AdminOrdersPublisher() != nil {
		t.Fatal("nil client should return nil handles")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("nil ping should fail")
	}
}

func TestPublishersWithoutTopic(t *testing.T) {
	if NewTopicPublisher(nil) != nil {
		t.Fatal("nil publisher should not be wrapped")
	}
	var p *TopicPublisher
	if _, err := p.Publish(context.Background(), []byte("{}"), nil); err == nil {
		t.Fatal("unconfigured publisher should error")
	}
	if id, err := (NoopPublisher{}).Publish(context.Background(), []byte("{}"), nil); err != nil || id != "" {
		t.Fatalf("noop publish returned %q %v", id, err)
	}
}

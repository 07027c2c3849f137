package pubsub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type Client struct {
	client    *pubsub.Client
	projectID string
	cfg       config.PubSubConfig
	publisher *pubsub.Publisher
}

var errProjectIDRequired = errors.New("gcp project id is required")

// NewClient creates a Pub/Sub v2 client. When a relay subscription is configured
// it must already exist.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.PubSubConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errProjectIDRequired
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(gcp.CredentialsJSON); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	psClient, err := pubsub.NewClient(ctx, gcp.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	c := &Client{
		client:    psClient,
		projectID: gcp.ProjectID,
		cfg:       cfg,
	}

	if err := c.ensureSubscriptionConfigured(ctx); err != nil {
		_ = psClient.Close()
		return nil, err
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "topic", cfg.AdminOrdersTopic), "pubsub client initialized")
	}

	return c, nil
}

func (c *Client) ensureSubscriptionConfigured(ctx context.Context) error {
	name := strings.TrimSpace(c.cfg.AdminOrdersSubscription)
	if name == "" {
		return nil
	}
	return c.ensureSubscriptionExists(ctx, name)
}

func (c *Client) ensureSubscriptionExists(ctx context.Context, name string) error {
	fullName := c.subscriptionResourceName(name)
	if fullName == "" {
		return fmt.Errorf("subscription %q not configured", name)
	}

	_, err := c.client.SubscriptionAdminClient.GetSubscription(
		ctx,
		&pubsubpb.GetSubscriptionRequest{Subscription: fullName},
	)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("subscription %q does not exist", name)
		}
		return fmt.Errorf("checking subscription %q: %w", name, err)
	}
	return nil
}

// Subscription returns a Subscriber handle for a subscription ID or full resource name.
func (c *Client) Subscription(name string) *pubsub.Subscriber {
	if c == nil || c.client == nil {
		return nil
	}
	fullName := c.subscriptionResourceName(name)
	if fullName == "" {
		return nil
	}
	return c.client.Subscriber(fullName)
}

// AdminOrdersSubscription returns the relay subscriber, or nil when none is configured.
func (c *Client) AdminOrdersSubscription() *pubsub.Subscriber {
	if c == nil {
		return nil
	}
	return c.Subscription(c.cfg.AdminOrdersSubscription)
}

// Publisher returns a publisher handle for the given topic ID/resource name.
func (c *Client) Publisher(name string) *pubsub.Publisher {
	if c == nil || c.client == nil {
		return nil
	}
	fullName := c.topicResourceName(name)
	if fullName == "" {
		return nil
	}
	return c.client.Publisher(fullName)
}

// AdminOrdersPublisher returns the shared publisher for the admin-orders topic.
func (c *Client) AdminOrdersPublisher() *pubsub.Publisher {
	if c == nil {
		return nil
	}
	if c.publisher == nil {
		c.publisher = c.Publisher(c.cfg.AdminOrdersTopic)
	}
	return c.publisher
}

// Ping verifies Pub/Sub connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("pubsub client not initialized")
	}
	return c.ensureSubscriptionConfigured(ctx)
}

// Close flushes the publisher and releases client resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	if c.publisher != nil {
		c.publisher.Stop()
	}
	return c.client.Close()
}

func (c *Client) subscriptionResourceName(name string) string {
	return resourceName(c.projectID, "subscriptions", name)
}

func (c *Client) topicResourceName(name string) string {
	return resourceName(c.projectID, "topics", name)
}

func resourceName(projectID, kind, name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return ""
	}
	if strings.HasPrefix(n, "projects/") && strings.Contains(n, "/"+kind+"/") {
		return n
	}
	p := strings.TrimSpace(projectID)
	if p == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/%s/%s", p, kind, n)
}

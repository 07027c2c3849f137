// Package push delivers best-effort admin push notifications to an HTTP relay.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const (
	defaultTimeout        = 3 * time.Second
	responseBodyReadLimit = 1024
)

// Message is the payload forwarded to subscribed admin browsers.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	URL   string            `json:"url,omitempty"`
	Tag   string            `json:"tag,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// Notifier sends push messages. Implementations never retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Client posts JSON messages to the configured push endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient builds a push client. An empty endpoint returns a Noop notifier.
func NewClient(endpoint string, timeout time.Duration, opts ...Option) Notifier {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return Noop{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		endpoint:   trimmed,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Send posts msg once. Any non-2xx status is returned as a dependency error.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "push client not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal push message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build push request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send push request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "push request failed")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Noop discards messages.
type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }

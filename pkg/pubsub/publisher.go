package pubsub

import (
	"context"
	"errors"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// Publisher is the narrow publish surface used by application services.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

type topicHandle interface {
	Publish(context.Context, *pubsub.Message) *pubsub.PublishResult
}

// TopicPublisher adapts a Pub/Sub v2 publisher to Publisher, waiting for the server ack.
type TopicPublisher struct {
	topic topicHandle
}

func NewTopicPublisher(p *pubsub.Publisher) *TopicPublisher {
	if p == nil {
		return nil
	}
	return &TopicPublisher{topic: p}
}

func (p *TopicPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub publisher not configured")
	}
	result := p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attributes})
	return result.Get(ctx)
}

// NoopPublisher drops every message. Used when no GCP project is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []byte, map[string]string) (string, error) {
	return "", nil
}

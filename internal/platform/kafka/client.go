package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"propertyguard/internal/platform/config"
)

// Client wraps a franz-go producer with admin capabilities for topic
// bootstrap and health checking.
type Client struct {
	client *kgo.Client
	admin  *kadm.Client
}

// New creates a new Kafka client from the provided configuration.
// Returns nil if no brokers are configured.
func New(ctx context.Context, cfg config.Kafka) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	kc, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := kc.Ping(ctx); err != nil {
		kc.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	return &Client{
		client: kc,
		admin:  kadm.NewClient(kc),
	}, nil
}

// EnsureTopic creates the topic if it does not exist, using broker defaults
// for partitions and replication. Already existing is not an error.
func (c *Client) EnsureTopic(ctx context.Context, topic string) error {
	resp, err := c.admin.CreateTopics(ctx, -1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Produce synchronously publishes one record and waits for broker ack.
func (c *Client) Produce(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: value,
	}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// Health checks broker connectivity.
func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// Close flushes and closes the underlying client.
func (c *Client) Close() {
	c.client.Close()
}

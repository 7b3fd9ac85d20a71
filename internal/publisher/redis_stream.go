package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream receives one entry per processed document.
const DefaultStream = "documents.processed"

// RedisPublisher appends events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher creates a stream publisher from an existing client
func NewRedisPublisher(client *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
	}
}

// Publish adds the event to the stream
func (rp *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rp.stream,
		Values: map[string]interface{}{
			"type":      event.Type,
			"kind":      string(event.Kind),
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

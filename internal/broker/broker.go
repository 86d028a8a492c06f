package broker

import (
	"context"

	kafka "github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/retry"
)

// Producer publishes storage-finalize events to the notification topic.
// Delivery to consumers is at-least-once; handlers must be idempotent.
type Producer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
	Close() error
}

// Consumer reads storage-finalize events. Commit acknowledges a message
// after it has been fully processed; uncommitted messages are redelivered.
type Consumer interface {
	Fetch(ctx context.Context, strategy retry.Strategy) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
	StartConsuming(ctx context.Context, out chan<- kafka.Message, strategy retry.Strategy)
	Close() error
}

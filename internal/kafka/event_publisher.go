package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"teammatch/internal/apptypes"
)

// FriendRequestPublisher publishes friend request events as JSON to a topic.
// Events are keyed by request id so the events of one request stay ordered.
type FriendRequestPublisher struct {
	producer MessageProducer
	topic    string
}

// NewFriendRequestPublisher creates a publisher writing to topic.
func NewFriendRequestPublisher(producer MessageProducer, topic string) *FriendRequestPublisher {
	return &FriendRequestPublisher{producer: producer, topic: topic}
}

func (p *FriendRequestPublisher) PublishFriendRequestEvent(ctx context.Context, event apptypes.FriendRequestEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode friend request event: %w", err)
	}
	key := []byte(strconv.FormatUint(uint64(event.RequestID), 10))
	return p.producer.SendMessage(ctx, p.topic, key, payload)
}

package kafkahandlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"teammatch/internal/apptypes"
)

// EventSink receives decoded friend request events, normally the websocket hub.
type EventSink interface {
	PublishFriendRequestEvent(ctx context.Context, event apptypes.FriendRequestEvent) error
}

// FriendRequestNotifier forwards friend request events from Kafka to an EventSink.
type FriendRequestNotifier struct {
	sink EventSink
}

// NewFriendRequestNotifier creates a new FriendRequestNotifier.
func NewFriendRequestNotifier(sink EventSink) *FriendRequestNotifier {
	if sink == nil {
		log.Panic("event sink cannot be nil")
	}
	return &FriendRequestNotifier{sink: sink}
}

// HandleMessage is a kafka.MessageHandler. Malformed messages are skipped so
// they do not block the partition. Delivery is best effort, so a full sink is
// not retried either.
func (n *FriendRequestNotifier) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	var event apptypes.FriendRequestEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("Skipping malformed friend request event at offset %v: %v", msg.TopicPartition.Offset, err)
		return nil
	}
	if event.NotifyUserID == 0 {
		log.Printf("Skipping friend request event %d without a recipient", event.RequestID)
		return nil
	}
	if err := n.sink.PublishFriendRequestEvent(ctx, event); err != nil {
		log.Printf("Dropping %s notification for user %d: %v", event.Type, event.NotifyUserID, err)
	}
	return nil
}

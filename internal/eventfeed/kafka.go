package eventfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes changes to one topic, keyed by event id so every
// change of an event lands on the same partition in order.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewKafkaPublisher returns a Nop publisher when brokers is empty.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("ℹ️ KAFKA_BROKERS not set, event change feed disabled")
		return Nop{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	log.Printf("✅ Event change feed publishing to %s on %v", topic, brokers)
	return &KafkaPublisher{writer: w, topic: topic, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode %s change: %w", change.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.EventID),
		Value: payload,
		Time:  change.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(change.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", change.Type, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

type notificationMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// KafkaSender publishes notification messages to the order-notifications
// topic for the downstream mailer. A circuit breaker sheds publishes while
// the brokers are down so every poll tick isn't burned on timeouts.
type KafkaSender struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker[any]
}

func NewKafkaSender(brokers ...string) *KafkaSender {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-notifications",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "notification-sender",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &KafkaSender{writer: w, breaker: breaker}
}

func (s *KafkaSender) Send(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(notificationMessage{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(recipient),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("notification")},
		},
	}

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

var _ Sender = (*KafkaSender)(nil)

// Package natsbus publishes and consumes catalog events over NATS. Subjects are
// "<exchange>.<routingKey>", e.g. "catalog.gift.created".
package natsbus

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// Bus wraps a NATS connection.
type Bus struct {
	nc *nats.Conn
}

// Connect dials the NATS server at url.
func Connect(url string) (*Bus, error) {
	nc, err := nats.Connect(url, nats.Name("giftcatalog"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("NATS bus connected to %s", nc.ConnectedUrl())
	return &Bus{nc: nc}, nil
}

// NewBus wraps an existing connection.
func NewBus(nc *nats.Conn) *Bus {
	return &Bus{nc: nc}
}

// Subject joins an exchange and routing key into a NATS subject.
func Subject(exchange, routingKey string) string {
	if exchange == "" {
		return routingKey
	}
	return exchange + "." + routingKey
}

// Publish sends body on the subject for exchange and routingKey.
func (b *Bus) Publish(exchange, routingKey string, body []byte) error {
	if b.nc == nil {
		return fmt.Errorf("NATS connection is not available")
	}
	if err := b.nc.Publish(Subject(exchange, routingKey), body); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}
	return nil
}

// Subscribe decodes JSON messages of type T on subject. Malformed messages are
// logged and dropped.
func Subscribe[T any](b *Bus, subject string, handler func(T)) (*nats.Subscription, error) {
	return b.nc.Subscribe(subject, func(msg *nats.Msg) {
		var v T
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			log.Printf("Dropping malformed message on %s: %v", msg.Subject, err)
			return
		}
		handler(v)
	})
}

// Close drains pending messages and closes the connection.
func (b *Bus) Close() error {
	if b.nc == nil {
		return nil
	}
	return b.nc.Drain()
}

package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"giftcatalog/internal/models"
)

// CatalogExchange is the exchange (or subject prefix) catalog events go to.
const CatalogExchange = "catalog"

// EventPublisher delivers a message to a broker. Both the RabbitMQ client and
// the NATS bus satisfy it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent sends a catalog event. Failures are logged and never fail the
// write that produced the event.
func publishEvent(publisher EventPublisher, event models.CatalogEvent) {
	if publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event to JSON: %v", event.Type, err)
		return
	}
	if err := publisher.Publish(CatalogExchange, event.Type, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s: %v", event.Type, event.EntityID, err)
		return
	}
	log.Printf("Published %s event for %s", event.Type, event.EntityID)
}

// AuditCatalogEvent decodes a delivered event and writes an audit log line.
func AuditCatalogEvent(body []byte) error {
	var event models.CatalogEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode catalog event: %w", err)
	}
	if event.Type == "" || event.EntityID == "" {
		return fmt.Errorf("catalog event is missing type or entity ID")
	}
	LogCatalogEvent(event)
	return nil
}

// LogCatalogEvent writes the audit line for an event.
func LogCatalogEvent(event models.CatalogEvent) {
	if event.Removed > 0 {
		log.Printf("[audit] %s %s at %s (%d concrete gifts removed)",
			event.Type, event.EntityID, event.OccurredAt.Format(time.RFC3339), event.Removed)
		return
	}
	log.Printf("[audit] %s %s at %s", event.Type, event.EntityID, event.OccurredAt.Format(time.RFC3339))
}

package models

import "time"

// Catalog event types, also used as routing keys / subject suffixes.
const (
	EventSuggestionCreated = "suggestion.created"
	EventSuggestionUpdated = "suggestion.updated"
	EventSuggestionDeleted = "suggestion.deleted"
	EventGiftCreated       = "gift.created"
	EventGiftUpdated       = "gift.updated"
	EventGiftDeleted       = "gift.deleted"
)

// CatalogEvent is published after a catalog write commits.
type CatalogEvent struct {
	Type         string    `json:"type"`
	EntityID     string    `json:"entityId"`
	SuggestionID string    `json:"suggestionId,omitempty"`
	Removed      int64     `json:"removed,omitempty"` // cascaded children, suggestion.deleted only
	OccurredAt   time.Time `json:"occurredAt"`
}

package services_test

import (
	"testing"

	"giftcatalog/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAuditCatalogEvent(t *testing.T) {
	assert.NoError(t, services.AuditCatalogEvent([]byte(`{"type":"gift.created","entityId":"g-1","suggestionId":"s-1"}`)))
	assert.NoError(t, services.AuditCatalogEvent([]byte(`{"type":"suggestion.deleted","entityId":"s-1","removed":3}`)))

	err := services.AuditCatalogEvent([]byte(`not json`))
	assert.ErrorContains(t, err, "failed to decode catalog event")

	err = services.AuditCatalogEvent([]byte(`{"type":"gift.created"}`))
	assert.ErrorContains(t, err, "missing type or entity ID")
}

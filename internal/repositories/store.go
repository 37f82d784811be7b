package repositories

import (
	"giftcatalog/internal/models"
	"giftcatalog/internal/query"
)

// GiftSuggestionRepository defines the interface for gift suggestion data access.
type GiftSuggestionRepository interface {
	GetAll() ([]models.GiftSuggestion, error)
	GetByID(id string) (*models.GiftSuggestion, error)
	Exists(id string) (bool, error)
	Create(suggestion *models.GiftSuggestion) error
	Update(suggestion *models.GiftSuggestion) error
	Delete(id string) error
	Find(filter query.SuggestionFilter) ([]models.GiftSuggestion, error)
	FindPage(filter query.SuggestionFilter, page query.Pageable) (query.Page[models.GiftSuggestion], error)
	Count(filter query.SuggestionFilter) (int64, error)
}

// ConcreteGiftRepository defines the interface for concrete gift data access.
type ConcreteGiftRepository interface {
	GetAll() ([]models.ConcreteGift, error)
	GetByID(id string) (*models.ConcreteGift, error)
	Exists(id string) (bool, error)
	Create(gift *models.ConcreteGift) error
	Update(gift *models.ConcreteGift) error
	Delete(id string) error
	DeleteBySuggestionID(suggestionID string) (int64, error)
	Find(filter query.GiftFilter) ([]models.ConcreteGift, error)
	FindPage(filter query.GiftFilter, page query.Pageable) (query.Page[models.ConcreteGift], error)
	Count(filter query.GiftFilter) (int64, error)
}

// Store groups the catalog repositories and provides the transactional
// boundary for writes that touch both tables.
type Store interface {
	Suggestions() GiftSuggestionRepository
	Gifts() ConcreteGiftRepository
	// WithinTx runs fn against a transactional view of the store. If fn
	// returns an error every write made through tx is rolled back.
	WithinTx(fn func(tx Store) error) error
}

// CuratorRepository defines the interface for curator account access.
type CuratorRepository interface {
	Create(curator *models.Curator) error
	GetByUsername(username string) (*models.Curator, error)
	GetByEmail(email string) (*models.Curator, error)
	GetByID(id string) (*models.Curator, error)
}

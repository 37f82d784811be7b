package repositories

import (
	"giftcatalog/internal/query"

	"gorm.io/gorm"
)

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db          *gorm.DB
	suggestions *GORMGiftSuggestionRepository
	gifts       *GORMConcreteGiftRepository
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db:          db,
		suggestions: NewGORMGiftSuggestionRepository(db),
		gifts:       NewGORMConcreteGiftRepository(db),
	}
}

func (s *GORMStore) Suggestions() GiftSuggestionRepository { return s.suggestions }

func (s *GORMStore) Gifts() ConcreteGiftRepository { return s.gifts }

// WithinTx runs fn inside a database transaction.
func (s *GORMStore) WithinTx(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}

// ordered applies the sort of p, or the default order for the zero Pageable.
func ordered[T any](db *gorm.DB, sorter query.Sorter[T], p query.Pageable) (*gorm.DB, error) {
	clauses, err := sorter.OrderClauses(p)
	if err != nil {
		return nil, err
	}
	for _, clause := range clauses {
		db = db.Order(clause)
	}
	return db, nil
}

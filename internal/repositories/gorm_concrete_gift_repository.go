package repositories

import (
	"errors"
	"fmt"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"

	"gorm.io/gorm"
)

const giftEntity = "concrete gift"

// GORMConcreteGiftRepository is a GORM implementation of ConcreteGiftRepository.
type GORMConcreteGiftRepository struct {
	db *gorm.DB
}

// NewGORMConcreteGiftRepository creates a new instance of GORMConcreteGiftRepository.
func NewGORMConcreteGiftRepository(db *gorm.DB) *GORMConcreteGiftRepository {
	return &GORMConcreteGiftRepository{
		db: db,
	}
}

func (r *GORMConcreteGiftRepository) model() *gorm.DB {
	return r.db.Model(&models.ConcreteGift{})
}

// GetAll retrieves all concrete gifts in the default order.
func (r *GORMConcreteGiftRepository) GetAll() ([]models.ConcreteGift, error) {
	return r.Find(query.GiftFilter{})
}

// GetByID retrieves a single concrete gift by its ID.
func (r *GORMConcreteGiftRepository) GetByID(id string) (*models.ConcreteGift, error) {
	var gift models.ConcreteGift
	if err := r.db.First(&gift, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(giftEntity, id)
		}
		return nil, fmt.Errorf("failed to get concrete gift by ID %s: %w", id, err)
	}
	return &gift, nil
}

// Exists reports whether a concrete gift with the ID is stored.
func (r *GORMConcreteGiftRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.model().Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check concrete gift %s: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new concrete gift.
func (r *GORMConcreteGiftRepository) Create(gift *models.ConcreteGift) error {
	if err := r.db.Create(gift).Error; err != nil {
		return fmt.Errorf("failed to create concrete gift: %w", err)
	}
	return nil
}

// Update writes every mutable column of an existing concrete gift.
func (r *GORMConcreteGiftRepository) Update(gift *models.ConcreteGift) error {
	exists, err := r.Exists(gift.ID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(giftEntity, gift.ID)
	}
	if err := r.db.Save(gift).Error; err != nil {
		return fmt.Errorf("failed to update concrete gift: %w", err)
	}
	return nil
}

// Delete deletes a concrete gift by its ID.
func (r *GORMConcreteGiftRepository) Delete(id string) error {
	res := r.db.Delete(&models.ConcreteGift{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete concrete gift: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(giftEntity, id)
	}
	return nil
}

// DeleteBySuggestionID removes every concrete gift owned by a suggestion.
func (r *GORMConcreteGiftRepository) DeleteBySuggestionID(suggestionID string) (int64, error) {
	res := r.db.Where("gift_suggestion_id = ?", suggestionID).Delete(&models.ConcreteGift{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete concrete gifts of suggestion %s: %w", suggestionID, res.Error)
	}
	return res.RowsAffected, nil
}

// Find returns every concrete gift matching filter in the default order.
func (r *GORMConcreteGiftRepository) Find(filter query.GiftFilter) ([]models.ConcreteGift, error) {
	db, err := ordered(r.model().Scopes(filter.Scope), query.GiftSorts, query.Pageable{})
	if err != nil {
		return nil, err
	}
	gifts := []models.ConcreteGift{}
	if err := db.Find(&gifts).Error; err != nil {
		return nil, fmt.Errorf("failed to find concrete gifts: %w", err)
	}
	return gifts, nil
}

// FindPage returns one page of matching concrete gifts and the total count.
func (r *GORMConcreteGiftRepository) FindPage(filter query.GiftFilter, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	total, err := r.Count(filter)
	if err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	db, err := ordered(r.model().Scopes(filter.Scope), query.GiftSorts, page)
	if err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	gifts := []models.ConcreteGift{}
	if err := db.Limit(page.Size).Offset(page.Offset()).Find(&gifts).Error; err != nil {
		return query.Page[models.ConcreteGift]{}, fmt.Errorf("failed to find concrete gift page: %w", err)
	}
	return query.NewPage(gifts, page, total), nil
}

// Count returns the number of concrete gifts matching filter.
func (r *GORMConcreteGiftRepository) Count(filter query.GiftFilter) (int64, error) {
	var total int64
	if err := r.model().Scopes(filter.Scope).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count concrete gifts: %w", err)
	}
	return total, nil
}

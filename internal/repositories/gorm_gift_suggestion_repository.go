package repositories

import (
	"errors"
	"fmt"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"

	"gorm.io/gorm"
)

const suggestionEntity = "gift suggestion"

// GORMGiftSuggestionRepository is a GORM implementation of GiftSuggestionRepository.
type GORMGiftSuggestionRepository struct {
	db *gorm.DB
}

// NewGORMGiftSuggestionRepository creates a new instance of GORMGiftSuggestionRepository.
func NewGORMGiftSuggestionRepository(db *gorm.DB) *GORMGiftSuggestionRepository {
	return &GORMGiftSuggestionRepository{
		db: db,
	}
}

func (r *GORMGiftSuggestionRepository) model() *gorm.DB {
	return r.db.Model(&models.GiftSuggestion{})
}

// GetAll retrieves all gift suggestions in the default order.
func (r *GORMGiftSuggestionRepository) GetAll() ([]models.GiftSuggestion, error) {
	return r.Find(query.SuggestionFilter{})
}

// GetByID retrieves a single gift suggestion by its ID.
func (r *GORMGiftSuggestionRepository) GetByID(id string) (*models.GiftSuggestion, error) {
	var suggestion models.GiftSuggestion
	if err := r.db.First(&suggestion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(suggestionEntity, id)
		}
		return nil, fmt.Errorf("failed to get gift suggestion by ID %s: %w", id, err)
	}
	return &suggestion, nil
}

// Exists reports whether a gift suggestion with the ID is stored.
func (r *GORMGiftSuggestionRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.model().Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check gift suggestion %s: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new gift suggestion.
func (r *GORMGiftSuggestionRepository) Create(suggestion *models.GiftSuggestion) error {
	if err := r.db.Create(suggestion).Error; err != nil {
		return fmt.Errorf("failed to create gift suggestion: %w", err)
	}
	return nil
}

// Update writes every mutable column of an existing gift suggestion.
func (r *GORMGiftSuggestionRepository) Update(suggestion *models.GiftSuggestion) error {
	exists, err := r.Exists(suggestion.ID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(suggestionEntity, suggestion.ID)
	}
	// Save writes zero values too; created_at is create-only on the model.
	if err := r.db.Save(suggestion).Error; err != nil {
		return fmt.Errorf("failed to update gift suggestion: %w", err)
	}
	return nil
}

// Delete deletes a gift suggestion by its ID. Children are the caller's concern.
func (r *GORMGiftSuggestionRepository) Delete(id string) error {
	res := r.db.Delete(&models.GiftSuggestion{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete gift suggestion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(suggestionEntity, id)
	}
	return nil
}

// Find returns every gift suggestion matching filter in the default order.
func (r *GORMGiftSuggestionRepository) Find(filter query.SuggestionFilter) ([]models.GiftSuggestion, error) {
	db, err := ordered(r.model().Scopes(filter.Scope), query.SuggestionSorts, query.Pageable{})
	if err != nil {
		return nil, err
	}
	suggestions := []models.GiftSuggestion{}
	if err := db.Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to find gift suggestions: %w", err)
	}
	return suggestions, nil
}

// FindPage returns one page of matching gift suggestions and the total count.
func (r *GORMGiftSuggestionRepository) FindPage(filter query.SuggestionFilter, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	total, err := r.Count(filter)
	if err != nil {
		return query.Page[models.GiftSuggestion]{}, err
	}
	db, err := ordered(r.model().Scopes(filter.Scope), query.SuggestionSorts, page)
	if err != nil {
		return query.Page[models.GiftSuggestion]{}, err
	}
	suggestions := []models.GiftSuggestion{}
	if err := db.Limit(page.Size).Offset(page.Offset()).Find(&suggestions).Error; err != nil {
		return query.Page[models.GiftSuggestion]{}, fmt.Errorf("failed to find gift suggestion page: %w", err)
	}
	return query.NewPage(suggestions, page, total), nil
}

// Count returns the number of gift suggestions matching filter.
func (r *GORMGiftSuggestionRepository) Count(filter query.SuggestionFilter) (int64, error) {
	var total int64
	if err := r.model().Scopes(filter.Scope).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count gift suggestions: %w", err)
	}
	return total, nil
}

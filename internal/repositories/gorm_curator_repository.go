package repositories

import (
	"errors"
	"fmt"

	"giftcatalog/internal/models"

	"gorm.io/gorm"
)

const curatorEntity = "curator"

// GORMCuratorRepository is a GORM implementation of CuratorRepository.
type GORMCuratorRepository struct {
	db *gorm.DB
}

// NewGORMCuratorRepository creates a new instance of GORMCuratorRepository.
func NewGORMCuratorRepository(db *gorm.DB) *GORMCuratorRepository {
	return &GORMCuratorRepository{
		db: db,
	}
}

// Create stores a new curator account.
func (r *GORMCuratorRepository) Create(curator *models.Curator) error {
	if err := r.db.Create(curator).Error; err != nil {
		return fmt.Errorf("failed to create curator: %w", err)
	}
	return nil
}

// GetByUsername retrieves a curator by username.
func (r *GORMCuratorRepository) GetByUsername(username string) (*models.Curator, error) {
	return r.first("username", username)
}

// GetByEmail retrieves a curator by email.
func (r *GORMCuratorRepository) GetByEmail(email string) (*models.Curator, error) {
	return r.first("email", email)
}

// GetByID retrieves a curator by ID.
func (r *GORMCuratorRepository) GetByID(id string) (*models.Curator, error) {
	return r.first("id", id)
}

func (r *GORMCuratorRepository) first(column, value string) (*models.Curator, error) {
	var curator models.Curator
	if err := r.db.First(&curator, column+" = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(curatorEntity, value)
		}
		return nil, fmt.Errorf("failed to get curator by %s %s: %w", column, value, err)
	}
	return &curator, nil
}

package repositories

import (
	"fmt"
	"sync"
	"time"

	"giftcatalog/internal/models"

	"github.com/google/uuid"
)

// MemoryCuratorRepository is an in-memory implementation of CuratorRepository.
type MemoryCuratorRepository struct {
	curators map[string]models.Curator
	mu       sync.RWMutex
}

// NewMemoryCuratorRepository creates a new instance of MemoryCuratorRepository.
func NewMemoryCuratorRepository() *MemoryCuratorRepository {
	return &MemoryCuratorRepository{
		curators: make(map[string]models.Curator),
	}
}

// Create adds a curator, enforcing unique username and email.
func (r *MemoryCuratorRepository) Create(curator *models.Curator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.curators {
		if existing.Username == curator.Username || existing.Email == curator.Email {
			return fmt.Errorf("failed to create curator: duplicate username or email")
		}
	}
	if curator.ID == "" {
		curator.ID = uuid.New().String()
	}
	curator.CreatedAt = time.Now()
	r.curators[curator.ID] = *curator
	return nil
}

// GetByUsername returns a curator by username.
func (r *MemoryCuratorRepository) GetByUsername(username string) (*models.Curator, error) {
	return r.find(username, func(c models.Curator) bool { return c.Username == username })
}

// GetByEmail returns a curator by email.
func (r *MemoryCuratorRepository) GetByEmail(email string) (*models.Curator, error) {
	return r.find(email, func(c models.Curator) bool { return c.Email == email })
}

// GetByID returns a curator by ID.
func (r *MemoryCuratorRepository) GetByID(id string) (*models.Curator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	curator, ok := r.curators[id]
	if !ok {
		return nil, models.NewNotFoundError(curatorEntity, id)
	}
	return &curator, nil
}

func (r *MemoryCuratorRepository) find(key string, match func(models.Curator) bool) (*models.Curator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, curator := range r.curators {
		if match(curator) {
			return &curator, nil
		}
	}
	return nil, models.NewNotFoundError(curatorEntity, key)
}

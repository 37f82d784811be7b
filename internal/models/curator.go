package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Curator is an account allowed to change the catalog.
type Curator struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

func (Curator) TableName() string {
	return "curators"
}

// BeforeCreate assigns a fresh UUID.
func (c *Curator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

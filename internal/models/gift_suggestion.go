package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GiftSuggestion is an abstract gift idea with an acceptable price band and
// six category tags. Concrete gifts reference it by GiftSuggestionID.
type GiftSuggestion struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string          `json:"name" gorm:"type:varchar(100);not null"`
	Description     string          `json:"description" gorm:"type:varchar(500);not null"`
	MinPrice        float64         `json:"minPrice" gorm:"type:decimal(10,2);not null;index"`
	MaxPrice        float64         `json:"maxPrice" gorm:"type:decimal(10,2);not null;index"`
	AgeGroup        AgeGroup        `json:"ageGroup" gorm:"type:varchar(20);not null;index"`
	Gender          Gender          `json:"gender" gorm:"type:varchar(20);not null;index"`
	Interest        Interest        `json:"interest" gorm:"type:varchar(20);not null;index"`
	Occasion        Occasion        `json:"occasion" gorm:"type:varchar(20);not null;index"`
	Relationship    Relationship    `json:"relationship" gorm:"type:varchar(20);not null;index"`
	PersonalityType PersonalityType `json:"personalityType" gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"<-:create;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (GiftSuggestion) TableName() string {
	return "gift_suggestions"
}

// CheckBand re-validates the price band; it runs on every write.
func (s *GiftSuggestion) CheckBand() error {
	return RangeAsValidation(CheckPriceRange(&s.MinPrice, &s.MaxPrice))
}

// Contains reports whether price lies inside the band, bounds included.
func (s *GiftSuggestion) Contains(price float64) bool {
	return price >= s.MinPrice && price <= s.MaxPrice
}

// BeforeCreate assigns a fresh UUID.
func (s *GiftSuggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave refuses to persist an inconsistent band.
func (s *GiftSuggestion) BeforeSave(tx *gorm.DB) error {
	return s.CheckBand()
}

// GiftSuggestionInput carries the caller-supplied fields for create and update.
type GiftSuggestionInput struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name" validate:"notblank,max=100"`
	Description     string          `json:"description" validate:"notblank,max=500"`
	MinPrice        *float64        `json:"minPrice" validate:"required,finite,gt=0"`
	MaxPrice        *float64        `json:"maxPrice" validate:"required,finite,gt=0"`
	AgeGroup        AgeGroup        `json:"ageGroup" validate:"required,enum"`
	Gender          Gender          `json:"gender" validate:"required,enum"`
	Interest        Interest        `json:"interest" validate:"required,enum"`
	Occasion        Occasion        `json:"occasion" validate:"required,enum"`
	Relationship    Relationship    `json:"relationship" validate:"required,enum"`
	PersonalityType PersonalityType `json:"personalityType" validate:"required,enum"`
}

// Validate runs every field rule plus the price band rule.
func (in GiftSuggestionInput) Validate() error {
	return ValidateStruct(in)
}

// ApplyTo replaces the mutable fields of s. Id and audit timestamps are left alone.
func (in GiftSuggestionInput) ApplyTo(s *GiftSuggestion) {
	s.Name = in.Name
	s.Description = in.Description
	if in.MinPrice != nil {
		s.MinPrice = *in.MinPrice
	}
	if in.MaxPrice != nil {
		s.MaxPrice = *in.MaxPrice
	}
	s.AgeGroup = in.AgeGroup
	s.Gender = in.Gender
	s.Interest = in.Interest
	s.Occasion = in.Occasion
	s.Relationship = in.Relationship
	s.PersonalityType = in.PersonalityType
}

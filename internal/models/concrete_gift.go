package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConcreteGift is a purchasable product from one vendor. It belongs to exactly
// one GiftSuggestion and its ExactPrice must sit inside that suggestion's band.
type ConcreteGift struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string    `json:"name" gorm:"type:varchar(150);not null"`
	Description      string    `json:"description,omitempty" gorm:"type:varchar(1000)"`
	ExactPrice       float64   `json:"exactPrice" gorm:"type:decimal(10,2);not null;index"`
	VendorName       string    `json:"vendorName" gorm:"type:varchar(100);not null;index"`
	ProductURL       string    `json:"productUrl,omitempty" gorm:"type:varchar(500)"`
	ProductSKU       string    `json:"productSku,omitempty" gorm:"type:varchar(50)"`
	Available        bool      `json:"available" gorm:"not null;index"`
	GiftSuggestionID string    `json:"giftSuggestionId" gorm:"type:varchar(36);not null;index"`
	CreatedAt        time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (ConcreteGift) TableName() string {
	return "concrete_gifts"
}

// BeforeCreate assigns a fresh UUID.
func (g *ConcreteGift) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave guards the columns the schema cannot express.
func (g *ConcreteGift) BeforeSave(tx *gorm.DB) error {
	return g.Check()
}

// Check verifies the stored-record invariants that do not need the parent.
func (g *ConcreteGift) Check() error {
	if g.ExactPrice <= 0 || !IsFinite(g.ExactPrice) {
		return NewValidationError("exactPrice", "gt", "exactPrice must be positive")
	}
	if g.GiftSuggestionID == "" {
		return NewValidationError("giftSuggestionId", "required", "giftSuggestionId is required")
	}
	return nil
}

// ConcreteGiftInput carries the caller-supplied fields for create and update.
// Updates replace every field, so Available defaults to true when omitted.
type ConcreteGiftInput struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name" validate:"notblank,max=150"`
	Description      string   `json:"description" validate:"max=1000"`
	ExactPrice       *float64 `json:"exactPrice" validate:"required,finite,gt=0"`
	VendorName       string   `json:"vendorName" validate:"notblank,max=100"`
	ProductURL       string   `json:"productUrl" validate:"max=500,httpurl"`
	ProductSKU       string   `json:"productSku" validate:"max=50"`
	Available        *bool    `json:"available"`
	GiftSuggestionID string   `json:"giftSuggestionId" validate:"required"`
}

// Validate runs the field rules.
func (in ConcreteGiftInput) Validate() error {
	return ValidateStruct(in)
}

// Price returns ExactPrice or 0 when missing.
func (in ConcreteGiftInput) Price() float64 {
	if in.ExactPrice == nil {
		return 0
	}
	return *in.ExactPrice
}

// ApplyTo replaces the mutable fields of g.
func (in ConcreteGiftInput) ApplyTo(g *ConcreteGift) {
	g.Name = in.Name
	g.Description = in.Description
	g.ExactPrice = in.Price()
	g.VendorName = in.VendorName
	g.ProductURL = strings.TrimSpace(in.ProductURL)
	g.ProductSKU = in.ProductSKU
	g.Available = true
	if in.Available != nil {
		g.Available = *in.Available
	}
	g.GiftSuggestionID = in.GiftSuggestionID
}

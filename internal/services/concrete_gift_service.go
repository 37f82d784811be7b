package services

import (
	"log"
	"strings"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"
	"giftcatalog/internal/repositories"
)

// ConcreteGiftService handles business logic related to concrete gifts.
type ConcreteGiftService struct {
	store     repositories.Store
	publisher EventPublisher
}

// NewConcreteGiftService creates a new ConcreteGiftService. publisher may be nil.
func NewConcreteGiftService(store repositories.Store, publisher EventPublisher) *ConcreteGiftService {
	return &ConcreteGiftService{
		store:     store,
		publisher: publisher,
	}
}

// CreateGift validates a new concrete gift against its suggestion and stores it.
func (s *ConcreteGiftService) CreateGift(in models.ConcreteGiftInput) (*models.ConcreteGift, error) {
	log.Printf("Creating concrete gift: %s for suggestion %s", in.Name, in.GiftSuggestionID)
	if in.ID != "" {
		return nil, models.InvalidArgument("concrete gift ID must be empty for creation")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	gift := &models.ConcreteGift{}
	in.ApplyTo(gift)
	err := s.store.WithinTx(func(tx repositories.Store) error {
		suggestion, err := tx.Suggestions().GetByID(gift.GiftSuggestionID)
		if err != nil {
			return err
		}
		if err := checkAssociation(gift, suggestion); err != nil {
			return err
		}
		return tx.Gifts().Create(gift)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully created concrete gift with ID: %s", gift.ID)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventGiftCreated, EntityID: gift.ID, SuggestionID: gift.GiftSuggestionID,
	})
	return gift, nil
}

// GetGiftByID retrieves a single concrete gift.
func (s *ConcreteGiftService) GetGiftByID(id string) (*models.ConcreteGift, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.store.Gifts().GetByID(id)
}

// GetAllGifts retrieves every concrete gift.
func (s *ConcreteGiftService) GetAllGifts() ([]models.ConcreteGift, error) {
	return s.store.Gifts().GetAll()
}

// GetGiftPage retrieves one page of concrete gifts.
func (s *ConcreteGiftService) GetGiftPage(page query.Pageable) (query.Page[models.ConcreteGift], error) {
	return s.findPage(query.GiftFilter{}, page)
}

// UpdateGift replaces every mutable field of an existing concrete gift,
// including its suggestion, and re-checks the price against the target band.
func (s *ConcreteGiftService) UpdateGift(id string, in models.ConcreteGiftInput) (*models.ConcreteGift, error) {
	log.Printf("Updating concrete gift with ID: %s", id)
	if err := requireID(id); err != nil {
		return nil, err
	}

	var updated *models.ConcreteGift
	err := s.store.WithinTx(func(tx repositories.Store) error {
		existing, err := tx.Gifts().GetByID(id)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		in.ApplyTo(existing)

		suggestion, err := tx.Suggestions().GetByID(existing.GiftSuggestionID)
		if err != nil {
			return err
		}
		if err := checkAssociation(existing, suggestion); err != nil {
			return err
		}
		if err := tx.Gifts().Update(existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully updated concrete gift with ID: %s", id)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventGiftUpdated, EntityID: id, SuggestionID: updated.GiftSuggestionID,
	})
	return updated, nil
}

// DeleteGift deletes a concrete gift. The parent suggestion is untouched.
func (s *ConcreteGiftService) DeleteGift(id string) error {
	log.Printf("Deleting concrete gift with ID: %s", id)
	if err := requireID(id); err != nil {
		return err
	}
	gift, err := s.store.Gifts().GetByID(id)
	if err != nil {
		return err
	}
	if err := s.store.Gifts().Delete(id); err != nil {
		return err
	}

	log.Printf("Successfully deleted concrete gift with ID: %s", id)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventGiftDeleted, EntityID: id, SuggestionID: gift.GiftSuggestionID,
	})
	return nil
}

// GiftExists reports whether the id is stored. A blank id never exists.
func (s *ConcreteGiftService) GiftExists(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	return s.store.Gifts().Exists(id)
}

// ValidateAssociation checks that gift's price lies inside suggestion's band.
func (s *ConcreteGiftService) ValidateAssociation(gift *models.ConcreteGift, suggestion *models.GiftSuggestion) error {
	return checkAssociation(gift, suggestion)
}

func (s *ConcreteGiftService) FindBySuggestionID(suggestionID string) ([]models.ConcreteGift, error) {
	return s.findBy(query.GiftCriteria{GiftSuggestionID: &suggestionID})
}

// FindBySuggestion lists the gifts of an already loaded suggestion.
func (s *ConcreteGiftService) FindBySuggestion(suggestion *models.GiftSuggestion) ([]models.ConcreteGift, error) {
	if suggestion == nil {
		return nil, models.InvalidArgument("gift suggestion cannot be nil")
	}
	return s.FindBySuggestionID(suggestion.ID)
}

func (s *ConcreteGiftService) FindBySuggestionIDAndAvailable(suggestionID string, available bool) ([]models.ConcreteGift, error) {
	return s.findBy(query.GiftCriteria{GiftSuggestionID: &suggestionID, Available: &available})
}

// FindBySuggestionIDPage pages through the gifts of a suggestion. An unknown
// suggestion is reported as NotFound rather than an empty page.
func (s *ConcreteGiftService) FindBySuggestionIDPage(suggestionID string, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	if err := s.requireSuggestion(suggestionID); err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	return s.findPage(query.All(query.InSuggestion(suggestionID)), page)
}

func (s *ConcreteGiftService) FindBySuggestionIDAndAvailablePage(suggestionID string, available bool, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	if err := s.requireSuggestion(suggestionID); err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	return s.findPage(query.All(query.InSuggestion(suggestionID), query.AvailableIs(available)), page)
}

func (s *ConcreteGiftService) FindByVendor(vendorName string) ([]models.ConcreteGift, error) {
	return s.findBy(query.GiftCriteria{VendorName: &vendorName})
}

func (s *ConcreteGiftService) FindByAvailable(available bool) ([]models.ConcreteGift, error) {
	return s.findBy(query.GiftCriteria{Available: &available})
}

func (s *ConcreteGiftService) FindAllAvailable() ([]models.ConcreteGift, error) {
	return s.FindByAvailable(true)
}

func (s *ConcreteGiftService) FindAllUnavailable() ([]models.ConcreteGift, error) {
	return s.FindByAvailable(false)
}

// FindByPriceRange returns the gifts priced within [minPrice, maxPrice], bounds included.
func (s *ConcreteGiftService) FindByPriceRange(minPrice, maxPrice float64) ([]models.ConcreteGift, error) {
	log.Printf("Finding concrete gifts priced %.2f - %.2f", minPrice, maxPrice)
	if err := models.CheckPriceRange(&minPrice, &maxPrice); err != nil {
		return nil, models.RangeAsArgument(err)
	}
	return s.findBy(query.GiftCriteria{MinPrice: &minPrice, MaxPrice: &maxPrice})
}

func (s *ConcreteGiftService) FindByVendorAndAvailable(vendorName string, available bool) ([]models.ConcreteGift, error) {
	return s.findBy(query.GiftCriteria{VendorName: &vendorName, Available: &available})
}

func (s *ConcreteGiftService) FindByVendorAndAvailablePage(vendorName string, available bool, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	return s.FindByAdvancedCriteria(query.GiftCriteria{VendorName: &vendorName, Available: &available}, page)
}

// CountByVendorAndAvailable counts with optional vendor and availability filters.
func (s *ConcreteGiftService) CountByVendorAndAvailable(vendorName *string, available *bool) (int64, error) {
	return s.CountByAdvancedCriteria(query.GiftCriteria{VendorName: vendorName, Available: available})
}

// FindByAdvancedCriteria pages through the gifts matching every set criterion.
func (s *ConcreteGiftService) FindByAdvancedCriteria(criteria query.GiftCriteria, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	if err := criteria.Validate(); err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	return s.findPage(criteria.Filter(), page)
}

// CountByAdvancedCriteria counts with the same predicate as FindByAdvancedCriteria.
func (s *ConcreteGiftService) CountByAdvancedCriteria(criteria query.GiftCriteria) (int64, error) {
	if err := criteria.Validate(); err != nil {
		return 0, err
	}
	return s.store.Gifts().Count(criteria.Filter())
}

// FindBySuggestionAndCriteria filters gifts by their own fields and by the
// category fields of their suggestion.
func (s *ConcreteGiftService) FindBySuggestionAndCriteria(criteria query.JoinedGiftCriteria, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	if err := criteria.Validate(); err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	return s.findPage(criteria.Filter(), page)
}

func (s *ConcreteGiftService) CountBySuggestionAndCriteria(criteria query.JoinedGiftCriteria) (int64, error) {
	if err := criteria.Validate(); err != nil {
		return 0, err
	}
	return s.store.Gifts().Count(criteria.Filter())
}

// CountBySuggestionID counts the gifts owned by a suggestion.
func (s *ConcreteGiftService) CountBySuggestionID(suggestionID string) (int64, error) {
	if err := requireID(suggestionID); err != nil {
		return 0, err
	}
	return s.store.Gifts().Count(query.All(query.InSuggestion(suggestionID)))
}

func (s *ConcreteGiftService) requireSuggestion(id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	exists, err := s.store.Suggestions().Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("gift suggestion", id)
	}
	return nil
}

func (s *ConcreteGiftService) findBy(criteria query.GiftCriteria) ([]models.ConcreteGift, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return s.store.Gifts().Find(criteria.Filter())
}

func (s *ConcreteGiftService) findPage(filter query.GiftFilter, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	if err := page.Validate(); err != nil {
		return query.Page[models.ConcreteGift]{}, err
	}
	return s.store.Gifts().FindPage(filter, page)
}

// checkAssociation is the price band rule between a gift and its suggestion.
func checkAssociation(gift *models.ConcreteGift, suggestion *models.GiftSuggestion) error {
	if gift == nil || suggestion == nil {
		return models.InvalidArgument("concrete gift and gift suggestion are required")
	}
	if gift.ExactPrice < suggestion.MinPrice {
		return &models.PriceOutOfRangeError{Price: gift.ExactPrice, Bound: "minimum", Limit: suggestion.MinPrice}
	}
	if gift.ExactPrice > suggestion.MaxPrice {
		return &models.PriceOutOfRangeError{Price: gift.ExactPrice, Bound: "maximum", Limit: suggestion.MaxPrice}
	}
	return nil
}

package services

import (
	"log"
	"strings"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"
	"giftcatalog/internal/repositories"
)

// GiftSuggestionService handles business logic related to gift suggestions.
type GiftSuggestionService struct {
	store     repositories.Store
	publisher EventPublisher
}

// NewGiftSuggestionService creates a new GiftSuggestionService. publisher may be nil.
func NewGiftSuggestionService(store repositories.Store, publisher EventPublisher) *GiftSuggestionService {
	return &GiftSuggestionService{
		store:     store,
		publisher: publisher,
	}
}

// CreateSuggestion validates and stores a new gift suggestion. The caller may
// not choose the id.
func (s *GiftSuggestionService) CreateSuggestion(in models.GiftSuggestionInput) (*models.GiftSuggestion, error) {
	log.Printf("Creating gift suggestion: %s", in.Name)
	if in.ID != "" {
		return nil, models.InvalidArgument("gift suggestion ID must be empty for creation")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	suggestion := &models.GiftSuggestion{}
	in.ApplyTo(suggestion)
	if err := s.store.Suggestions().Create(suggestion); err != nil {
		return nil, err
	}

	log.Printf("Successfully created gift suggestion with ID: %s", suggestion.ID)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventSuggestionCreated, EntityID: suggestion.ID, SuggestionID: suggestion.ID,
	})
	return suggestion, nil
}

// GetSuggestionByID retrieves a single gift suggestion.
func (s *GiftSuggestionService) GetSuggestionByID(id string) (*models.GiftSuggestion, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.store.Suggestions().GetByID(id)
}

// GetAllSuggestions retrieves every gift suggestion.
func (s *GiftSuggestionService) GetAllSuggestions() ([]models.GiftSuggestion, error) {
	return s.store.Suggestions().GetAll()
}

// GetSuggestionPage retrieves one page of gift suggestions.
func (s *GiftSuggestionService) GetSuggestionPage(page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	return s.findPage(query.SuggestionFilter{}, page)
}

// UpdateSuggestion replaces every mutable field of an existing suggestion.
// The new band must still contain the price of every gift the suggestion owns.
func (s *GiftSuggestionService) UpdateSuggestion(id string, in models.GiftSuggestionInput) (*models.GiftSuggestion, error) {
	log.Printf("Updating gift suggestion with ID: %s", id)
	if err := requireID(id); err != nil {
		return nil, err
	}

	var updated *models.GiftSuggestion
	err := s.store.WithinTx(func(tx repositories.Store) error {
		existing, err := tx.Suggestions().GetByID(id)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		in.ApplyTo(existing)

		children, err := tx.Gifts().Find(query.All(query.InSuggestion(id)))
		if err != nil {
			return err
		}
		for i := range children {
			if err := checkAssociation(&children[i], existing); err != nil {
				return err
			}
		}

		if err := tx.Suggestions().Update(existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully updated gift suggestion with ID: %s", id)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventSuggestionUpdated, EntityID: id, SuggestionID: id,
	})
	return updated, nil
}

// DeleteSuggestion deletes a suggestion and every concrete gift it owns in one transaction.
func (s *GiftSuggestionService) DeleteSuggestion(id string) error {
	log.Printf("Deleting gift suggestion with ID: %s", id)
	if err := requireID(id); err != nil {
		return err
	}

	var removed int64
	err := s.store.WithinTx(func(tx repositories.Store) error {
		exists, err := tx.Suggestions().Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewNotFoundError("gift suggestion", id)
		}
		if removed, err = tx.Gifts().DeleteBySuggestionID(id); err != nil {
			return err
		}
		return tx.Suggestions().Delete(id)
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully deleted gift suggestion with ID: %s (%d concrete gifts removed)", id, removed)
	publishEvent(s.publisher, models.CatalogEvent{
		Type: models.EventSuggestionDeleted, EntityID: id, SuggestionID: id, Removed: removed,
	})
	return nil
}

// SuggestionExists reports whether the id is stored. A blank id never exists.
func (s *GiftSuggestionService) SuggestionExists(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	return s.store.Suggestions().Exists(id)
}

func (s *GiftSuggestionService) FindByAgeGroup(ageGroup models.AgeGroup) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{AgeGroup: &ageGroup})
}

func (s *GiftSuggestionService) FindByGender(gender models.Gender) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Gender: &gender})
}

func (s *GiftSuggestionService) FindByInterest(interest models.Interest) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Interest: &interest})
}

func (s *GiftSuggestionService) FindByOccasion(occasion models.Occasion) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Occasion: &occasion})
}

func (s *GiftSuggestionService) FindByRelationship(relationship models.Relationship) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Relationship: &relationship})
}

func (s *GiftSuggestionService) FindByPersonalityType(personalityType models.PersonalityType) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{PersonalityType: &personalityType})
}

func (s *GiftSuggestionService) FindByAgeGroupAndGender(ageGroup models.AgeGroup, gender models.Gender) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{AgeGroup: &ageGroup, Gender: &gender})
}

func (s *GiftSuggestionService) FindByAgeGroupAndInterest(ageGroup models.AgeGroup, interest models.Interest) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{AgeGroup: &ageGroup, Interest: &interest})
}

func (s *GiftSuggestionService) FindByGenderAndInterest(gender models.Gender, interest models.Interest) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Gender: &gender, Interest: &interest})
}

func (s *GiftSuggestionService) FindByOccasionAndRelationship(occasion models.Occasion, relationship models.Relationship) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{Occasion: &occasion, Relationship: &relationship})
}

func (s *GiftSuggestionService) FindByAgeGroupGenderAndInterest(ageGroup models.AgeGroup, gender models.Gender, interest models.Interest) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{AgeGroup: &ageGroup, Gender: &gender, Interest: &interest})
}

// FindByAgeGroupGenderInterestAndOccasion is the paged four-category shorthand.
func (s *GiftSuggestionService) FindByAgeGroupGenderInterestAndOccasion(ageGroup models.AgeGroup, gender models.Gender, interest models.Interest, occasion models.Occasion, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	return s.FindByAdvancedCriteria(query.SuggestionCriteria{
		AgeGroup: &ageGroup, Gender: &gender, Interest: &interest, Occasion: &occasion,
	}, page)
}

// FindGiftsWithinBudget returns the suggestions whose band overlaps [minBudget, maxBudget].
func (s *GiftSuggestionService) FindGiftsWithinBudget(minBudget, maxBudget float64) ([]models.GiftSuggestion, error) {
	log.Printf("Finding gift suggestions within budget: %.2f - %.2f", minBudget, maxBudget)
	if err := models.CheckPriceRange(&minBudget, &maxBudget); err != nil {
		return nil, models.RangeAsArgument(err)
	}
	return s.store.Suggestions().Find(query.All(query.BandOverlaps(minBudget, maxBudget)))
}

// FindGiftsWithinBudgetPage is the paged form of FindGiftsWithinBudget.
func (s *GiftSuggestionService) FindGiftsWithinBudgetPage(minBudget, maxBudget float64, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	if err := models.CheckPriceRange(&minBudget, &maxBudget); err != nil {
		return query.Page[models.GiftSuggestion]{}, models.RangeAsArgument(err)
	}
	return s.findPage(query.All(query.BandOverlaps(minBudget, maxBudget)), page)
}

// FindAffordableGifts returns the suggestions whose minimum price fits the budget.
func (s *GiftSuggestionService) FindAffordableGifts(budget float64) ([]models.GiftSuggestion, error) {
	return s.findBy(query.SuggestionCriteria{MaxBudget: &budget})
}

// FindByAdvancedCriteria pages through the suggestions matching every set criterion.
func (s *GiftSuggestionService) FindByAdvancedCriteria(criteria query.SuggestionCriteria, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	if err := criteria.Validate(); err != nil {
		return query.Page[models.GiftSuggestion]{}, err
	}
	return s.findPage(criteria.Filter(), page)
}

// CountByAdvancedCriteria counts with the same predicate as FindByAdvancedCriteria.
func (s *GiftSuggestionService) CountByAdvancedCriteria(criteria query.SuggestionCriteria) (int64, error) {
	if err := criteria.Validate(); err != nil {
		return 0, err
	}
	return s.store.Suggestions().Count(criteria.Filter())
}

func (s *GiftSuggestionService) findBy(criteria query.SuggestionCriteria) ([]models.GiftSuggestion, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return s.store.Suggestions().Find(criteria.Filter())
}

func (s *GiftSuggestionService) findPage(filter query.SuggestionFilter, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	if err := page.Validate(); err != nil {
		return query.Page[models.GiftSuggestion]{}, err
	}
	return s.store.Suggestions().FindPage(filter, page)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return models.InvalidArgument("ID cannot be empty")
	}
	return nil
}

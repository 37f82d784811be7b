package services_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"
	"giftcatalog/internal/repositories"
	"giftcatalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func price(v float64) *float64 { return &v }

func ptr[T any](v T) *T { return &v }

func suggestionInput(name string, minPrice, maxPrice float64) models.GiftSuggestionInput {
	return models.GiftSuggestionInput{
		Name:            name,
		Description:     name + " for someone special",
		MinPrice:        price(minPrice),
		MaxPrice:        price(maxPrice),
		AgeGroup:        models.AgeGroupAdult,
		Gender:          models.GenderUnisex,
		Interest:        models.InterestMusic,
		Occasion:        models.OccasionBirthday,
		Relationship:    models.RelationshipFriend,
		PersonalityType: models.PersonalityCreative,
	}
}

func giftInput(name string, exactPrice float64, suggestionID string) models.ConcreteGiftInput {
	return models.ConcreteGiftInput{
		Name:             name,
		ExactPrice:       price(exactPrice),
		VendorName:       "Amazon",
		ProductURL:       "https://example.com/" + name,
		GiftSuggestionID: suggestionID,
	}
}

type catalog struct {
	store       repositories.Store
	suggestions *services.GiftSuggestionService
	gifts       *services.ConcreteGiftService
}

func newCatalog(publisher services.EventPublisher) catalog {
	store := repositories.NewMemoryStore()
	return catalog{
		store:       store,
		suggestions: services.NewGiftSuggestionService(store, publisher),
		gifts:       services.NewConcreteGiftService(store, publisher),
	}
}

func (c catalog) mustSuggestion(t *testing.T, in models.GiftSuggestionInput) *models.GiftSuggestion {
	t.Helper()
	created, err := c.suggestions.CreateSuggestion(in)
	require.NoError(t, err)
	return created
}

func (c catalog) mustGift(t *testing.T, in models.ConcreteGiftInput) *models.ConcreteGift {
	t.Helper()
	created, err := c.gifts.CreateGift(in)
	require.NoError(t, err)
	return created
}

func TestGiftSuggestionService_CreateSuggestion(t *testing.T) {
	c := newCatalog(nil)

	created, err := c.suggestions.CreateSuggestion(suggestionInput("Headphones", 10, 100))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Headphones", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := c.suggestions.GetSuggestionByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestGiftSuggestionService_CreateRejectsPresetID(t *testing.T) {
	c := newCatalog(nil)
	in := suggestionInput("Headphones", 10, 100)
	in.ID = "chosen-by-caller"

	_, err := c.suggestions.CreateSuggestion(in)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_CreateRejectsInvertedBand(t *testing.T) {
	c := newCatalog(nil)

	_, err := c.suggestions.CreateSuggestion(suggestionInput("Headphones", 100, 10))
	require.ErrorIs(t, err, models.ErrValidation)
	var validationErr *models.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "minPrice", validationErr.Field)

	all, err := c.suggestions.GetAllSuggestions()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGiftSuggestionService_GetByIDIsIdempotent(t *testing.T) {
	c := newCatalog(nil)
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))

	first, err := c.suggestions.GetSuggestionByID(created.ID)
	require.NoError(t, err)
	second, err := c.suggestions.GetSuggestionByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = c.suggestions.GetSuggestionByID("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = c.suggestions.GetSuggestionByID(" ")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_UpdateSuggestion(t *testing.T) {
	c := newCatalog(nil)
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))

	in := suggestionInput("Studio Headphones", 20, 300)
	in.Interest = models.InterestTechnology
	updated, err := c.suggestions.UpdateSuggestion(created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Studio Headphones", updated.Name)
	assert.Equal(t, models.InterestTechnology, updated.Interest)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = c.suggestions.UpdateSuggestion("missing", in)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = c.suggestions.UpdateSuggestion(created.ID, suggestionInput("Bad", 50, 5))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGiftSuggestionService_UpdateKeepsChildrenInBand(t *testing.T) {
	c := newCatalog(nil)
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))
	c.mustGift(t, giftInput("Sony", 80, created.ID))

	_, err := c.suggestions.UpdateSuggestion(created.ID, suggestionInput("Headphones", 10, 50))
	require.ErrorIs(t, err, models.ErrPriceOutOfRange)
	assert.Contains(t, err.Error(), "above maximum price")

	unchanged, err := c.suggestions.GetSuggestionByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, unchanged.MaxPrice)
}

func TestGiftSuggestionService_DeleteCascades(t *testing.T) {
	c := newCatalog(nil)
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))
	other := c.mustSuggestion(t, suggestionInput("Books", 5, 50))
	c.mustGift(t, giftInput("Sony", 50, created.ID))
	c.mustGift(t, giftInput("Bose", 90, created.ID))
	kept := c.mustGift(t, giftInput("Novel", 15, other.ID))

	require.NoError(t, c.suggestions.DeleteSuggestion(created.ID))

	count, err := c.gifts.CountBySuggestionID(created.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	exists, err := c.gifts.GiftExists(kept.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, c.suggestions.DeleteSuggestion(created.ID), models.ErrNotFound)
}

func TestGiftSuggestionService_SuggestionExists(t *testing.T) {
	c := newCatalog(nil)
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))

	exists, err := c.suggestions.SuggestionExists(created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.suggestions.SuggestionExists("")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = c.suggestions.SuggestionExists("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGiftSuggestionService_Pagination(t *testing.T) {
	c := newCatalog(nil)
	for i := range 5 {
		c.mustSuggestion(t, suggestionInput(fmt.Sprintf("Suggestion %d", i), 10, 100))
	}

	first, err := c.suggestions.GetSuggestionPage(query.PageOf(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Content, 2)

	last, err := c.suggestions.GetSuggestionPage(query.PageOf(2, 2))
	require.NoError(t, err)
	assert.Len(t, last.Content, 1)
	assert.True(t, last.Last)

	_, err = c.suggestions.GetSuggestionPage(query.PageOf(-1, 2))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.GetSuggestionPage(query.PageOf(0, 0))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_FindGiftsWithinBudget(t *testing.T) {
	c := newCatalog(nil)
	overlapping := c.mustSuggestion(t, suggestionInput("Overlapping", 25, 50))
	c.mustSuggestion(t, suggestionInput("Expensive", 100, 200))

	found, err := c.suggestions.FindGiftsWithinBudget(20, 40)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, overlapping.ID, found[0].ID)

	page, err := c.suggestions.FindGiftsWithinBudgetPage(20, 40, query.PageOf(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	_, err = c.suggestions.FindGiftsWithinBudget(40, 20)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.FindGiftsWithinBudget(0, 20)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.FindGiftsWithinBudget(math.NaN(), math.NaN())
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.FindGiftsWithinBudget(1, math.Inf(1))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.FindGiftsWithinBudgetPage(math.NaN(), 40, query.PageOf(0, 10))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_FindAffordableGifts(t *testing.T) {
	c := newCatalog(nil)
	c.mustSuggestion(t, suggestionInput("Cheap", 5, 15))
	c.mustSuggestion(t, suggestionInput("Exact", 30, 60))
	c.mustSuggestion(t, suggestionInput("Luxury", 300, 900))

	found, err := c.suggestions.FindAffordableGifts(30)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cheap", "Exact"}, suggestionNames(found))

	_, err = c.suggestions.FindAffordableGifts(-1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.suggestions.FindAffordableGifts(math.NaN())
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_CategoryFinders(t *testing.T) {
	c := newCatalog(nil)
	teen := suggestionInput("Skateboard", 40, 120)
	teen.AgeGroup = models.AgeGroupTeen
	teen.Gender = models.GenderMale
	teen.Interest = models.InterestSports
	teen.Occasion = models.OccasionGraduation
	teen.Relationship = models.RelationshipFamily
	teen.PersonalityType = models.PersonalityAdventurous
	c.mustSuggestion(t, teen)
	c.mustSuggestion(t, suggestionInput("Vinyl", 20, 60))

	tests := []struct {
		name string
		find func() ([]models.GiftSuggestion, error)
		want []string
	}{
		{"age group", func() ([]models.GiftSuggestion, error) { return c.suggestions.FindByAgeGroup(models.AgeGroupTeen) }, []string{"Skateboard"}},
		{"gender", func() ([]models.GiftSuggestion, error) { return c.suggestions.FindByGender(models.GenderUnisex) }, []string{"Vinyl"}},
		{"interest", func() ([]models.GiftSuggestion, error) { return c.suggestions.FindByInterest(models.InterestSports) }, []string{"Skateboard"}},
		{"occasion", func() ([]models.GiftSuggestion, error) { return c.suggestions.FindByOccasion(models.OccasionBirthday) }, []string{"Vinyl"}},
		{"relationship", func() ([]models.GiftSuggestion, error) { return c.suggestions.FindByRelationship(models.RelationshipFamily) }, []string{"Skateboard"}},
		{"personality", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByPersonalityType(models.PersonalityCreative)
		}, []string{"Vinyl"}},
		{"age and gender", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByAgeGroupAndGender(models.AgeGroupTeen, models.GenderMale)
		}, []string{"Skateboard"}},
		{"age and interest mismatch", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByAgeGroupAndInterest(models.AgeGroupTeen, models.InterestMusic)
		}, []string{}},
		{"gender and interest", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByGenderAndInterest(models.GenderUnisex, models.InterestMusic)
		}, []string{"Vinyl"}},
		{"occasion and relationship", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByOccasionAndRelationship(models.OccasionGraduation, models.RelationshipFamily)
		}, []string{"Skateboard"}},
		{"age gender interest", func() ([]models.GiftSuggestion, error) {
			return c.suggestions.FindByAgeGroupGenderAndInterest(models.AgeGroupAdult, models.GenderUnisex, models.InterestMusic)
		}, []string{"Vinyl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := tt.find()
			require.NoError(t, err)
			assert.Equal(t, tt.want, suggestionNames(found))
		})
	}

	_, err := c.suggestions.FindByGender(models.Gender("ROBOT"))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_FourCategoryPage(t *testing.T) {
	c := newCatalog(nil)
	c.mustSuggestion(t, suggestionInput("Vinyl", 20, 60))
	c.mustSuggestion(t, suggestionInput("Concert tickets", 50, 200))

	page, err := c.suggestions.FindByAgeGroupGenderInterestAndOccasion(
		models.AgeGroupAdult, models.GenderUnisex, models.InterestMusic, models.OccasionBirthday,
		query.PageOf(0, 1, query.Order{Field: "name"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, []string{"Concert tickets"}, suggestionNames(page.Content))
}

func TestGiftSuggestionService_AdvancedCriteria(t *testing.T) {
	c := newCatalog(nil)
	for i := range 4 {
		c.mustSuggestion(t, suggestionInput(fmt.Sprintf("Music %d", i), float64(10*(i+1)), 200))
	}
	gaming := suggestionInput("Console", 250, 500)
	gaming.Interest = models.InterestGaming
	c.mustSuggestion(t, gaming)

	all, err := c.suggestions.FindByAdvancedCriteria(query.SuggestionCriteria{}, query.PageOf(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.TotalElements)
	assert.Equal(t, 3, all.TotalPages)

	criteria := query.SuggestionCriteria{Interest: ptr(models.InterestMusic), MaxBudget: ptr(25.0)}
	found, err := c.suggestions.FindByAdvancedCriteria(criteria, query.PageOf(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Music 0", "Music 1"}, suggestionNames(found.Content))

	count, err := c.suggestions.CountByAdvancedCriteria(criteria)
	require.NoError(t, err)
	assert.Equal(t, found.TotalElements, count)

	_, err = c.suggestions.CountByAdvancedCriteria(query.SuggestionCriteria{MaxBudget: ptr(0.0)})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGiftSuggestionService_PublishesEvents(t *testing.T) {
	publisher := new(MockPublisher)
	c := newCatalog(publisher)

	publisher.On("Publish", services.CatalogExchange, models.EventSuggestionCreated, mock.Anything).Return(nil).Once()
	created := c.mustSuggestion(t, suggestionInput("Headphones", 10, 100))

	publisher.On("Publish", services.CatalogExchange, models.EventSuggestionUpdated, mock.Anything).Return(nil).Once()
	_, err := c.suggestions.UpdateSuggestion(created.ID, suggestionInput("Headphones", 10, 150))
	require.NoError(t, err)

	publisher.On("Publish", services.CatalogExchange, models.EventSuggestionDeleted, mock.MatchedBy(func(body []byte) bool {
		var event models.CatalogEvent
		return json.Unmarshal(body, &event) == nil && event.EntityID == created.ID && !event.OccurredAt.IsZero()
	})).Return(nil).Once()
	require.NoError(t, c.suggestions.DeleteSuggestion(created.ID))

	publisher.AssertExpectations(t)
}

func TestGiftSuggestionService_PublishFailureDoesNotFailWrite(t *testing.T) {
	publisher := new(MockPublisher)
	c := newCatalog(publisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	created, err := c.suggestions.CreateSuggestion(suggestionInput("Headphones", 10, 100))
	require.NoError(t, err)

	exists, err := c.suggestions.SuggestionExists(created.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGiftSuggestionService_FailedWriteDoesNotPublish(t *testing.T) {
	publisher := new(MockPublisher)
	c := newCatalog(publisher)

	_, err := c.suggestions.CreateSuggestion(suggestionInput("Headphones", 100, 10))
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func suggestionNames(items []models.GiftSuggestion) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

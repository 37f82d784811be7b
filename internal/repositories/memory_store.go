package repositories

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"giftcatalog/internal/models"
	"giftcatalog/internal/query"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store. Records live in an
// arena keyed by id; each suggestion slot indexes the ids of its concrete
// gifts instead of holding pointers to them.
type MemoryStore struct {
	mu    sync.RWMutex
	arena *arena
	now   func() time.Time
}

type arena struct {
	seq         uint64
	suggestions map[string]*suggestionSlot
	gifts       map[string]*giftSlot
}

type suggestionSlot struct {
	record   models.GiftSuggestion
	seq      uint64
	children map[string]struct{}
}

type giftSlot struct {
	record models.ConcreteGift
	seq    uint64
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		arena: &arena{
			suggestions: make(map[string]*suggestionSlot),
			gifts:       make(map[string]*giftSlot),
		},
		now: time.Now,
	}
}

func (s *MemoryStore) Suggestions() GiftSuggestionRepository {
	return &memorySuggestions{store: s}
}

func (s *MemoryStore) Gifts() ConcreteGiftRepository {
	return &memoryGifts{store: s}
}

// WithinTx holds the write lock for the whole of fn and restores a snapshot
// of the arena if fn fails.
func (s *MemoryStore) WithinTx(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.arena.clone()
	if err := fn(&memoryTx{store: s}); err != nil {
		s.arena = snapshot
		return err
	}
	return nil
}

// memoryTx is the view handed to WithinTx callbacks; the lock is already held.
type memoryTx struct {
	store *MemoryStore
}

func (t *memoryTx) Suggestions() GiftSuggestionRepository {
	return &memorySuggestions{store: t.store, inTx: true}
}

func (t *memoryTx) Gifts() ConcreteGiftRepository {
	return &memoryGifts{store: t.store, inTx: true}
}

func (t *memoryTx) WithinTx(fn func(tx Store) error) error {
	return fn(t)
}

func (s *MemoryStore) read(inTx bool, fn func(a *arena) error) error {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.arena)
}

func (s *MemoryStore) write(inTx bool, fn func(a *arena) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.arena)
}

func (a *arena) clone() *arena {
	c := &arena{
		seq:         a.seq,
		suggestions: make(map[string]*suggestionSlot, len(a.suggestions)),
		gifts:       make(map[string]*giftSlot, len(a.gifts)),
	}
	for id, slot := range a.suggestions {
		copied := *slot
		copied.children = maps.Clone(slot.children)
		c.suggestions[id] = &copied
	}
	for id, slot := range a.gifts {
		copied := *slot
		c.gifts[id] = &copied
	}
	return c
}

func (a *arena) next() uint64 {
	a.seq++
	return a.seq
}

// suggestionsInOrder returns copies of every suggestion in insertion order.
func (a *arena) suggestionsInOrder() []*models.GiftSuggestion {
	slots := slices.SortedFunc(maps.Values(a.suggestions), func(x, y *suggestionSlot) int {
		return cmp.Compare(x.seq, y.seq)
	})
	out := make([]*models.GiftSuggestion, 0, len(slots))
	for _, slot := range slots {
		record := slot.record
		out = append(out, &record)
	}
	return out
}

// giftRowsInOrder returns copies of every gift, joined to its parent, in insertion order.
func (a *arena) giftRowsInOrder() []query.GiftRow {
	slots := slices.SortedFunc(maps.Values(a.gifts), func(x, y *giftSlot) int {
		return cmp.Compare(x.seq, y.seq)
	})
	out := make([]query.GiftRow, 0, len(slots))
	for _, slot := range slots {
		gift := slot.record
		row := query.GiftRow{Gift: &gift}
		if parent, ok := a.suggestions[gift.GiftSuggestionID]; ok {
			suggestion := parent.record
			row.Suggestion = &suggestion
		}
		out = append(out, row)
	}
	return out
}

type memorySuggestions struct {
	store *MemoryStore
	inTx  bool
}

func (r *memorySuggestions) GetAll() ([]models.GiftSuggestion, error) {
	return r.Find(query.SuggestionFilter{})
}

func (r *memorySuggestions) GetByID(id string) (*models.GiftSuggestion, error) {
	var found *models.GiftSuggestion
	err := r.store.read(r.inTx, func(a *arena) error {
		slot, ok := a.suggestions[id]
		if !ok {
			return models.NewNotFoundError(suggestionEntity, id)
		}
		record := slot.record
		found = &record
		return nil
	})
	return found, err
}

func (r *memorySuggestions) Exists(id string) (bool, error) {
	var ok bool
	err := r.store.read(r.inTx, func(a *arena) error {
		_, ok = a.suggestions[id]
		return nil
	})
	return ok, err
}

func (r *memorySuggestions) Create(suggestion *models.GiftSuggestion) error {
	if err := suggestion.CheckBand(); err != nil {
		return fmt.Errorf("failed to create gift suggestion: %w", err)
	}
	return r.store.write(r.inTx, func(a *arena) error {
		if suggestion.ID == "" {
			suggestion.ID = uuid.New().String()
		}
		if _, taken := a.suggestions[suggestion.ID]; taken {
			return fmt.Errorf("failed to create gift suggestion: ID %s already exists", suggestion.ID)
		}
		now := r.store.now()
		suggestion.CreatedAt = now
		suggestion.UpdatedAt = now
		a.suggestions[suggestion.ID] = &suggestionSlot{
			record:   *suggestion,
			seq:      a.next(),
			children: make(map[string]struct{}),
		}
		return nil
	})
}

func (r *memorySuggestions) Update(suggestion *models.GiftSuggestion) error {
	if err := suggestion.CheckBand(); err != nil {
		return fmt.Errorf("failed to update gift suggestion: %w", err)
	}
	return r.store.write(r.inTx, func(a *arena) error {
		slot, ok := a.suggestions[suggestion.ID]
		if !ok {
			return models.NewNotFoundError(suggestionEntity, suggestion.ID)
		}
		suggestion.CreatedAt = slot.record.CreatedAt
		suggestion.UpdatedAt = r.store.now()
		slot.record = *suggestion
		return nil
	})
}

// Delete removes the suggestion together with every gift it owns.
func (r *memorySuggestions) Delete(id string) error {
	return r.store.write(r.inTx, func(a *arena) error {
		slot, ok := a.suggestions[id]
		if !ok {
			return models.NewNotFoundError(suggestionEntity, id)
		}
		for childID := range slot.children {
			delete(a.gifts, childID)
		}
		delete(a.suggestions, id)
		return nil
	})
}

func (r *memorySuggestions) Find(filter query.SuggestionFilter) ([]models.GiftSuggestion, error) {
	var out []models.GiftSuggestion
	err := r.store.read(r.inTx, func(a *arena) error {
		out = derefAll(matching(a.suggestionsInOrder(), filter))
		return nil
	})
	return out, err
}

func (r *memorySuggestions) FindPage(filter query.SuggestionFilter, page query.Pageable) (query.Page[models.GiftSuggestion], error) {
	var result query.Page[models.GiftSuggestion]
	err := r.store.read(r.inTx, func(a *arena) error {
		hits := matching(a.suggestionsInOrder(), filter)
		if err := query.SuggestionSorts.Sort(hits, page); err != nil {
			return err
		}
		result = query.NewPage(derefAll(query.Slice(hits, page)), page, int64(len(hits)))
		return nil
	})
	return result, err
}

func (r *memorySuggestions) Count(filter query.SuggestionFilter) (int64, error) {
	var total int64
	err := r.store.read(r.inTx, func(a *arena) error {
		total = int64(len(matching(a.suggestionsInOrder(), filter)))
		return nil
	})
	return total, err
}

type memoryGifts struct {
	store *MemoryStore
	inTx  bool
}

func (r *memoryGifts) GetAll() ([]models.ConcreteGift, error) {
	return r.Find(query.GiftFilter{})
}

func (r *memoryGifts) GetByID(id string) (*models.ConcreteGift, error) {
	var found *models.ConcreteGift
	err := r.store.read(r.inTx, func(a *arena) error {
		slot, ok := a.gifts[id]
		if !ok {
			return models.NewNotFoundError(giftEntity, id)
		}
		record := slot.record
		found = &record
		return nil
	})
	return found, err
}

func (r *memoryGifts) Exists(id string) (bool, error) {
	var ok bool
	err := r.store.read(r.inTx, func(a *arena) error {
		_, ok = a.gifts[id]
		return nil
	})
	return ok, err
}

// Create stores the gift and indexes it under its parent, which must exist.
func (r *memoryGifts) Create(gift *models.ConcreteGift) error {
	if err := gift.Check(); err != nil {
		return fmt.Errorf("failed to create concrete gift: %w", err)
	}
	return r.store.write(r.inTx, func(a *arena) error {
		parent, ok := a.suggestions[gift.GiftSuggestionID]
		if !ok {
			return models.NewNotFoundError(suggestionEntity, gift.GiftSuggestionID)
		}
		if gift.ID == "" {
			gift.ID = uuid.New().String()
		}
		if _, taken := a.gifts[gift.ID]; taken {
			return fmt.Errorf("failed to create concrete gift: ID %s already exists", gift.ID)
		}
		now := r.store.now()
		gift.CreatedAt = now
		gift.UpdatedAt = now
		a.gifts[gift.ID] = &giftSlot{record: *gift, seq: a.next()}
		parent.children[gift.ID] = struct{}{}
		return nil
	})
}

// Update replaces the gift and moves it in the child index when re-associated.
func (r *memoryGifts) Update(gift *models.ConcreteGift) error {
	if err := gift.Check(); err != nil {
		return fmt.Errorf("failed to update concrete gift: %w", err)
	}
	return r.store.write(r.inTx, func(a *arena) error {
		slot, ok := a.gifts[gift.ID]
		if !ok {
			return models.NewNotFoundError(giftEntity, gift.ID)
		}
		parent, ok := a.suggestions[gift.GiftSuggestionID]
		if !ok {
			return models.NewNotFoundError(suggestionEntity, gift.GiftSuggestionID)
		}
		if previous := slot.record.GiftSuggestionID; previous != gift.GiftSuggestionID {
			if old, ok := a.suggestions[previous]; ok {
				delete(old.children, gift.ID)
			}
			parent.children[gift.ID] = struct{}{}
		}
		gift.CreatedAt = slot.record.CreatedAt
		gift.UpdatedAt = r.store.now()
		slot.record = *gift
		return nil
	})
}

func (r *memoryGifts) Delete(id string) error {
	return r.store.write(r.inTx, func(a *arena) error {
		slot, ok := a.gifts[id]
		if !ok {
			return models.NewNotFoundError(giftEntity, id)
		}
		if parent, ok := a.suggestions[slot.record.GiftSuggestionID]; ok {
			delete(parent.children, id)
		}
		delete(a.gifts, id)
		return nil
	})
}

func (r *memoryGifts) DeleteBySuggestionID(suggestionID string) (int64, error) {
	var removed int64
	err := r.store.write(r.inTx, func(a *arena) error {
		parent, ok := a.suggestions[suggestionID]
		if !ok {
			return nil
		}
		for childID := range parent.children {
			delete(a.gifts, childID)
			removed++
		}
		clear(parent.children)
		return nil
	})
	return removed, err
}

func (r *memoryGifts) Find(filter query.GiftFilter) ([]models.ConcreteGift, error) {
	var out []models.ConcreteGift
	err := r.store.read(r.inTx, func(a *arena) error {
		out = giftsOf(matching(a.giftRowsInOrder(), filter))
		return nil
	})
	return out, err
}

func (r *memoryGifts) FindPage(filter query.GiftFilter, page query.Pageable) (query.Page[models.ConcreteGift], error) {
	var result query.Page[models.ConcreteGift]
	err := r.store.read(r.inTx, func(a *arena) error {
		hits := matching(a.giftRowsInOrder(), filter)
		if err := query.GiftSorts.Sort(hits, page); err != nil {
			return err
		}
		result = query.NewPage(giftsOf(query.Slice(hits, page)), page, int64(len(hits)))
		return nil
	})
	return result, err
}

func (r *memoryGifts) Count(filter query.GiftFilter) (int64, error) {
	var total int64
	err := r.store.read(r.inTx, func(a *arena) error {
		total = int64(len(matching(a.giftRowsInOrder(), filter)))
		return nil
	})
	return total, err
}

func matching[T any](items []T, filter query.Filter[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func derefAll(items []*models.GiftSuggestion) []models.GiftSuggestion {
	out := make([]models.GiftSuggestion, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}

func giftsOf(rows []query.GiftRow) []models.ConcreteGift {
	out := make([]models.ConcreteGift, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.Gift)
	}
	return out
}

package query

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"giftcatalog/internal/models"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts by one named field.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Pageable is a page request. Page is zero-based.
type Pageable struct {
	Page int     `json:"page"`
	Size int     `json:"size"`
	Sort []Order `json:"sort,omitempty"`
}

// PageOf builds a Pageable.
func PageOf(page, size int, sort ...Order) Pageable {
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Validate enforces page >= 0 and size >= 1.
func (p Pageable) Validate() error {
	if p.Page < 0 {
		return models.InvalidArgument("page index must not be negative, got %d", p.Page)
	}
	if p.Size < 1 {
		return models.InvalidArgument("page size must be at least 1, got %d", p.Size)
	}
	for _, o := range p.Sort {
		if d := Direction(strings.ToUpper(string(o.Direction))); d != "" && d != Asc && d != Desc {
			return models.InvalidArgument("unknown sort direction %q", o.Direction)
		}
	}
	return nil
}

// Offset is the number of records before this page. It saturates at
// math.MaxInt-Size so a huge page index selects an empty page.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	limit := math.MaxInt - p.Size
	if p.Page > limit/p.Size {
		return limit
	}
	return p.Page * p.Size
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
}

// NewPage assembles page metadata. A page index past the end yields an empty
// content slice with the real totals.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:          content,
		Number:           p.Page,
		Size:             p.Size,
		NumberOfElements: len(content),
		TotalElements:    total,
		TotalPages:       totalPages,
		First:            p.Page == 0,
		Last:             p.Page >= totalPages-1,
	}
}

// Slice returns the part of items that p selects.
func Slice[T any](items []T, p Pageable) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.Size, len(items))
	return items[start:end]
}

// SortField maps a public sort name to a column and an in-memory comparison.
type SortField[T any] struct {
	Column  string
	Compare func(a, b T) int
}

// Sorter is the set of fields a record type may be sorted by.
type Sorter[T any] map[string]SortField[T]

// OrderClauses returns SQL ORDER BY terms for p, followed by the deterministic
// created_at, id tiebreak.
func (s Sorter[T]) OrderClauses(p Pageable) ([]string, error) {
	clauses := make([]string, 0, len(p.Sort)+2)
	for _, o := range p.Sort {
		field, ok := s[o.Field]
		if !ok {
			return nil, models.InvalidArgument("cannot sort by %q", o.Field)
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", field.Column, direction(o)))
	}
	return append(clauses, "created_at ASC", "id ASC"), nil
}

// Sort orders items in place. Items are expected in insertion order; the sort
// is stable so insertion order breaks ties.
func (s Sorter[T]) Sort(items []T, p Pageable) error {
	fields := make([]SortField[T], 0, len(p.Sort))
	desc := make([]bool, 0, len(p.Sort))
	for _, o := range p.Sort {
		field, ok := s[o.Field]
		if !ok {
			return models.InvalidArgument("cannot sort by %q", o.Field)
		}
		fields = append(fields, field)
		desc = append(desc, direction(o) == Desc)
	}
	if len(fields) == 0 {
		return nil
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for i, field := range fields {
			c := field.Compare(a, b)
			if desc[i] {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

func direction(o Order) Direction {
	if strings.EqualFold(string(o.Direction), string(Desc)) {
		return Desc
	}
	return Asc
}

// SuggestionSorts are the sortable suggestion fields.
var SuggestionSorts = Sorter[*models.GiftSuggestion]{
	"name":      {Column: "name", Compare: func(a, b *models.GiftSuggestion) int { return cmp.Compare(a.Name, b.Name) }},
	"minPrice":  {Column: "min_price", Compare: func(a, b *models.GiftSuggestion) int { return cmp.Compare(a.MinPrice, b.MinPrice) }},
	"maxPrice":  {Column: "max_price", Compare: func(a, b *models.GiftSuggestion) int { return cmp.Compare(a.MaxPrice, b.MaxPrice) }},
	"createdAt": {Column: "created_at", Compare: func(a, b *models.GiftSuggestion) int { return a.CreatedAt.Compare(b.CreatedAt) }},
	"updatedAt": {Column: "updated_at", Compare: func(a, b *models.GiftSuggestion) int { return a.UpdatedAt.Compare(b.UpdatedAt) }},
}

// GiftSorts are the sortable concrete gift fields.
var GiftSorts = Sorter[GiftRow]{
	"name":       {Column: "name", Compare: func(a, b GiftRow) int { return cmp.Compare(a.Gift.Name, b.Gift.Name) }},
	"exactPrice": {Column: "exact_price", Compare: func(a, b GiftRow) int { return cmp.Compare(a.Gift.ExactPrice, b.Gift.ExactPrice) }},
	"vendorName": {Column: "vendor_name", Compare: func(a, b GiftRow) int { return cmp.Compare(a.Gift.VendorName, b.Gift.VendorName) }},
	"createdAt":  {Column: "created_at", Compare: func(a, b GiftRow) int { return a.Gift.CreatedAt.Compare(b.Gift.CreatedAt) }},
	"updatedAt":  {Column: "updated_at", Compare: func(a, b GiftRow) int { return a.Gift.UpdatedAt.Compare(b.Gift.UpdatedAt) }},
}

// Package query builds the optional, AND-combined filters used by every catalog
// search. A filter runs both as a GORM scope and as an in-memory matcher, so the
// SQL and arena stores give identical answers for the same criteria.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// Predicate is one filter condition. Clause and Args are the SQL form; Match is
// the same condition evaluated against a loaded record.
type Predicate[T any] struct {
	Clause string
	Args   []any
	Match  func(T) bool
}

// Where creates a Predicate.
func Where[T any](clause string, match func(T) bool, args ...any) Predicate[T] {
	return Predicate[T]{Clause: clause, Args: args, Match: match}
}

// Filter is a conjunction of predicates. The zero value matches everything.
type Filter[T any] struct {
	predicates []Predicate[T]
}

// All returns a filter built from preds.
func All[T any](preds ...Predicate[T]) Filter[T] {
	return Filter[T]{}.And(preds...)
}

// And returns a new filter with preds appended; f is not modified.
func (f Filter[T]) And(preds ...Predicate[T]) Filter[T] {
	next := make([]Predicate[T], 0, len(f.predicates)+len(preds))
	next = append(next, f.predicates...)
	next = append(next, preds...)
	return Filter[T]{predicates: next}
}

// Len is the number of applied predicates.
func (f Filter[T]) Len() int {
	return len(f.predicates)
}

// Matches reports whether v satisfies every predicate.
func (f Filter[T]) Matches(v T) bool {
	for _, p := range f.predicates {
		if !p.Match(v) {
			return false
		}
	}
	return true
}

// Scope applies the filter to a GORM query, for use with db.Scopes.
func (f Filter[T]) Scope(db *gorm.DB) *gorm.DB {
	for _, p := range f.predicates {
		db = db.Where(p.Clause, p.Args...)
	}
	return db
}

// SQL renders the filter as a single parenthesised condition and its arguments.
// An empty filter renders as "1 = 1".
func (f Filter[T]) SQL() (string, []any) {
	if len(f.predicates) == 0 {
		return "1 = 1", nil
	}
	clauses := make([]string, 0, len(f.predicates))
	var args []any
	for _, p := range f.predicates {
		clauses = append(clauses, "("+p.Clause+")")
		args = append(args, p.Args...)
	}
	return strings.Join(clauses, " AND "), args
}

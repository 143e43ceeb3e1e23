package query

import "strings"

// Predicate reports whether an item belongs in a view.
type Predicate[T any] func(T) bool

// All returns a predicate that holds when every p holds. With no predicates
// it matches everything.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Filter returns the items that satisfy keep, in input order. The result is
// always a new slice.
func Filter[T any](items []T, keep Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// TextMatch matches items where any field contains term, ignoring case. An
// empty term matches everything.
func TextMatch[T any](term string, fields ...func(T) string) Predicate[T] {
	needle := strings.ToLower(term)
	return func(item T) bool {
		if needle == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose field is exactly want. An empty want matches
// everything.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		return want == "" || field(item) == want
	}
}

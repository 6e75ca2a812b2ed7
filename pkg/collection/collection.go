// Package collection provides generic, functional-style helpers for slices —
// Map, Filter, First, GroupBy, Pluck, Reduce, Contains, SortBy.
//
// The order pipeline leans on these heavily, e.g. grouping checkout lines by
// their seller:
//
//	bySeller := collection.GroupBy(orders, func(o models.Order) string {
//	    return o.SellerID.Hex()
//	})
package collection

import "sort"

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, and whether one was found.
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GroupBy partitions s into a map keyed by fn(element), preserving the
// original element order within each group.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// Pluck extracts one field from every element.
func Pluck[T, R any](s []T, fn func(T) R) []R {
	return Map(s, fn)
}

// Reduce folds s into a single value starting from init.
func Reduce[T, R any](s []T, init R, fn func(R, T) R) R {
	acc := init
	for _, v := range s {
		acc = fn(acc, v)
	}
	return acc
}

// Contains reports whether any element satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// SortBy returns a copy of s sorted ascending by the key fn extracts.
func SortBy[T any, K int | int64 | float64 | string](s []T, fn func(T) K) []T {
	out := make([]T, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return fn(out[i]) < fn(out[j]) })
	return out
}

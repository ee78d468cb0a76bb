// pkg/util/generic.go

package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Select returns a if sel is true, otherwise b.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// FlattenMap takes a map and returns separate slices corresponding to
// the keys and values stored in the map, with the i'th key
// corresponding to the i'th value.
func FlattenMap[K comparable, V any](m map[K]V) ([]K, []V) {
	keys := make([]K, 0, len(m))
	values := make([]V, 0, len(m))
	for k, v := range m {
		keys = append(keys, k)
		values = append(values, v)
	}
	return keys, values
}

// SortedMapKeys returns the keys of the given map, sorted from low to
// high. Used by stats.FleetStats.Types so that per-type keys come out
// in a deterministic order despite Go's randomized map iteration.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys, _ := FlattenMap(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// MapSlice returns the slice that is the result of applying the
// provided xform function to all of the elements of the given slice.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	var to []T
	for _, item := range from {
		to = append(to, xform(item))
	}
	return to
}

// FilterSlice applies the given filter function pred to the given
// slice, returning a new slice that only contains elements where pred
// returned true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var filtered []V
	for _, item := range s {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

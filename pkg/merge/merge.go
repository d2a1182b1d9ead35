package merge

import (
	"maps"
	"slices"
)

// Value applies the scalar rule: specific wins when set, otherwise a copy of general.
func Value[T any](specific, general *T) *T {
	if specific != nil {
		return specific
	}
	if general == nil {
		return nil
	}
	v := *general
	return &v
}

// String applies the scalar rule to string-like fields, where "" is unset.
func String[T ~string](specific, general T) T {
	if specific != "" {
		return specific
	}
	return general
}

// KeyedList returns the entries of specific, in order, followed by every entry of
// general whose key is not already present. The result never holds two entries
// with the same key that did not both come from specific.
func KeyedList[T any](specific, general []T, key func(T) string) []T {
	out := slices.Clone(specific)
	if len(general) == 0 {
		return out
	}

	seen := make(map[string]struct{}, len(specific)+len(general))
	for _, item := range specific {
		seen[key(item)] = struct{}{}
	}
	for _, item := range general {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Map returns specific plus every pair of general whose key is absent from specific.
func Map[M ~map[K]V, K comparable, V any](specific, general M) M {
	out := maps.Clone(specific)
	for k, v := range general {
		if out == nil {
			out = make(M, len(general))
		}
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Union returns the distinct values of specific followed by the distinct values of
// general not already present. Nil is returned only when both inputs are nil.
func Union[T comparable](specific, general []T) []T {
	if specific == nil && general == nil {
		return nil
	}

	out := make([]T, 0, len(specific)+len(general))
	seen := make(map[T]struct{}, cap(out))
	for _, list := range [][]T{specific, general} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

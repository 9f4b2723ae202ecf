package utils

import "sort"

// Map each element in sli with mapper.
//
// The element indexed N in the result is mapper(sli[N]).
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// Map over sli with mapper which can fail.
//
// On the first error, it returns (nil, error). Otherwise (mapped slice, nil).
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// Filter sli down to elements where pred holds.
func Filter[T any](sli []T, pred func(v T) bool) []T {
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if pred(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// convert slice to map, keyed with getkey.
//
// If keys collide, the value coming later takes over the previous one.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := map[K]T{}
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

// flatten map to the slice of its keys. Ordering is not guaranteed.
func KeysOf[T any, K comparable](m map[K]T) []K {
	sli := make([]K, 0, len(m))
	for k := range m {
		sli = append(sli, k)
	}
	return sli
}

// SortedKeysOf is KeysOf + sort, for stable iteration and output.
func SortedKeysOf[T any](m map[string]T) []string {
	keys := KeysOf(m)
	sort.Strings(keys)
	return keys
}

// Concat slices into one.
func Concat[T any](slis ...[]T) []T {
	total := 0
	for _, s := range slis {
		total += len(s)
	}
	ret := make([]T, 0, total)
	for _, s := range slis {
		ret = append(ret, s...)
	}
	return ret
}

// ApplyAll applies each option function to v in order.
func ApplyAll[T any](v T, options ...func(T) T) T {
	for _, opt := range options {
		v = opt(v)
	}
	return v
}

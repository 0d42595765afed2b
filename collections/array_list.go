package collections

import (
	"cmp"
	"slices"
)

// ArrayList is a dynamic array that can be sorted and bisected by a key
// extracted from each element.
type ArrayList[T any, K cmp.Ordered] struct {
	data  []T
	keyOf func(T) K
}

// NewArrayList returns an empty list ordered by keyOf.
func NewArrayList[T any, K cmp.Ordered](keyOf func(T) K) *ArrayList[T, K] {
	return &ArrayList[T, K]{keyOf: keyOf}
}

func (a *ArrayList[T, K]) Len() int       { return len(a.data) }
func (a *ArrayList[T, K]) Get(i int) T    { return a.data[i] }
func (a *ArrayList[T, K]) Set(i int, v T) { a.data[i] = v }
func (a *ArrayList[T, K]) Append(v T)     { a.data = append(a.data, v) }
func (a *ArrayList[T, K]) Values() []T    { return slices.Clone(a.data) }

// RemoveAt deletes and returns the element at index i.
func (a *ArrayList[T, K]) RemoveAt(i int) T {
	v := a.data[i]
	a.data = slices.Delete(a.data, i, i+1)
	return v
}

// FindFirst returns the first element matching pred.
func (a *ArrayList[T, K]) FindFirst(pred func(T) bool) (T, bool) {
	for _, v := range a.data {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// RemoveFirst deletes the first element matching pred.
func (a *ArrayList[T, K]) RemoveFirst(pred func(T) bool) (T, bool) {
	for i, v := range a.data {
		if pred(v) {
			return a.RemoveAt(i), true
		}
	}
	var zero T
	return zero, false
}

// SortInPlace orders the elements by key. Elements with equal keys keep
// their relative order.
func (a *ArrayList[T, K]) SortInPlace() {
	slices.SortStableFunc(a.data, func(x, y T) int {
		return cmp.Compare(a.keyOf(x), a.keyOf(y))
	})
}

// BinarySearch returns the index of an element whose key equals key, or -1.
// The list must already be sorted by the same key; the result is undefined
// otherwise.
func (a *ArrayList[T, K]) BinarySearch(key K) int {
	lo, hi := 0, len(a.data)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		k := a.keyOf(a.data[mid])
		switch {
		case k == key:
			return mid
		case k < key:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// Package events holds a day-keyed multi-map of event records.
package events

import (
	"reflect"
	"sort"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// Index maps calendar days to ordered event lists.
// Every insert and lookup goes through dateutil.KeyOf, so the time of day of
// the dates passed in never matters. Index is not safe for concurrent use.
type Index[T any] struct {
	days  map[dateutil.DayKey][]T
	equal func(a, b T) bool
}

// Option configures an Index
type Option[T any] func(*Index[T])

// WithEqual overrides the equality used by Remove (reflect.DeepEqual by default)
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(idx *Index[T]) {
		idx.equal = equal
	}
}

// New creates an empty Index
func New[T any](opts ...Option[T]) *Index[T] {
	idx := &Index[T]{
		days: make(map[dateutil.DayKey][]T),
		equal: func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		},
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Add appends event to the day of date
func (idx *Index[T]) Add(date time.Time, event T) {
	key := dateutil.KeyOf(date)
	idx.days[key] = append(idx.days[key], event)
}

// AddAll appends events after any existing entries of the day
func (idx *Index[T]) AddAll(date time.Time, events []T) {
	key := dateutil.KeyOf(date)
	list, ok := idx.days[key]
	if !ok {
		list = make([]T, 0, len(events))
	}
	idx.days[key] = append(list, events...)
}

// Remove deletes the first entry of the day equal to event.
// The day keeps an empty list when its last entry is removed.
func (idx *Index[T]) Remove(date time.Time, event T) bool {
	key := dateutil.KeyOf(date)
	list, ok := idx.days[key]
	if !ok {
		return false
	}
	for i := range list {
		if idx.equal(list[i], event) {
			idx.days[key] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll drops the day and returns its entries (empty if none)
func (idx *Index[T]) RemoveAll(date time.Time) []T {
	key := dateutil.KeyOf(date)
	list, ok := idx.days[key]
	if !ok {
		return []T{}
	}
	delete(idx.days, key)
	return list
}

// Clear empties the index
func (idx *Index[T]) Clear() {
	idx.days = make(map[dateutil.DayKey][]T)
}

// Events returns a copy of the day's entries in insertion order
func (idx *Index[T]) Events(date time.Time) []T {
	list := idx.days[dateutil.KeyOf(date)]
	out := make([]T, len(list))
	copy(out, list)
	return out
}

// Has reports whether the day has at least one entry
func (idx *Index[T]) Has(date time.Time) bool {
	return len(idx.days[dateutil.KeyOf(date)]) > 0
}

// Days returns the keys held by the index in ascending order, including
// days whose list was emptied through Remove
func (idx *Index[T]) Days() []dateutil.DayKey {
	keys := make([]dateutil.DayKey, 0, len(idx.days))
	for k := range idx.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	return keys
}

// All returns every entry, day by day in ascending order
func (idx *Index[T]) All() []T {
	var out []T
	for _, k := range idx.Days() {
		out = append(out, idx.days[k]...)
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// Len returns the total number of entries
func (idx *Index[T]) Len() int {
	n := 0
	for _, list := range idx.days {
		n += len(list)
	}
	return n
}

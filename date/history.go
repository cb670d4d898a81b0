package date

import (
	"iter"
	"slices"
)

// History is a chronological series of values, at most one per date.
// Its zero value is an empty history.
type History[T any] struct {
	days   []Date
	values []T
}

func compareDates(a, b Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// search returns the index of day, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, compareDates)
}

// Len returns the number of dates in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append sets the value on a date, replacing any previous value on that date.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Delete removes the value on a date and reports whether there was one.
func (h *History[T]) Delete(on Date) bool {
	i, found := h.search(on)
	if !found {
		return false
	}
	h.days = slices.Delete(h.days, i, i+1)
	h.values = slices.Delete(h.values, i, i+1)
	return true
}

// Get returns the value on day.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on day, or the most recent one before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Latest returns the last date and its value, zero values when empty.
func (h *History[T]) Latest() (Date, T) {
	if len(h.days) == 0 {
		var zero T
		return Date{}, zero
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// Values iterates over the history in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

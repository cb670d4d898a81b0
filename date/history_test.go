package date

import (
	"slices"
	"testing"
)

func TestHistory_Append(t *testing.T) {
	var h History[string]
	h.Append(New(2025, 7, 1), "jul 25").
		Append(New(2024, 7, 1), "jul 24").
		Append(New(2024, 12, 1), "dec 24")

	var gotDays []Date
	var gotValues []string
	for d, v := range h.Values() {
		gotDays = append(gotDays, d)
		gotValues = append(gotValues, v)
	}
	wantDays := []Date{New(2024, 7, 1), New(2024, 12, 1), New(2025, 7, 1)}
	if !slices.Equal(gotDays, wantDays) {
		t.Errorf("Values() days = %v, want %v", gotDays, wantDays)
	}
	if want := []string{"jul 24", "dec 24", "jul 25"}; !slices.Equal(gotValues, want) {
		t.Errorf("Values() values = %v, want %v", gotValues, want)
	}

	h.Append(New(2024, 12, 1), "replaced")
	if h.Len() != 3 {
		t.Errorf("Len() after replace = %d, want 3", h.Len())
	}
	if got, _ := h.Get(New(2024, 12, 1)); got != "replaced" {
		t.Errorf("Get() = %q, want %q", got, "replaced")
	}
}

func TestHistory_Delete(t *testing.T) {
	var h History[int]
	h.Append(New(2024, 1, 1), 1).Append(New(2024, 2, 1), 2)

	if h.Delete(New(2024, 3, 1)) {
		t.Error("Delete(missing) = true, want false")
	}
	if !h.Delete(New(2024, 1, 1)) {
		t.Error("Delete(existing) = false, want true")
	}
	if _, ok := h.Get(New(2024, 1, 1)); ok {
		t.Error("Get(deleted) found a value")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_ValueAsOf(t *testing.T) {
	var h History[int]
	h.Append(New(2024, 3, 1), 3).Append(New(2024, 1, 1), 1)

	tests := []struct {
		on     Date
		want   int
		wantOk bool
	}{
		{New(2023, 12, 31), 0, false},
		{New(2024, 1, 1), 1, true},
		{New(2024, 2, 15), 1, true},
		{New(2024, 3, 1), 3, true},
		{New(2025, 1, 1), 3, true},
	}
	for _, tt := range tests {
		got, ok := h.ValueAsOf(tt.on)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ValueAsOf(%v) = %v, %v, want %v, %v", tt.on, got, ok, tt.want, tt.wantOk)
		}
	}

	if day, v := h.Latest(); day != New(2024, 3, 1) || v != 3 {
		t.Errorf("Latest() = %v, %v, want 2024-03-01, 3", day, v)
	}
}

package history

import "testing"

func TestFreshHistoryIsEmpty(t *testing.T) {
	var h History

	if !h.Empty() {
		t.Fatalf("Empty() = false, want true")
	}
	if got := h.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
	if h.Wrapped() {
		t.Fatalf("Wrapped() = true, want false")
	}
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	var h History

	const n = 5
	for i := 0; i < n; i++ {
		h.Append(float32(i), float32(i)+50)
	}

	if h.Empty() {
		t.Fatalf("Empty() = true after %d appends", n)
	}
	if h.Wrapped() {
		t.Fatalf("Wrapped() = true after %d appends", n)
	}
	if got := h.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}
	for i := 0; i < n; i++ {
		s := h.At(i)
		if s.CPU != float32(i) || s.Memory != float32(i)+50 {
			t.Fatalf("At(%d) = %+v, want {%d %d}", i, s, i, i+50)
		}
	}
}

func TestWrapAfterCapacityAppends(t *testing.T) {
	var h History

	for i := 0; i < Capacity; i++ {
		h.Append(float32(i%100), float32((i+1)%100))
	}

	if !h.Wrapped() {
		t.Fatalf("Wrapped() = false after %d appends", Capacity)
	}
	if got := h.Len(); got != Capacity {
		t.Fatalf("Len() = %d, want %d", got, Capacity)
	}
	if got := h.At(0).CPU; got != 0 {
		t.Fatalf("At(0).CPU = %v, want 0", got)
	}

	// One more append silently overwrites the oldest entry.
	h.Append(77, 78)
	if got := h.Len(); got != Capacity {
		t.Fatalf("Len() = %d after overwrite, want %d", got, Capacity)
	}
	if got := h.At(0).CPU; got != 1 {
		t.Fatalf("At(0).CPU = %v after overwrite, want 1", got)
	}
	if got := h.At(Capacity - 1); got.CPU != 77 || got.Memory != 78 {
		t.Fatalf("At(%d) = %+v, want {77 78}", Capacity-1, got)
	}
}

func TestAtIsIdempotent(t *testing.T) {
	var h History

	for i := 0; i < 30; i++ {
		h.Append(float32(i), float32(29-i))
	}

	first := make([]Sample, h.Len())
	for i := range first {
		first[i] = h.At(i)
	}
	for i := range first {
		if got := h.At(i); got != first[i] {
			t.Fatalf("At(%d) second read = %+v, want %+v", i, got, first[i])
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	var h History
	h.Append(10, 20)

	if got := h.At(-1); got != (Sample{}) {
		t.Fatalf("At(-1) = %+v, want zero sample", got)
	}
	if got := h.At(1); got != (Sample{}) {
		t.Fatalf("At(1) = %+v, want zero sample", got)
	}
}

// Package history stores the rolling telemetry series behind the chart
// layouts.
package history

// Capacity is the fixed number of retained samples (about four minutes at
// one sample per two-second poll).
const Capacity = 120

// Sample is one polled pair of percentages. Immutable once appended.
type Sample struct {
	CPU    float32
	Memory float32
}

// History is a fixed-capacity ring of samples. Oldest entries are
// overwritten silently once the ring is full; storage never grows and no
// allocation happens after creation.
//
// Both series live in one entry and share one cursor, so they advance in
// lock-step by construction: one poll is exactly one Append covering both.
type History struct {
	buf     [Capacity]Sample
	cursor  int
	wrapped bool
}

// Append stores both values at the cursor and advances it, setting the
// wrap flag when the cursor returns to zero. Values are stored as-is;
// clamping out-of-range input is the caller's contract.
func (h *History) Append(cpu, mem float32) {
	h.buf[h.cursor] = Sample{CPU: cpu, Memory: mem}
	h.cursor++
	if h.cursor == Capacity {
		h.cursor = 0
		h.wrapped = true
	}
}

// Len returns the number of stored samples: the cursor before the first
// wrap, Capacity afterwards.
func (h *History) Len() int {
	if h.wrapped {
		return Capacity
	}
	return h.cursor
}

// At returns the i-th stored sample in oldest-to-newest order. Reads do
// not disturb the ring: repeated calls without an intervening Append
// return identical values. Out-of-range indexes yield the zero Sample.
func (h *History) At(i int) Sample {
	if i < 0 || i >= h.Len() {
		return Sample{}
	}
	if h.wrapped {
		i += h.cursor
		if i >= Capacity {
			i -= Capacity
		}
	}
	return h.buf[i]
}

// Empty reports whether no sample has ever been appended.
func (h *History) Empty() bool { return h.cursor == 0 && !h.wrapped }

// Wrapped reports whether the ring has been filled at least once.
func (h *History) Wrapped() bool { return h.wrapped }

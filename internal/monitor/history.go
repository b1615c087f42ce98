package monitor

// DefaultHistorySize is the default number of player counts retained per server.
const DefaultHistorySize = 60

// History is a fixed-capacity ring buffer of player counts. When full, the
// oldest sample is evicted. History is not safe for concurrent use; the
// owning monitor guards it.
type History struct {
	data  []int
	head  int
	count int
}

// NewHistory creates a history with the given capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{data: make([]int, size)}
}

// Push appends a sample, evicting the oldest when at capacity.
func (h *History) Push(value int) {
	h.data[h.head] = value
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Last returns up to n most recent samples, oldest first.
func (h *History) Last(n int) []int {
	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	size := len(h.data)
	result := make([]int, n)
	// head is the next write position, so the newest sample is at head-1.
	start := (h.head - n + size) % size
	for i := 0; i < n; i++ {
		result[i] = h.data[(start+i)%size]
	}
	return result
}

// All returns every retained sample, oldest first.
func (h *History) All() []int {
	return h.Last(h.count)
}

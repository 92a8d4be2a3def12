package processor

// Window is a generic fixed-capacity FIFO buffer. Appending past capacity
// evicts the oldest element, so the window always holds the most recent
// items in arrival order.
type Window[T any] struct {
	capacity int
	items    []T
}

// NewWindow creates a window holding at most capacity elements.
func NewWindow[T any](capacity int) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Window[T]{capacity: capacity, items: make([]T, 0, capacity+1)}
}

// Append adds an element, evicting the oldest one if the window is full.
func (w *Window[T]) Append(item T) {
	w.items = append(w.items, item)
	if len(w.items) > w.capacity {
		w.items = w.items[1:]
	}
}

// Items returns a copy of the window contents, oldest first.
func (w *Window[T]) Items() []T {
	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of buffered elements.
func (w *Window[T]) Len() int {
	return len(w.items)
}

// Cap returns the window capacity.
func (w *Window[T]) Cap() int {
	return w.capacity
}

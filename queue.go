package async

// A queue is a growable FIFO queue.
//
// Popped slots are zeroed so the queue does not pin popped elements, and
// the backing slice is reset for reuse whenever the queue drains.
type queue[E any] struct {
	items []E
	next  int
}

func (q *queue[E]) Empty() bool {
	return q.next == len(q.items)
}

func (q *queue[E]) Len() int {
	return len(q.items) - q.next
}

func (q *queue[E]) Push(v E) {
	q.items = append(q.items, v)
}

func (q *queue[E]) Pop() (v E, ok bool) {
	if q.next == len(q.items) {
		return v, false
	}

	q.items[q.next], v = v, q.items[q.next]
	q.next++

	if q.next == len(q.items) {
		q.items, q.next = q.items[:0], 0
	}

	return v, true
}

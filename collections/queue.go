package collections

// Queue is an unbounded FIFO container.
type Queue[T any] struct {
	data []T
}

func NewQueue[T any]() *Queue[T] { return &Queue[T]{} }

func (q *Queue[T]) Enqueue(v T)   { q.data = append(q.data, v) }
func (q *Queue[T]) Len() int      { return len(q.data) }
func (q *Queue[T]) IsEmpty() bool { return len(q.data) == 0 }

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if len(q.data) == 0 {
		var zero T
		return zero, ErrEmptyCollection
	}
	return q.data[0], nil
}

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, error) {
	v, err := q.Peek()
	if err != nil {
		return v, err
	}
	var zero T
	q.data[0] = zero
	q.data = q.data[1:]
	return v, nil
}

// RemoveFirst deletes the element closest to the front that matches pred.
func (q *Queue[T]) RemoveFirst(pred func(T) bool) (T, bool) {
	for i, v := range q.data {
		if pred(v) {
			q.data = append(q.data[:i:i], q.data[i+1:]...)
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Values returns the elements from front to back.
func (q *Queue[T]) Values() []T {
	out := make([]T, len(q.data))
	copy(out, q.data)
	return out
}

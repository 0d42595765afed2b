package collections

// Stack is a LIFO container.
type Stack[T any] struct {
	data []T
}

func NewStack[T any]() *Stack[T] { return &Stack[T]{} }

func (s *Stack[T]) Push(v T)      { s.data = append(s.data, v) }
func (s *Stack[T]) Len() int      { return len(s.data) }
func (s *Stack[T]) IsEmpty() bool { return len(s.data) == 0 }

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	if len(s.data) == 0 {
		var zero T
		return zero, ErrEmptyCollection
	}
	return s.data[len(s.data)-1], nil
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	v, err := s.Peek()
	if err != nil {
		return v, err
	}
	var zero T
	s.data[len(s.data)-1] = zero
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

// Values returns the elements from bottom to top.
func (s *Stack[T]) Values() []T {
	out := make([]T, len(s.data))
	copy(out, s.data)
	return out
}

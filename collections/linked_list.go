package collections

type listNode[T any] struct {
	value T
	next  *listNode[T]
}

// LinkedList is a singly linked list with O(1) insertion at the head.
type LinkedList[T any] struct {
	head *listNode[T]
	size int
}

func NewLinkedList[T any]() *LinkedList[T] { return &LinkedList[T]{} }

func (l *LinkedList[T]) Len() int { return l.size }

// PushFront inserts v before the current head.
func (l *LinkedList[T]) PushFront(v T) {
	l.head = &listNode[T]{value: v, next: l.head}
	l.size++
}

// PopFront removes the head element.
func (l *LinkedList[T]) PopFront() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmptyCollection
	}
	v := l.head.value
	l.head = l.head.next
	l.size--
	return v, nil
}

// FindFirst scans from the head and stops at the first match.
func (l *LinkedList[T]) FindFirst(pred func(T) bool) (T, bool) {
	for cur := l.head; cur != nil; cur = cur.next {
		if pred(cur.value) {
			return cur.value, true
		}
	}
	var zero T
	return zero, false
}

// RemoveFirst unlinks the first element matching pred. An empty list or a
// list without a match is left untouched.
func (l *LinkedList[T]) RemoveFirst(pred func(T) bool) (T, bool) {
	var prev *listNode[T]
	for cur := l.head; cur != nil; prev, cur = cur, cur.next {
		if !pred(cur.value) {
			continue
		}
		if prev == nil {
			l.head = cur.next
		} else {
			prev.next = cur.next
		}
		l.size--
		return cur.value, true
	}
	var zero T
	return zero, false
}

// Values returns the elements from head to tail.
func (l *LinkedList[T]) Values() []T {
	out := make([]T, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.value)
	}
	return out
}

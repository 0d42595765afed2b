package collections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
}

func byID(it item) string { return it.id }

func TestArrayList_SortAndBinarySearch(t *testing.T) {
	list := NewArrayList(byID)
	for _, id := range []string{"978-3", "978-1", "978-5", "978-2", "978-4"} {
		list.Append(item{id: id, name: "book " + id})
		list.SortInPlace()
	}

	require.Equal(t, 5, list.Len())
	for i := 0; i < list.Len()-1; i++ {
		assert.Less(t, list.Get(i).id, list.Get(i+1).id)
	}

	assert.Equal(t, 0, list.BinarySearch("978-1"))
	assert.Equal(t, 2, list.BinarySearch("978-3"))
	assert.Equal(t, 4, list.BinarySearch("978-5"))
	assert.Equal(t, -1, list.BinarySearch("978-0"))
	assert.Equal(t, -1, list.BinarySearch("978-9"))
}

func TestArrayList_BinarySearchEmpty(t *testing.T) {
	assert.Equal(t, -1, NewArrayList(byID).BinarySearch("x"))
}

func TestArrayList_SortIsStable(t *testing.T) {
	list := NewArrayList(byID)
	list.Append(item{id: "b", name: "first"})
	list.Append(item{id: "a", name: "a"})
	list.Append(item{id: "b", name: "second"})
	list.SortInPlace()

	names := make([]string, 0, list.Len())
	for _, it := range list.Values() {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"a", "first", "second"}, names)
}

func TestArrayList_FindAndRemove(t *testing.T) {
	list := NewArrayList(byID)
	list.Append(item{id: "1", name: "one"})
	list.Append(item{id: "2", name: "two"})
	list.Append(item{id: "3", name: "three"})

	got, ok := list.FindFirst(func(it item) bool { return strings.HasPrefix(it.name, "t") })
	require.True(t, ok)
	assert.Equal(t, "2", got.id)

	removed, ok := list.RemoveFirst(func(it item) bool { return it.id == "2" })
	require.True(t, ok)
	assert.Equal(t, "two", removed.name)
	assert.Equal(t, 2, list.Len())

	_, ok = list.RemoveFirst(func(it item) bool { return it.id == "2" })
	assert.False(t, ok)

	assert.Equal(t, "one", list.RemoveAt(0).name)
	list.Set(0, item{id: "9", name: "nine"})
	assert.Equal(t, "nine", list.Get(0).name)
}

func TestLinkedList(t *testing.T) {
	t.Run("push front keeps newest first", func(t *testing.T) {
		l := NewLinkedList[string]()
		l.PushFront("U1")
		l.PushFront("U2")
		l.PushFront("U3")
		assert.Equal(t, []string{"U3", "U2", "U1"}, l.Values())
		assert.Equal(t, 3, l.Len())
	})

	t.Run("find first", func(t *testing.T) {
		l := NewLinkedList[string]()
		l.PushFront("U1")
		l.PushFront("U2")

		v, ok := l.FindFirst(func(s string) bool { return s == "U1" })
		require.True(t, ok)
		assert.Equal(t, "U1", v)

		_, ok = l.FindFirst(func(s string) bool { return s == "U9" })
		assert.False(t, ok)
	})

	t.Run("remove head and middle", func(t *testing.T) {
		l := NewLinkedList[string]()
		for _, s := range []string{"a", "b", "c", "d"} {
			l.PushFront(s)
		}

		v, ok := l.RemoveFirst(func(s string) bool { return s == "d" })
		require.True(t, ok)
		assert.Equal(t, "d", v)
		assert.Equal(t, []string{"c", "b", "a"}, l.Values())

		_, ok = l.RemoveFirst(func(s string) bool { return s == "b" })
		require.True(t, ok)
		assert.Equal(t, []string{"c", "a"}, l.Values())

		_, ok = l.RemoveFirst(func(s string) bool { return s == "a" })
		require.True(t, ok)
		assert.Equal(t, []string{"c"}, l.Values())
		assert.Equal(t, 1, l.Len())
	})

	t.Run("remove from empty or no match", func(t *testing.T) {
		l := NewLinkedList[int]()
		_, ok := l.RemoveFirst(func(int) bool { return true })
		assert.False(t, ok)

		l.PushFront(1)
		_, ok = l.RemoveFirst(func(v int) bool { return v == 2 })
		assert.False(t, ok)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("pop front", func(t *testing.T) {
		l := NewLinkedList[int]()
		_, err := l.PopFront()
		assert.ErrorIs(t, err, ErrEmptyCollection)

		l.PushFront(7)
		v, err := l.PopFront()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		assert.Zero(t, l.Len())
	})
}

func TestStack(t *testing.T) {
	s := NewStack[string]()
	assert.True(t, s.IsEmpty())

	_, err := s.Peek()
	assert.ErrorIs(t, err, ErrEmptyCollection)
	_, err = s.Pop()
	assert.ErrorIs(t, err, ErrEmptyCollection)

	s.Push("ADD_BOOK 978-1")
	s.Push("LOAN L00001")

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, "LOAN L00001", top)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"ADD_BOOK 978-1", "LOAN L00001"}, s.Values())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "LOAN L00001", v)
	v, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "ADD_BOOK 978-1", v)
	assert.True(t, s.IsEmpty())
}

func TestQueue(t *testing.T) {
	q := NewQueue[string]()
	assert.True(t, q.IsEmpty())

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyCollection)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrEmptyCollection)

	q.Enqueue("U1")
	q.Enqueue("U2")
	q.Enqueue("U3")

	front, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "U1", front)

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "U1", v)
	assert.Equal(t, []string{"U2", "U3"}, q.Values())

	removed, ok := q.RemoveFirst(func(s string) bool { return s == "U3" })
	require.True(t, ok)
	assert.Equal(t, "U3", removed)
	_, ok = q.RemoveFirst(func(s string) bool { return s == "U3" })
	assert.False(t, ok)

	assert.Equal(t, 1, q.Len())
}

func TestQueue_RemoveFirstOnlyFirstMatch(t *testing.T) {
	q := NewQueue[string]()
	for _, s := range []string{"U1", "U2", "U1"} {
		q.Enqueue(s)
	}
	q.RemoveFirst(func(s string) bool { return s == "U1" })
	assert.Equal(t, []string{"U2", "U1"}, q.Values())
}

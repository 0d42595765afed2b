// Package collections holds the generic containers backing the library
// services: an unbalanced binary search tree, a dynamic array with binary
// search, a singly linked list, a stack and a queue.
//
// None of the containers are safe for concurrent use.
package collections

import "errors"

// ErrEmptyCollection is returned when an element is requested from an empty
// stack, queue or linked list.
var ErrEmptyCollection = errors.New("empty collection")

// Package dirstack provides the growable LIFO used to hold open directory
// frames during a traversal.
package dirstack

// InitialCap is the capacity allocated on the first Push.
const InitialCap = 64

// Stack is a LIFO of T. The zero value is an empty stack.
type Stack[T any] struct {
	elems []T
}

// Push appends v to the top of the stack, doubling the backing storage when
// it is full.
func (s *Stack[T]) Push(v T) {
	if len(s.elems) == cap(s.elems) {
		s.grow()
	}
	s.elems = append(s.elems, v)
}

func (s *Stack[T]) grow() {
	n := InitialCap
	if c := cap(s.elems); c > 0 {
		n = c * 2
	}
	elems := make([]T, len(s.elems), n)
	copy(elems, s.elems)
	s.elems = elems
}

// Pop removes and returns the top element. ok is false if the stack is
// empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.elems) == 0 {
		return v, false
	}
	i := len(s.elems) - 1
	v = s.elems[i]
	var zero T
	s.elems[i] = zero
	s.elems = s.elems[:i]
	return v, true
}

// Peek returns the top element without removing it. It panics if the stack
// is empty.
func (s *Stack[T]) Peek() T {
	if len(s.elems) == 0 {
		panic("dirstack: Peek on empty stack")
	}
	return s.elems[len(s.elems)-1]
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return len(s.elems) == 0 }

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int { return len(s.elems) }

// Cap returns the size of the backing storage.
func (s *Stack[T]) Cap() int { return cap(s.elems) }

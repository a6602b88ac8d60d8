package dirstack

import "testing"

// TestPushPop tests LIFO order
func TestPushPop(t *testing.T) {
	var s Stack[int]
	if !s.IsEmpty() {
		t.Fatal("Expected new stack to be empty")
	}

	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}
	if top := s.Peek(); top != 4 {
		t.Errorf("Expected Peek() = 4, got %d", top)
	}

	for want := 4; want >= 0; want-- {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() reported empty, expected %d", want)
		}
		if got != want {
			t.Errorf("Pop() = %d, expected %d", got, want)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("Expected Pop() on empty stack to report not found")
	}
	if !s.IsEmpty() {
		t.Error("Expected stack to be empty")
	}
}

// TestGrowth tests the doubling growth policy
func TestGrowth(t *testing.T) {
	var s Stack[string]
	s.Push("a")
	if s.Cap() != InitialCap {
		t.Errorf("Expected initial capacity %d, got %d", InitialCap, s.Cap())
	}

	for s.Len() < InitialCap {
		s.Push("x")
	}
	if s.Cap() != InitialCap {
		t.Errorf("Expected capacity %d while not yet full, got %d", InitialCap, s.Cap())
	}

	s.Push("overflow")
	if s.Cap() != 2*InitialCap {
		t.Errorf("Expected capacity %d after growth, got %d", 2*InitialCap, s.Cap())
	}
	if s.Peek() != "overflow" {
		t.Errorf("Expected top to survive growth, got %q", s.Peek())
	}

	first := ""
	for !s.IsEmpty() {
		first, _ = s.Pop()
	}
	if first != "a" {
		t.Errorf("Expected bottom element 'a', got %q", first)
	}
}

// TestPeekEmptyPanics tests that Peek on an empty stack fails loudly
func TestPeekEmptyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected Peek() on empty stack to panic")
		}
	}()

	var s Stack[int]
	s.Peek()
}

package pathbuf

import (
	"errors"
	"strings"
	"testing"
)

// TestPushNormalization tests lexical resolution of "." and ".." segments
func TestPushNormalization(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"a/./b/../c", "a/c"},
		{"a", "a"},
		{"/", "/"},
		{"/a/b", "/a/b"},
		{"//a//b//", "/a/b"},
		{"/../a", "/a"},
		{"/a/b/../../..", "/"},
		{"a/..", "."},
		{"a/b/../../..", ".."},
		{"../a/../b", "../b"},
		{"../../x", "../../x"},
		{"./", "."},
		{"", "."},
		{"...", "..."},
		{"a/.hidden/./..b", "a/.hidden/..b"},
	}

	for _, tc := range testCases {
		b := New()
		if err := b.Push(tc.input); err != nil {
			t.Fatalf("Push(%q) failed: %v", tc.input, err)
		}
		if got := b.String(); got != tc.expected {
			t.Errorf("Push(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
		if got := b.String(); got != "/" && strings.HasSuffix(got, "/") {
			t.Errorf("Push(%q) left a trailing separator: %q", tc.input, got)
		}
	}
}

// TestPushOntoExisting tests that pushes are relative to the current content
func TestPushOntoExisting(t *testing.T) {
	b := New()
	if err := b.Set("/"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Push(".."); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if got := b.String(); got != "/" {
		t.Errorf("Expected root to absorb '..', got %q", got)
	}

	if err := b.Set("x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Push(".."); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("Expected empty buffer after cancelling 'x', got %q", b.String())
	}
	if err := b.Push(".."); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if got := b.String(); got != ".." {
		t.Errorf("Expected unresolved '..', got %q", got)
	}
	if err := b.Push(".."); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if got := b.String(); got != "../.." {
		t.Errorf("Expected '../..', got %q", got)
	}

	// A leading separator does not reset a non-empty buffer.
	if err := b.Set("a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Push("/b"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if got := b.String(); got != "a/b" {
		t.Errorf("Expected 'a/b', got %q", got)
	}
}

// TestPop tests segment removal
func TestPop(t *testing.T) {
	b := New()
	if err := b.Set("/a/b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	steps := []struct {
		segment string
		rest    string
	}{
		{"b", "/a"},
		{"a", "/"},
		{"", "/"},
	}
	for _, step := range steps {
		if got := b.Pop(); got != step.segment {
			t.Errorf("Pop() = %q, expected %q", got, step.segment)
		}
		if got := b.String(); got != step.rest {
			t.Errorf("After Pop() buffer = %q, expected %q", got, step.rest)
		}
	}

	b.Reset()
	if got := b.Pop(); got != "" {
		t.Errorf("Pop() on empty buffer = %q, expected empty", got)
	}
}

// TestPushPopRoundTrip tests that Pop undoes a Push of a plain segment
func TestPushPopRoundTrip(t *testing.T) {
	states := []string{"", "/", "a", "/a/b", "..", "../..", "../x", "a/b/c"}
	segments := []string{"s", "file.txt", "...", ".hidden", "..x"}

	for _, state := range states {
		for _, seg := range segments {
			b := New()
			if err := b.Set(state); err != nil {
				t.Fatalf("Set(%q) failed: %v", state, err)
			}
			before := b.String()

			if err := b.Push(seg); err != nil {
				t.Fatalf("Push(%q) onto %q failed: %v", seg, state, err)
			}
			if got := b.Pop(); got != seg {
				t.Errorf("Pop() after Push(%q) onto %q = %q", seg, state, got)
			}
			if got := b.String(); got != before {
				t.Errorf("Round trip of %q on %q left %q, expected %q", seg, state, got, before)
			}
		}
	}
}

// TestCapacityBoundary tests that a path may fill the buffer exactly but not more
func TestCapacityBoundary(t *testing.T) {
	b := NewSize(10)
	if err := b.Push("abcd"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if err := b.Push("efghi"); err != nil {
		t.Fatalf("Push reaching exactly the limit failed: %v", err)
	}
	if b.Len() != b.Limit() {
		t.Errorf("Expected length %d, got %d", b.Limit(), b.Len())
	}

	err := b.Push("j")
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity, got %v", err)
	}
	if got := b.String(); got != "abcd/efghi" {
		t.Errorf("Buffer changed after failed push: %q", got)
	}

	full := New()
	if err := full.Push(strings.Repeat("a", MaxLen)); err != nil {
		t.Errorf("Push of MaxLen bytes failed: %v", err)
	}
	over := New()
	if err := over.Push(strings.Repeat("a", MaxLen+1)); !errors.Is(err, ErrCapacity) {
		t.Errorf("Expected ErrCapacity for MaxLen+1 bytes, got %v", err)
	}
	if !over.IsEmpty() {
		t.Errorf("Expected empty buffer after failed push, got %d bytes", over.Len())
	}
}

// TestCapacityRollbackAfterParent tests rollback when ".." truncated before the overflow
func TestCapacityRollbackAfterParent(t *testing.T) {
	b := NewSize(8)
	if err := b.Set("abc/def"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Push("../xxxxxxx"); !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity, got %v", err)
	}
	if got := b.String(); got != "abc/def" {
		t.Errorf("Expected 'abc/def' to be restored, got %q", got)
	}

	if err := b.Set("abcdefghi"); !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity from Set, got %v", err)
	}
	if got := b.String(); got != "abc/def" {
		t.Errorf("Expected Set to keep 'abc/def', got %q", got)
	}
}

// TestParent tests that Parent inspects without mutating
func TestParent(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/a/b", "/a"},
		{"/a", "/"},
		{"/", "/"},
		{"a", "."},
		{"", ".."},
		{"..", "../.."},
		{"a/b", "a"},
	}

	for _, tc := range testCases {
		b := New()
		if err := b.Set(tc.path); err != nil {
			t.Fatalf("Set(%q) failed: %v", tc.path, err)
		}
		before := b.String()
		if got := b.Parent(); got != tc.expected {
			t.Errorf("Parent() of %q = %q, expected %q", tc.path, got, tc.expected)
		}
		if got := b.String(); got != before {
			t.Errorf("Parent() modified buffer from %q to %q", before, got)
		}
	}
}

// TestBaseDir tests the basename and dirname views
func TestBaseDir(t *testing.T) {
	testCases := []struct {
		path string
		base string
		dir  string
	}{
		{"/a/b/", "b", "/a"},
		{"/a/b/c", "c", "/a/b"},
		{"", ".", "."},
		{"///", "/", "/"},
		{"a", "a", "."},
		{"/a", "a", "/"},
		{"a//b", "b", "a"},
		{"../x", "x", ".."},
	}

	for _, tc := range testCases {
		if got := Base(tc.path); got != tc.base {
			t.Errorf("Base(%q) = %q, expected %q", tc.path, got, tc.base)
		}
		if got := Dir(tc.path); got != tc.dir {
			t.Errorf("Dir(%q) = %q, expected %q", tc.path, got, tc.dir)
		}
	}

	b := New()
	if err := b.Set("/a/b/c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := b.Basename(); got != "c" {
		t.Errorf("Basename() = %q, expected 'c'", got)
	}
	if got := b.Dirname(); got != "/a/b" {
		t.Errorf("Dirname() = %q, expected '/a/b'", got)
	}
}

// TestZeroValue tests that an uninitialized buffer is usable
func TestZeroValue(t *testing.T) {
	var b Buffer
	if b.Limit() != MaxLen {
		t.Errorf("Expected zero-value limit %d, got %d", MaxLen, b.Limit())
	}
	if got := b.String(); got != "." {
		t.Errorf("Expected '.', got %q", got)
	}
	if err := b.Push("/tmp/x"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if !strings.HasPrefix(b.String(), "/") || b.IsRoot() {
		t.Errorf("Unexpected content %q", b.String())
	}
}

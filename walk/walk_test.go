package walk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) MiddlewareFunc {
		return func(next WalkFunc) WalkFunc {
			return func(entry Entry) error {
				order = append(order, name)
				return next(entry)
			}
		}
	}

	fn := Chain(func(entry Entry) error {
		order = append(order, "fn")
		return nil
	}, mark("outer"), mark("inner"))

	if err := fn(Entry{Path: "x"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "fn" {
		t.Errorf("Unexpected order: %v", order)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "f.txt"), []byte("f"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	failure := errors.New("boom")
	err := Walk(root, Chain(func(entry Entry) error {
		if entry.Type == TypeRegular {
			return failure
		}
		return nil
	}, LoggingMiddleware(logger)))
	if !errors.Is(err, failure) {
		t.Fatalf("Expected failure, got %v", err)
	}

	if n := logs.FilterMessage("Visiting entry").Len(); n != 2 {
		t.Errorf("Expected 2 visit logs, got %d", n)
	}
	if n := logs.FilterMessage("Error processing entry").Len(); n != 1 {
		t.Errorf("Expected 1 error log, got %d", n)
	}
}

func TestTimingMiddleware(t *testing.T) {
	var slow []string
	fn := Chain(func(entry Entry) error {
		if entry.Path == "slow" {
			time.Sleep(20 * time.Millisecond)
		}
		return nil
	}, TimingMiddleware(10*time.Millisecond, func(entry Entry, took time.Duration) {
		slow = append(slow, entry.Path)
	}))

	_ = fn(Entry{Path: "fast"})
	_ = fn(Entry{Path: "slow"})
	if len(slow) != 1 || slow[0] != "slow" {
		t.Errorf("Unexpected slow entries: %v", slow)
	}
}

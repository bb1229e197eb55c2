package logger

import "testing"

func TestNewWithLevelAcceptsKnownLevels(t *testing.T) {
	for _, lvl := range []string{"trace", "debug", "info", "warn", "error"} {
		if l := NewWithLevel("test", lvl); l == nil {
			t.Fatalf("level %s returned nil logger", lvl)
		}
	}
}

func TestNewWithLevelFallsBackOnGarbage(t *testing.T) {
	l := NewWithLevel("test", "loud")
	if l == nil {
		t.Fatal("expected fallback logger")
	}
	// Must not panic.
	l.Infof("hello %s", "world")
	l.Debugw("fields", map[string]any{"k": 1})
}

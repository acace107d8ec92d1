package winhook

import (
	"errors"
	"testing"

	"github.com/myood/winhook/hook"
)

// These tests exercise the process-wide registry through the public
// facade, so they must not run in parallel with each other.

func TestBuildWithoutKinds(t *testing.T) {
	if _, err := NewBuilder().Build(); !errors.Is(err, ErrNoKinds) {
		t.Fatalf("Build() error = %v, want ErrNoKinds", err)
	}
}

func TestKeyboardHookIsExclusive(t *testing.T) {
	h, err := Keyboard()
	if err != nil {
		t.Fatalf("Keyboard(): %v", err)
	}

	if _, err := Keyboard(); !errors.Is(err, hook.ErrAlreadyActive) {
		t.Fatalf("second Keyboard() error = %v, want ErrAlreadyActive", err)
	}
	if !hook.IsPresent(hook.Keyboard) {
		t.Fatal("IsPresent(Keyboard) = false while a hook is held")
	}

	h.Close()
	if hook.IsPresent(hook.Keyboard) {
		t.Fatal("IsPresent(Keyboard) = true after Close")
	}

	h2, err := Keyboard()
	if err != nil {
		t.Fatalf("Keyboard() after release: %v", err)
	}
	h2.Close()
}

func TestAllAcquiresBothKinds(t *testing.T) {
	h, err := All()
	if err != nil {
		t.Fatalf("All(): %v", err)
	}
	defer h.Close()

	if !hook.IsPresent(hook.Keyboard) || !hook.IsPresent(hook.Mouse) {
		t.Fatal("All() did not make both hook kinds present")
	}
	if _, err := Mouse(); !errors.Is(err, hook.ErrAlreadyActive) {
		t.Fatalf("Mouse() while All() is held = %v, want ErrAlreadyActive", err)
	}
}

func TestFailedBuildLeavesNothingBehind(t *testing.T) {
	kb, err := Keyboard()
	if err != nil {
		t.Fatalf("Keyboard(): %v", err)
	}
	defer kb.Close()

	// Requesting both must fail on the keyboard conflict and leave no
	// partially acquired hook behind.
	if _, err := All(); !errors.Is(err, hook.ErrAlreadyActive) {
		t.Fatalf("All() with keyboard held = %v, want ErrAlreadyActive", err)
	}
	if hook.IsPresent(hook.Mouse) {
		t.Fatal("failed All() left a mouse hook behind")
	}
}

func TestTryRecvOnFreshHook(t *testing.T) {
	h, err := Mouse()
	if err != nil {
		t.Fatalf("Mouse(): %v", err)
	}
	defer h.Close()

	if _, err := h.TryRecv(); !errors.Is(err, hook.ErrEmpty) {
		t.Fatalf("TryRecv on fresh hook = %v, want ErrEmpty", err)
	}
}

func TestTryRecvAfterClose(t *testing.T) {
	h, err := Keyboard()
	if err != nil {
		t.Fatalf("Keyboard(): %v", err)
	}
	h.Close()
	h.Close() // idempotent

	if _, err := h.TryRecv(); !errors.Is(err, hook.ErrDisconnected) {
		t.Fatalf("TryRecv after Close = %v, want ErrDisconnected", err)
	}
}

func TestBuilderDeduplicatesKinds(t *testing.T) {
	h, err := NewBuilder().WithKeyboard().WithKeyboard().Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	defer h.Close()
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(errors.New("boom")); got != "Error: boom" {
		t.Errorf("Format = %q, want %q", got, "Error: boom")
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "never shown") != nil {
		t.Error("WithHint(nil, ...) should stay nil")
	}

	base := errors.New("database is not initialized")
	err := WithHint(base, "Run 'taskweave init' first.")

	if err.Error() != base.Error() {
		t.Errorf("hinted error message = %q, want %q", err.Error(), base.Error())
	}
	if !errors.Is(err, base) {
		t.Error("hinted error should unwrap to the original")
	}
	if got := HintOf(err); got != "Run 'taskweave init' first." {
		t.Errorf("HintOf = %q", got)
	}
}

func TestHintOfWrapped(t *testing.T) {
	inner := WithHint(errors.New("no availability"), "Add a window with 'taskweave slot add'.")
	outer := fmt.Errorf("scheduling failed: %w", inner)

	if got := HintOf(outer); got != "Add a window with 'taskweave slot add'." {
		t.Errorf("HintOf through wrapping = %q", got)
	}
	if got := HintOf(errors.New("plain")); got != "" {
		t.Errorf("HintOf on plain error = %q, want empty", got)
	}
}

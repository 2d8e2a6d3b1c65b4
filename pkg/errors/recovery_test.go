package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	render := func() (err error) {
		defer Recover(&err, "WriteResidualPNG")
		panic("range is degenerate")
	}

	err := render()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "WriteResidualPNG" {
		t.Errorf("Operation = %q, want %q", panicErr.Operation, "WriteResidualPNG")
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	want := "panic in WriteResidualPNG: range is degenerate"
	if panicErr.Error() != want {
		t.Errorf("Error() = %q, want %q", panicErr.Error(), want)
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include the stack trace")
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	render := func() (err error) {
		defer Recover(&err, "WriteResidualPNG")
		return nil
	}

	if err := render(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	render := func() (err error) {
		defer Recover(&err, "WriteResidualPNG")
		err = originalErr
		panic("panic after error")
	}

	err := render()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "panic in WriteResidualPNG") {
		t.Errorf("Error message should contain panic info: %s", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("Original error should stay reachable via errors.Is")
	}
}

func TestRecover_DifferentPanicTypes(t *testing.T) {
	values := []interface{}{"text", 42, fmt.Errorf("an error"), struct{ N int }{N: 1}}

	for _, v := range values {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err, "op")
				panic(v)
			}
			var panicErr *PanicError
			if !errors.As(f(), &panicErr) {
				t.Fatal("Expected PanicError")
			}
			if panicErr.PanicValue != v {
				t.Errorf("PanicValue = %v, want %v", panicErr.PanicValue, v)
			}
		})
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeValidation, "batch must not be empty")

	if err.Type != ErrorTypeValidation {
		t.Errorf("expected validation type, got %s", err.Type)
	}
	if err.Error() != "validation: batch must not be empty" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
	if len(err.Stack) == 0 {
		t.Error("expected stack frames to be captured")
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("read failed")
	err := Wrap(cause, ErrorTypeData, "cannot load ontology")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Error() != "data: cannot load ontology: read failed" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, ErrorTypeInternal, "no-op"); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeData, "inner")
	outer := Wrap(inner, ErrorTypeInternal, "outer")

	if len(outer.Stack) != len(inner.Stack) {
		t.Error("wrapping a structured error should preserve its stack")
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeNotFound, "class missing")

	if !IsType(err, ErrorTypeNotFound) {
		t.Error("expected IsType to match not_found")
	}
	if IsType(err, ErrorTypeValidation) {
		t.Error("IsType should not match a different type")
	}
	if IsType(fmt.Errorf("plain"), ErrorTypeNotFound) {
		t.Error("IsType should not match plain errors")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(New(ErrorTypeConnection, "db down")) {
		t.Error("connection errors should be retryable")
	}
	if IsRetryable(New(ErrorTypeValidation, "bad input")) {
		t.Error("validation errors should not be retryable")
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeData, "decode failed").
		WithDetail("class", "Customer").
		WithDetail("rows", 3)

	if err.Details["class"] != "Customer" {
		t.Errorf("expected class detail, got %v", err.Details["class"])
	}
	if err.Details["rows"] != 3 {
		t.Errorf("expected rows detail, got %v", err.Details["rows"])
	}
}

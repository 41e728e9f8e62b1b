package domain

import (
	"errors"
	"testing"
)

func TestFieldError_Unwrap(t *testing.T) {
	err := &FieldError{Field: "action", Err: ErrInvalidAction}

	if !errors.Is(err, ErrInvalidAction) {
		t.Error("Expected errors.Is to match the wrapped sentinel")
	}
	if errors.Is(err, ErrFieldRequired) {
		t.Error("Did not expect a match against an unrelated sentinel")
	}
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Field: "secret", Err: ErrFieldRequired}

	want := "invalid field [secret]: field is required"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already processing", ErrAlreadyProcessing},
		{"incomplete cart", ErrIncompleteCart},
		{"not found", ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidation("cvv", "invalid CVV format")
	if err.Field != "cvv" {
		t.Fatalf("unexpected field %q", err.Field)
	}
	if !strings.Contains(err.Error(), "cvv") || !strings.Contains(err.Error(), "invalid CVV format") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	var target *ValidationError
	if !stdErrors.As(error(err), &target) {
		t.Fatal("expected errors.As to match ValidationError")
	}
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := &PersistenceError{Err: cause}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "captured payment") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{QueryParseError(3, "unexpected token"), http.StatusNotAcceptable},
		{UnknownFieldError("Meal", "calries"), http.StatusNotAcceptable},
		{UnknownSortFieldError("calries"), http.StatusNotAcceptable},
		{TypeMismatch("calories", "expected a number"), http.StatusNotAcceptable},
		{ValidationError("date", "bad date"), http.StatusNotAcceptable},
		{NotFoundError("meal", 3), http.StatusNotFound},
		{ConflictError("exists"), http.StatusConflict},
		{Wrap(ErrSQL, "insert", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("outer: %w", NotFoundError("user", 1)), http.StatusNotFound},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestMessage(t *testing.T) {
	if got := Message(UnknownFieldError("Meal", "calries")); got != "Error parsing query. Check field name are correct. type object 'Meal' has no attribute 'calries'" {
		t.Errorf("unexpected field message %q", got)
	}
	if got := Message(UnknownSortFieldError("x")); got != "Order elements The value 'x' is not a valid choice for 'sort'." {
		t.Errorf("unexpected sort message %q", got)
	}
	if got := Message(QueryParseError(0, "unmatched '('")); got != MsgParseQueryValues {
		t.Errorf("unexpected parse message %q", got)
	}
	if got := Message(Wrap(ErrSQL, "insert", errors.New("secret detail"))); got != MsgInternal {
		t.Errorf("internal errors must not leak detail, got %q", got)
	}
	if got := Message(ConflictError("invitation already accepted")); got != "invitation already accepted" {
		t.Errorf("unexpected conflict message %q", got)
	}
}

func TestErrorFormatAndKind(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: ErrValidation, Message: "bad", Field: "date", Cause: cause}
	if got := err.Error(); got != "validation: bad (field=date): boom" {
		t.Fatalf("unexpected format %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if !IsKind(fmt.Errorf("wrapped: %w", err), ErrValidation) {
		t.Fatal("expected IsKind through wrapping")
	}
	if KindOf(cause) != "" {
		t.Fatal("expected no kind for a plain error")
	}
}

package errs

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO               ErrorKind = "io"
	ErrSQL              ErrorKind = "sql"
	ErrSchema           ErrorKind = "schema"
	ErrQueryParse       ErrorKind = "query_parse"
	ErrUnknownField     ErrorKind = "unknown_field"
	ErrUnknownSortField ErrorKind = "unknown_sort_field"
	ErrTypeMismatch     ErrorKind = "type_mismatch"
	ErrValidation       ErrorKind = "validation"
	ErrNotFound         ErrorKind = "not_found"
	ErrConflict         ErrorKind = "conflict"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func SchemaError(msg string) *Error {
	return &Error{Kind: ErrSchema, Message: msg}
}

// QueryParseError reports a filter string that could not be tokenized or
// parsed. pos is the rune index of the offending input, or -1.
func QueryParseError(pos int, msg string) *Error {
	if pos >= 0 {
		msg = fmt.Sprintf("%s at position %d", msg, pos)
	}
	return &Error{Kind: ErrQueryParse, Message: msg}
}

// UnknownFieldError names a field the entity does not have. Clients match on
// this exact wording.
func UnknownFieldError(entity, field string) *Error {
	return &Error{
		Kind:    ErrUnknownField,
		Message: fmt.Sprintf("type object '%s' has no attribute '%s'", entity, field),
		Field:   field,
	}
}

func UnknownSortFieldError(value string) *Error {
	return &Error{
		Kind:    ErrUnknownSortField,
		Message: fmt.Sprintf("The value '%s' is not a valid choice for 'sort'.", value),
		Field:   value,
	}
}

func TypeMismatch(field, msg string) *Error {
	return &Error{Kind: ErrTypeMismatch, Field: field, Message: msg}
}

func ValidationError(field, msg string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: msg}
}

func NotFoundError(what string, id any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found: %v", what, id)}
}

func ConflictError(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

package errs

import (
	"errors"
	"net/http"
)

const (
	MsgParseQueryValues = "Error parsing query. Check correctness query syntax. Check parenthesis. Check if all strings values are quoted"
	MsgParseQueryFields = "Error parsing query. Check field name are correct. "
	MsgSort             = "Order elements "
	MsgInternal         = "Internal server error"
)

// StatusCode maps an error to the HTTP status a transport should answer with.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case ErrQueryParse, ErrUnknownField, ErrUnknownSortField, ErrTypeMismatch, ErrValidation:
		return http.StatusNotAcceptable
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message renders the client-facing text for err. Parse failures get a
// generic message; field failures embed the offending attribute.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return MsgInternal
	}
	switch e.Kind {
	case ErrQueryParse, ErrTypeMismatch:
		return MsgParseQueryValues
	case ErrUnknownField:
		return MsgParseQueryFields + e.Message
	case ErrUnknownSortField:
		return MsgSort + e.Message
	case ErrSQL, ErrIO, ErrSchema:
		return MsgInternal
	default:
		return e.Message
	}
}

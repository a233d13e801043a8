package mangiato

import "github.com/nonibytes/mangiato/mangiato/errs"

type (
	Error     = errs.Error
	ErrorKind = errs.ErrorKind
)

const (
	ErrIO               = errs.ErrIO
	ErrSQL              = errs.ErrSQL
	ErrSchema           = errs.ErrSchema
	ErrQueryParse       = errs.ErrQueryParse
	ErrUnknownField     = errs.ErrUnknownField
	ErrUnknownSortField = errs.ErrUnknownSortField
	ErrTypeMismatch     = errs.ErrTypeMismatch
	ErrValidation       = errs.ErrValidation
	ErrNotFound         = errs.ErrNotFound
	ErrConflict         = errs.ErrConflict
)

var (
	Wrap                  = errs.Wrap
	NewError              = errs.New
	SchemaError           = errs.SchemaError
	NotFoundError         = errs.NotFoundError
	ConflictError         = errs.ConflictError
	ValidationError       = errs.ValidationError
	UnknownFieldError     = errs.UnknownFieldError
	UnknownSortFieldError = errs.UnknownSortFieldError
	IsKind                = errs.IsKind
	KindOf                = errs.KindOf

	// StatusCode and Message give a transport the HTTP status and client
	// text for an error returned by the store.
	StatusCode = errs.StatusCode
	Message    = errs.Message
)

package services

import "fmt"

// Kind classifies a service failure. Controllers map kinds to HTTP status codes;
// the message is safe to return to callers, storage details never are.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindIntegrity         Kind = "INTEGRITY"
	KindInfrastructure    Kind = "INFRASTRUCTURE"
)

// Error is the stable failure type surfaced by all core operations.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func ValidationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErr(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func StockErr(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func IntegrityErr(format string, args ...any) *Error {
	return &Error{Kind: KindIntegrity, Message: fmt.Sprintf(format, args...)}
}

// InfraErr wraps a storage/collaborator failure behind a generic message; the
// cause stays attached for logging but is never serialized to the caller.
func InfraErr(cause error, message string) *Error {
	return &Error{Kind: KindInfrastructure, Message: message, cause: cause}
}

// AsError returns err as a *Error when it is one, nil otherwise.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return nil
}

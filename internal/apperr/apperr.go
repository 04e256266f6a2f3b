// Package apperr defines the error taxonomy shared by services and transports.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch without parsing messages.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindConflict        Kind = "CONFLICT"
	KindInternal        Kind = "INTERNAL"
)

// Error is a classified application error. Two errors are considered equal
// by errors.Is when their codes match.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Extensions is picked up by graphql-go when the error is formatted.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
		"kind": string(e.Kind),
	}
}

var (
	ErrUnauthenticated       = &Error{Kind: KindUnauthenticated, Code: "UNAUTHENTICATED", Message: "authentication credentials were not provided"}
	ErrForbidden             = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "not authorized"}
	ErrCartNotFound          = &Error{Kind: KindNotFound, Code: "CART_NOT_FOUND", Message: "no cart with the given ID was found"}
	ErrEmptyCart             = &Error{Kind: KindInvalidInput, Code: "EMPTY_CART", Message: "the cart is empty"}
	ErrInsufficientInventory = &Error{Kind: KindConflict, Code: "INSUFFICIENT_INVENTORY", Message: "not enough inventory to fulfil the order"}
	ErrInvalidTransition     = &Error{Kind: KindConflict, Code: "INVALID_STATUS_TRANSITION", Message: "payment status cannot change from its current value"}
	ErrInvalidCredentials    = &Error{Kind: KindUnauthenticated, Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	ErrInvalidToken          = &Error{Kind: KindUnauthenticated, Code: "INVALID_TOKEN", Message: "invalid or expired token"}
)

// NotFound builds a NotFound error for the named entity, e.g. NotFound("PRODUCT", "product %d not found", id).
func NotFound(entity, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: entity + "_NOT_FOUND", Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The cause is kept for logging but the
// message shown to clients stays generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL", Message: "internal error", Err: err}
}

// WithCause returns a copy of e carrying err as its cause.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// From extracts the classified error in err's chain, or classifies err as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// KindOf reports the kind of err, KindInternal when unclassified and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return From(err).Kind
}

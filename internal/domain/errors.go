package domain

import (
	"errors"
	"fmt"
)

// NotFoundError marks lookups for entities that do not exist. It is a normal
// outcome, not a failure, and carries the identity the caller asked for.
type NotFoundError struct {
	Resource string
	ID       int64
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError rejects malformed or out-of-range input before any store
// call is made. Never retried.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// UnavailableError signals a transient infrastructure failure (connection
// refused, bad connection). The caller may retry; this layer never does.
type UnavailableError struct {
	Err error
}

func (e UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store unavailable: %v", e.Err)
	}
	return "store unavailable"
}

func (e UnavailableError) Unwrap() error { return e.Err }

// TimeoutError signals that a store call exceeded its deadline. Retryable in
// the same sense as UnavailableError.
type TimeoutError struct {
	Err error
}

func (e TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store timeout: %v", e.Err)
	}
	return "store timeout"
}

func (e TimeoutError) Unwrap() error { return e.Err }

// InternalError wraps unexpected query or constraint failures. The wrapped
// cause stays server-side; callers only see the generic message.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var target TimeoutError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

package domain

import "errors"

var (
	// ErrInvalidArgument marks a caller supplied value that breaks a precondition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState marks a mutation that would break an entity invariant.
	ErrInvalidState = errors.New("invalid state")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newInvalidArgument(message string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: message}
}

func newInvalidState(message string) *Error {
	return &Error{Kind: ErrInvalidState, Message: message}
}
